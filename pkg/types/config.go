// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReaderConfig describes where the header, the unit annotations and the
// descriptive rows sit in the source sheet. Row numbers are zero-based
// positions in the unskipped sheet.
type ReaderConfig struct {
	// Sheet is the worksheet to read from .xlsx files (default: first sheet).
	Sheet string `json:"sheet" yaml:"sheet" mapstructure:"sheet"`

	// HeaderRow holds the column names (default 0).
	HeaderRow int `json:"header_row" yaml:"header_row" mapstructure:"header_row"`

	// SkipRows are dropped from the data body (default 1, 2, 3, 4).
	SkipRows []int `json:"skip_rows" yaml:"skip_rows" mapstructure:"skip_rows"`

	// UnitRow holds the per-column type labels (default 4).
	UnitRow int `json:"unit_row" yaml:"unit_row" mapstructure:"unit_row"`

	// Encoding of .csv input: utf-8 or latin1 (default utf-8).
	Encoding string `json:"encoding" yaml:"encoding" mapstructure:"encoding"`
}

// CleanConfig controls the cleaning pass.
type CleanConfig struct {
	// Workers is the number of columns cleaned concurrently (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Overrides force a label for a column regardless of its unit row
	// entry. Built-in corrections cannot be replaced.
	Overrides map[string]string `json:"overrides,omitempty" yaml:"overrides,omitempty" mapstructure:"overrides"`
}

// TypesFormat selects the encoding of the column types artifact.
type TypesFormat string

const (
	TypesCSV  TypesFormat = "csv"
	TypesYAML TypesFormat = "yaml"
	TypesJSON TypesFormat = "json"
)

// OutputConfig names the artifacts produced by a cleaning run.
type OutputConfig struct {
	// DataPath is the cleaned table CSV (default data.csv).
	DataPath string `json:"data" yaml:"data" mapstructure:"data"`

	// TypesPath is the column types artifact (default dtypes.csv).
	TypesPath string `json:"types" yaml:"types" mapstructure:"types"`

	// TypesFormat is csv, yaml or json (default csv).
	TypesFormat TypesFormat `json:"types_format" yaml:"types_format" mapstructure:"types_format"`

	// NARep is written for missing values (default empty).
	NARep string `json:"na_rep" yaml:"na_rep" mapstructure:"na_rep"`
}

// StoreConfig enables the optional SQLite copy of the cleaned table.
type StoreConfig struct {
	// Path is the SQLite database file. Empty disables the store.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Table is the table that receives the cleaned rows (default datasheet).
	Table string `json:"table" yaml:"table" mapstructure:"table"`
}

// LogConfig selects the diagnostic log level and format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for one run.
type Config struct {
	Reader ReaderConfig `json:"reader" yaml:"reader" mapstructure:"reader"`
	Clean  CleanConfig  `json:"clean" yaml:"clean" mapstructure:"clean"`
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the layout of the benefits datasheet this tool was
// written for.
func DefaultConfig() Config {
	return Config{
		Reader: ReaderConfig{
			HeaderRow: 0,
			SkipRows:  []int{1, 2, 3, 4},
			UnitRow:   4,
			Encoding:  "utf-8",
		},
		Clean: CleanConfig{
			Workers: 1,
		},
		Output: OutputConfig{
			DataPath:    "data.csv",
			TypesPath:   "dtypes.csv",
			TypesFormat: TypesCSV,
		},
		Store: StoreConfig{
			Table: "datasheet",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
