// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/sheetclean/pkg/types"
)

func init() {
	def := types.DefaultConfig()
	viper.SetDefault("reader.header_row", def.Reader.HeaderRow)
	viper.SetDefault("reader.skip_rows", def.Reader.SkipRows)
	viper.SetDefault("reader.unit_row", def.Reader.UnitRow)
	viper.SetDefault("reader.encoding", def.Reader.Encoding)
	viper.SetDefault("clean.workers", def.Clean.Workers)
	viper.SetDefault("output.data", def.Output.DataPath)
	viper.SetDefault("output.types", def.Output.TypesPath)
	viper.SetDefault("output.types_format", string(def.Output.TypesFormat))
	viper.SetDefault("store.table", def.Store.Table)
	viper.SetDefault("log.level", def.Log.Level)
	viper.SetDefault("log.format", def.Log.Format)
}

// loadConfig assembles the run configuration from defaults, the config
// file, SHEETCLEAN_* environment variables and bound flags, in increasing
// order of precedence.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	switch cfg.Output.TypesFormat {
	case types.TypesCSV, types.TypesYAML, types.TypesJSON:
	default:
		return types.Config{}, fmt.Errorf("unsupported types format %q: use csv, yaml or json", cfg.Output.TypesFormat)
	}
	if cfg.Clean.Workers < 1 {
		cfg.Clean.Workers = 1
	}
	return cfg, nil
}
