// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sheetclean/internal/clean"
	"github.com/pdiddy/sheetclean/internal/export"
	"github.com/pdiddy/sheetclean/internal/registry"
	"github.com/pdiddy/sheetclean/internal/sheet"
	"github.com/pdiddy/sheetclean/internal/store"
	"github.com/pdiddy/sheetclean/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <datasheet>",
	Short: "Clean a datasheet and write the typed table and its column types",
	Long: `Clean reads an .xlsx workbook or a .csv export, parses every column with
the parser selected by its unit label, and writes two artifacts: the cleaned
data (data.csv by default) and the type of each column (dtypes.csv by default).

Both artifacts are written only when every column cleaned successfully.
With --sqlite the cleaned table is also stored in a SQLite database.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := args[0]
	w := cmd.OutOrStdout()

	table, err := cleanFile(cmd.Context(), cfg, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "cleaned %s (%d rows, %d columns)\n", path, table.Len(), len(table.Columns))

	if err := export.Write(table, cfg.Output); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote   %s\n", cfg.Output.DataPath)
	fmt.Fprintf(w, "wrote   %s\n", cfg.Output.TypesPath)

	if cfg.Store.Path != "" {
		st, err := store.NewStore(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		run, err := st.Save(cmd.Context(), path, table)
		if err != nil {
			return fmt.Errorf("storing %s: %w", path, err)
		}
		fmt.Fprintf(w, "stored  %s table %q (run %s)\n", cfg.Store.Path, run.Table, run.ID)
	}

	if n, _ := cmd.Flags().GetInt("preview"); n > 0 {
		fmt.Fprintln(w)
		return export.Preview(w, table, n, cfg.Output.NARep)
	}
	return nil
}

// cleanFile reads and cleans the datasheet at path.
func cleanFile(ctx context.Context, cfg types.Config, path string) (*types.CleanedTable, error) {
	logger := slog.Default().With("source", path)

	raw, units, err := sheet.NewReader(cfg.Reader, logger).Read(path)
	if err != nil {
		return nil, err
	}

	cleaner := clean.New(registry.New(), clean.Options{
		Workers:   cfg.Clean.Workers,
		Overrides: cfg.Clean.Overrides,
		Logger:    logger,
	})
	table, err := cleaner.Clean(ctx, raw, units)
	if err != nil {
		return nil, fmt.Errorf("cleaning %s: %w", path, err)
	}
	return table, nil
}

func init() {
	cleanCmd.Flags().String("data-out", "data.csv", "cleaned data output file")
	cleanCmd.Flags().String("types-out", "dtypes.csv", "column types output file")
	cleanCmd.Flags().String("types-format", "csv", "column types format: csv, yaml or json")
	cleanCmd.Flags().String("na-rep", "", "text written for missing values")
	cleanCmd.Flags().String("sqlite", "", "also store the cleaned table in this SQLite database")
	cleanCmd.Flags().String("table", "datasheet", "SQLite table receiving the cleaned rows")
	cleanCmd.Flags().Int("preview", 0, "print the first N cleaned rows")

	bindFlags(cleanCmd.Flags(), map[string]string{
		"output.data":         "data-out",
		"output.types":        "types-out",
		"output.types_format": "types-format",
		"output.na_rep":       "na-rep",
		"store.path":          "sqlite",
		"store.table":         "table",
	})

	rootCmd.AddCommand(cleanCmd)
}
