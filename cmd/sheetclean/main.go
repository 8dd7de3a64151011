// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sheetclean CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/sheetclean/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sheetclean CLI.
var rootCmd = &cobra.Command{
	Use:   "sheetclean",
	Short: "Clean semi-structured datasheets into typed tables",
	Long: `sheetclean reads a datasheet whose unit row labels each column, parses
every column with the parser its label selects, and writes the cleaned table
together with the type of each column.

The first cell that cannot be parsed aborts the run; the error names the
column, row and raw value. No output is written on failure.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}

		logging.Setup(cmd.ErrOrStderr(), viper.GetString("log.level"), viper.GetString("log.format"))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sheetclean.yaml or ~/.config/sheetclean/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "environment file loaded before running")
	rootCmd.PersistentFlags().String("log-level", "info", "diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "diagnostic log format: text or json")

	// Sheet layout and cleaning flags, shared by clean and describe.
	rootCmd.PersistentFlags().String("sheet", "", "worksheet to read (default: first sheet)")
	rootCmd.PersistentFlags().Int("header-row", 0, "zero-based row holding the column names")
	rootCmd.PersistentFlags().IntSlice("skip-rows", []int{1, 2, 3, 4}, "zero-based rows dropped from the data")
	rootCmd.PersistentFlags().Int("unit-row", 4, "zero-based row holding the unit labels")
	rootCmd.PersistentFlags().String("encoding", "utf-8", "CSV input encoding: utf-8, latin1 or windows-1252")
	rootCmd.PersistentFlags().Int("workers", 1, "columns cleaned concurrently")
	rootCmd.PersistentFlags().StringToString("override", nil, "force a label for a column, as COLUMN=LABEL")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"log.level":         "log-level",
		"log.format":        "log-format",
		"reader.sheet":      "sheet",
		"reader.header_row": "header-row",
		"reader.skip_rows":  "skip-rows",
		"reader.unit_row":   "unit-row",
		"reader.encoding":   "encoding",
		"clean.workers":     "workers",
		"clean.overrides":   "override",
	})
}

// bindFlags binds each config key to the named flag in flags.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sheetclean")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sheetclean"))
		}
	}

	viper.SetEnvPrefix("SHEETCLEAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
