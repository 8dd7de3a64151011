// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/sheetclean/internal/profile"
)

var describeCmd = &cobra.Command{
	Use:   "describe <datasheet>",
	Short: "Clean a datasheet and print a summary of each column",
	Long: `Describe cleans the datasheet like clean does, without writing any
output, and prints per-column counts, missing values and distinct values.
Numeric columns also get min, max, mean, median and standard deviation;
date columns get their earliest and latest dates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		table, err := cleanFile(cmd.Context(), cfg, args[0])
		if err != nil {
			return err
		}

		profiles, err := profile.Profile(table)
		if err != nil {
			return err
		}
		return profile.Render(cmd.OutOrStdout(), profiles)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
