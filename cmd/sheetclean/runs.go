// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sheetclean/internal/store"
	"github.com/pdiddy/sheetclean/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs <database>",
	Short: "List cleaning runs stored in a SQLite database",
	Long: `Runs lists the cleaning runs recorded by clean --sqlite, newest first.
With --columns the column types of the most recent run are printed too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		showColumns, _ := cmd.Flags().GetBool("columns")
		w := cmd.OutOrStdout()

		st, err := store.NewStore(types.StoreConfig{Path: args[0], Table: viper.GetString("store.table")})
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.Runs(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return nil
		}

		for _, r := range runs {
			fmt.Fprintf(w, "%s  %s  %-12s  %5d rows  %3d columns  %s\n",
				r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Table, r.Rows, r.Columns, r.Source)
		}

		if showColumns {
			cols, err := st.ColumnTypes(cmd.Context(), runs[0].ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(w)
			for _, c := range cols {
				nullable := ""
				if c.Nullable {
					nullable = "nullable"
				}
				fmt.Fprintf(w, "%3d  %-20s  %-10s  %-14s  %s\n", c.Position, c.Column, c.DType, c.Label, nullable)
			}
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	runsCmd.Flags().Bool("columns", false, "print the column types of the latest run")

	rootCmd.AddCommand(runsCmd)
}
