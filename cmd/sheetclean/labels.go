// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sheetclean/internal/registry"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the unit labels and the parser each selects",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := registry.New()
		w := cmd.OutOrStdout()

		width := runewidth.StringWidth("(empty)")
		for _, label := range reg.Labels() {
			width = max(width, runewidth.StringWidth(string(label)))
		}
		for _, label := range reg.Labels() {
			family, _ := reg.Family(string(label))
			name := string(label)
			if name == "" {
				name = "(empty)"
			}
			fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(name, width), family)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}
