// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// maxCellWidth caps the display width of a preview cell.
const maxCellWidth = 24

// Preview writes the first n rows of table as a column-aligned text table
// with a dtype line under the header. Widths are measured in terminal
// cells so wide characters line up.
func Preview(w io.Writer, table *types.CleanedTable, n int, naRep string) error {
	if n > table.Len() {
		n = table.Len()
	}

	rows := make([][]string, 0, n+2)
	rows = append(rows, table.Names())
	dtypes := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		dtypes[i] = string(col.DType)
	}
	rows = append(rows, dtypes)
	for r := 0; r < n; r++ {
		line := make([]string, len(table.Columns))
		for c, col := range table.Columns {
			line[c] = runewidth.Truncate(col.Values[r].Format(naRep), maxCellWidth, "…")
		}
		rows = append(rows, line)
	}

	widths := make([]int, len(table.Columns))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == len(row)-1 {
				sb.WriteString(cell)
			} else {
				sb.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}

	if rest := table.Len() - n; rest > 0 {
		if _, err := fmt.Fprintf(w, "... %d more rows\n", rest); err != nil {
			return err
		}
	}
	return nil
}
