// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// readCSV loads a delimited export as a grid of text cells. Typing
// happens per column once the body rows are known.
func (r *Reader) readCSV(path string) ([][]types.RawCell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := decoder(f, r.cfg.Encoding)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(src)
	if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	grid := make([][]types.RawCell, len(records))
	for i, rec := range records {
		grid[i] = make([]types.RawCell, len(rec))
		for j, field := range rec {
			grid[i][j] = textCell(field)
		}
	}
	return grid, nil
}

// decoder wraps src so it yields UTF-8 for the named encoding.
func decoder(src io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "utf-8", "utf8":
		return src, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(src, charmap.ISO8859_1.NewDecoder()), nil
	case "cp1252", "windows-1252":
		return transform.NewReader(src, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", encoding)
}

// inferColumns types CSV body cells column by column. A column whose
// present cells all parse as numbers becomes numeric, one made only of
// boolean spellings becomes boolean, and anything else stays text.
func inferColumns(table *types.RawTable) {
	for i := range table.Columns {
		cells := table.Columns[i].Cells
		switch {
		case allPresent(cells, isNumber):
			for j, c := range cells {
				if !c.IsMissing() {
					f, _ := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
					cells[j] = types.NumberCell(f)
				}
			}
		case allPresent(cells, isBoolWord):
			for j, c := range cells {
				if !c.IsMissing() {
					cells[j] = types.BoolCell(strings.EqualFold(c.Text, "true"))
				}
			}
		}
	}
}

// allPresent reports whether at least one cell is present and every
// present cell satisfies ok.
func allPresent(cells []types.RawCell, ok func(string) bool) bool {
	seen := false
	for _, c := range cells {
		if c.IsMissing() {
			continue
		}
		if c.Kind != types.CellText || !ok(c.Text) {
			return false
		}
		seen = true
	}
	return seen
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func isBoolWord(s string) bool {
	switch s {
	case "True", "TRUE", "true", "False", "FALSE", "false":
		return true
	}
	return false
}
