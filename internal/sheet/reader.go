// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet reads a datasheet file into a RawTable and its UnitRow.
// The header row names the columns, a fixed set of descriptive rows is
// skipped, and one of those rows carries the per-column unit labels.
package sheet

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// ErrLayout is returned when the configured header or unit row does not
// exist in the sheet.
var ErrLayout = errors.New("sheet layout mismatch")

// naValues are text cells read as missing, matching the markers common
// spreadsheet exports use for empty cells.
var naValues = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// Reader loads datasheets laid out as described by its ReaderConfig.
type Reader struct {
	cfg types.ReaderConfig
	log *slog.Logger
}

// NewReader creates a Reader. A nil logger uses slog.Default().
func NewReader(cfg types.ReaderConfig, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{cfg: cfg, log: logger}
}

// Read loads path, choosing the format from its extension: .csv and .txt
// are read as CSV, anything else as an Excel workbook.
func (r *Reader) Read(path string) (*types.RawTable, types.UnitRow, error) {
	var (
		grid  [][]types.RawCell
		err   error
		isCSV bool
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		isCSV = true
		grid, err = r.readCSV(path)
	default:
		grid, err = r.readXLSX(path)
	}
	if err != nil {
		return nil, nil, err
	}

	table, units, err := r.split(grid)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if isCSV {
		inferColumns(table)
	}

	r.log.Info("read datasheet", "path", path, "columns", len(table.Columns), "rows", table.Len())
	return table, units, nil
}

// split carves a cell grid into the header, the unit row and the data
// body. Rows before the header and rows listed in SkipRows are dropped.
func (r *Reader) split(grid [][]types.RawCell) (*types.RawTable, types.UnitRow, error) {
	if r.cfg.HeaderRow < 0 || r.cfg.HeaderRow >= len(grid) {
		return nil, nil, fmt.Errorf("%w: header row %d not in sheet of %d rows", ErrLayout, r.cfg.HeaderRow, len(grid))
	}
	if r.cfg.UnitRow <= r.cfg.HeaderRow || r.cfg.UnitRow >= len(grid) {
		return nil, nil, fmt.Errorf("%w: unit row %d not in sheet body (header %d, %d rows)", ErrLayout, r.cfg.UnitRow, r.cfg.HeaderRow, len(grid))
	}

	names := columnNames(grid[r.cfg.HeaderRow])
	width := len(names)

	skip := make(map[int]bool, len(r.cfg.SkipRows))
	for _, s := range r.cfg.SkipRows {
		skip[s] = true
	}

	table := &types.RawTable{Columns: make([]types.RawColumn, width)}
	for i, name := range names {
		table.Columns[i] = types.RawColumn{Name: name, Cells: []types.RawCell{}}
	}
	for rowIdx := r.cfg.HeaderRow + 1; rowIdx < len(grid); rowIdx++ {
		if skip[rowIdx] {
			continue
		}
		row := grid[rowIdx]
		for c := 0; c < width; c++ {
			table.Columns[c].Cells = append(table.Columns[c].Cells, normalize(cellAt(row, c)))
		}
	}

	unitRow := grid[r.cfg.UnitRow]
	units := make(types.UnitRow, width)
	for c, name := range names {
		units[c] = types.Unit{Column: name, Label: normalize(cellAt(unitRow, c))}
	}

	return table, units, nil
}

func cellAt(row []types.RawCell, c int) types.RawCell {
	if c < len(row) {
		return row[c]
	}
	return types.MissingCell()
}

// columnNames derives unique column names from the header row. Blank
// headers become "Unnamed: <i>" and repeats get a ".<n>" suffix.
func columnNames(header []types.RawCell) []string {
	width := len(header)
	for width > 0 && header[width-1].IsMissing() {
		width--
	}

	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := header[i].String()
		if header[i].IsMissing() || strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

// textCell wraps a non-empty string; empty strings are missing.
func textCell(s string) types.RawCell {
	if s == "" {
		return types.MissingCell()
	}
	return types.TextCell(s)
}

// normalize maps NA markers in body and unit cells to missing. Header
// cells are left alone.
func normalize(c types.RawCell) types.RawCell {
	if c.Kind == types.CellText && naValues[c.Text] {
		return types.MissingCell()
	}
	return c
}
