// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// readXLSX loads the configured worksheet (the first one by default) into
// a grid of typed cells. Values are read unformatted so numbers and date
// serials keep their stored value.
func (r *Reader) readXLSX(path string) ([][]types.RawCell, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := r.cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}

	grid := make([][]types.RawCell, len(rows))
	for i, row := range rows {
		grid[i] = make([]types.RawCell, len(row))
		for j, value := range row {
			if value == "" {
				grid[i][j] = types.MissingCell()
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("addressing cell (%d, %d): %w", i+1, j+1, err)
			}
			cellType, err := f.GetCellType(sheet, axis)
			if err != nil {
				return nil, fmt.Errorf("reading type of %s!%s: %w", sheet, axis, err)
			}
			grid[i][j] = xlsxCell(cellType, value)
		}
	}

	r.log.Debug("read workbook", "path", path, "sheet", sheet, "rows", len(rows))
	return grid, nil
}

// xlsxCell classifies a stored cell value. Cells without an explicit type
// are numbers in the OOXML format unless the value says otherwise.
func xlsxCell(cellType excelize.CellType, value string) types.RawCell {
	switch cellType {
	case excelize.CellTypeBool:
		return types.BoolCell(value == "1" || strings.EqualFold(value, "true"))
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return types.NumberCell(f)
		}
	}
	return textCell(value)
}
