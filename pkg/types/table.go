// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the table, value and configuration structures shared
// by the reader, cleaner, writers and CLI.
package types

import (
	"strconv"
	"strings"
)

// CellKind identifies what a sheet cell held before cleaning.
type CellKind int

const (
	CellMissing CellKind = iota
	CellText
	CellNumber
	CellBool
)

// String returns the lowercase name of the kind.
func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	default:
		return "missing"
	}
}

// RawCell is a single cell as supplied by the sheet reader. Only the field
// matching Kind is meaningful.
type RawCell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
}

// MissingCell returns an empty cell.
func MissingCell() RawCell { return RawCell{Kind: CellMissing} }

// TextCell returns a text cell holding s.
func TextCell(s string) RawCell { return RawCell{Kind: CellText, Text: s} }

// NumberCell returns a numeric cell holding f.
func NumberCell(f float64) RawCell { return RawCell{Kind: CellNumber, Number: f} }

// BoolCell returns a boolean cell holding b.
func BoolCell(b bool) RawCell { return RawCell{Kind: CellBool, Bool: b} }

// IsMissing reports whether the cell is empty.
func (c RawCell) IsMissing() bool { return c.Kind == CellMissing }

// String renders the cell the way it appeared in the sheet. It is used in
// error messages, so missing cells render as "<missing>".
func (c RawCell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellBool:
		return strings.ToUpper(strconv.FormatBool(c.Bool))
	default:
		return "<missing>"
	}
}

// RawColumn is one named column of raw cells.
type RawColumn struct {
	Name  string
	Cells []RawCell
}

// RawTable is the datasheet body after the descriptive rows have been
// skipped. Every column has the same number of cells.
type RawTable struct {
	Columns []RawColumn
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Index returns the position of the named column, or -1.
func (t *RawTable) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in sheet order.
func (t *RawTable) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Unit pairs a column name with the cell found in the sheet's unit row.
type Unit struct {
	Column string
	Label  RawCell
}

// UnitRow lists the unit annotation of every column in sheet order.
type UnitRow []Unit

// Column is one cleaned column. Label is the effective type label used to
// parse it and DType the runtime type of its values.
type Column struct {
	Name   string
	Label  string
	DType  DType
	Values []Value
}

// Nullable reports whether any value in the column is missing.
func (c Column) Nullable() bool {
	for _, v := range c.Values {
		if v.IsMissing() {
			return true
		}
	}
	return false
}

// CleanedTable is the typed result of a cleaning pass. Column and row order
// match the RawTable it was built from.
type CleanedTable struct {
	Columns []Column
}

// Len returns the number of rows.
func (t *CleanedTable) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Names returns the column names in order.
func (t *CleanedTable) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the values of row i across all columns.
func (t *CleanedTable) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Values[i]
	}
	return row
}

// Column returns the named column.
func (t *CleanedTable) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
