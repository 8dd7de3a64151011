// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile summarizes the columns of a cleaned table.
package profile

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/montanaflynn/stats"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// ColumnProfile holds summary statistics for one column. The numeric
// fields are set only when Numeric is true; First and Last only for date
// columns.
type ColumnProfile struct {
	Column  string
	Label   string
	DType   types.DType
	Count   int
	Missing int
	Unique  int

	Numeric bool
	Min     float64
	Max     float64
	Mean    float64
	Median  float64
	StdDev  float64

	First time.Time
	Last  time.Time
}

// Profile computes a ColumnProfile for every column of table.
func Profile(table *types.CleanedTable) ([]ColumnProfile, error) {
	out := make([]ColumnProfile, len(table.Columns))
	for i, col := range table.Columns {
		p, err := profileColumn(col)
		if err != nil {
			return nil, fmt.Errorf("profiling column %q: %w", col.Name, err)
		}
		out[i] = p
	}
	return out, nil
}

func profileColumn(col types.Column) (ColumnProfile, error) {
	p := ColumnProfile{Column: col.Name, Label: col.Label, DType: col.DType}

	var nums []float64
	seen := make(map[string]struct{})
	for _, v := range col.Values {
		if v.IsMissing() {
			p.Missing++
			continue
		}
		p.Count++
		seen[v.String()] = struct{}{}

		if f, ok := v.Numeric(); ok {
			nums = append(nums, f)
		}
		if v.Kind == types.KindTime {
			if p.First.IsZero() || v.Time.Before(p.First) {
				p.First = v.Time
			}
			if p.Last.IsZero() || v.Time.After(p.Last) {
				p.Last = v.Time
			}
		}
	}
	p.Unique = len(seen)

	if len(nums) == 0 || len(nums) != p.Count {
		return p, nil
	}

	var err error
	if p.Min, err = stats.Min(nums); err != nil {
		return p, err
	}
	if p.Max, err = stats.Max(nums); err != nil {
		return p, err
	}
	if p.Mean, err = stats.Mean(nums); err != nil {
		return p, err
	}
	if p.Median, err = stats.Median(nums); err != nil {
		return p, err
	}
	if p.StdDev, err = stats.StandardDeviation(nums); err != nil {
		return p, err
	}
	p.Numeric = true
	return p, nil
}

// Render writes profiles as an aligned text table.
func Render(w io.Writer, profiles []ColumnProfile) error {
	rows := [][]string{{"column", "label", "dtype", "count", "missing", "unique", "min", "max", "mean", "median", "std"}}
	for _, p := range profiles {
		row := []string{p.Column, p.Label, string(p.DType), strconv.Itoa(p.Count), strconv.Itoa(p.Missing), strconv.Itoa(p.Unique)}
		switch {
		case p.Numeric:
			row = append(row, num(p.Min), num(p.Max), num(p.Mean), num(p.Median), num(p.StdDev))
		case !p.First.IsZero():
			row = append(row, types.TimeValue(p.First).String(), types.TimeValue(p.Last).String(), "", "", "")
		default:
			row = append(row, "", "", "", "", "")
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
