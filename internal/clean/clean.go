// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean turns a raw datasheet into a typed table. Every column is
// parsed with the parser its unit label selects in the registry; the first
// cell that fails aborts the whole pass.
package clean

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/sheetclean/internal/registry"
	"github.com/pdiddy/sheetclean/pkg/types"
)

// builtinOverrides correct columns whose unit row entry is known to be
// wrong in the source datasheet. They take precedence over configured
// overrides.
var builtinOverrides = map[string]registry.Label{
	// Recorded as text but holds a 0/1 flag.
	"LMABRN": registry.LabelFlag,
}

// Options configures a Cleaner.
type Options struct {
	// Workers is the number of columns parsed concurrently. Values below
	// two clean sequentially.
	Workers int

	// Overrides force a label for the named columns. Column names are
	// matched without regard to case since config keys are lowercased.
	Overrides map[string]string

	// Logger receives per-column diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Cleaner applies registry parsers column by column. It holds no state
// between calls and is safe for concurrent use.
type Cleaner struct {
	reg       *registry.Registry
	overrides map[string]string
	workers   int
	log       *slog.Logger
}

// New creates a Cleaner that resolves labels against reg.
func New(reg *registry.Registry, opts Options) *Cleaner {
	overrides := make(map[string]string, len(opts.Overrides))
	for col, label := range opts.Overrides {
		overrides[strings.ToLower(col)] = label
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		reg:       reg,
		overrides: overrides,
		workers:   opts.Workers,
		log:       logger,
	}
}

// Override returns the forced label for column, if any. Built-in
// corrections win over configured ones.
func (c *Cleaner) Override(column string) (string, bool) {
	if label, ok := builtinOverrides[column]; ok {
		return string(label), true
	}
	label, ok := c.overrides[strings.ToLower(column)]
	return label, ok
}

// ResolveLabel returns the effective label of column. Overrides are
// applied before the unit cell is looked at; a missing (or NaN) unit cell
// is the empty label. Unit cells that are not text cannot name a label.
func (c *Cleaner) ResolveLabel(column string, unit types.RawCell) (string, error) {
	if label, ok := c.Override(column); ok {
		return label, nil
	}

	switch unit.Kind {
	case types.CellText:
		return unit.Text, nil
	case types.CellMissing:
		return "", nil
	case types.CellNumber:
		if math.IsNaN(unit.Number) {
			return "", nil
		}
	}
	return "", fmt.Errorf("%w: non-text unit %q", registry.ErrUnknownLabel, unit.String())
}

// plan is the resolved parser of one column.
type plan struct {
	label string
	parse registry.Parser
}

// Clean parses every column of raw with the parser selected by its unit
// label and returns the typed table. Columns absent from units pass
// through unchanged as text unless a configured override names them. Neither raw nor units is modified. On failure
// no table is returned and the error is a *ColumnError naming the column,
// row and raw value.
func (c *Cleaner) Clean(ctx context.Context, raw *types.RawTable, units types.UnitRow) (*types.CleanedTable, error) {
	plans, err := c.plan(raw, units)
	if err != nil {
		return nil, err
	}

	out := make([]types.Column, len(raw.Columns))
	if c.workers < 2 {
		for i := range raw.Columns {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			col, err := c.cleanColumn(raw.Columns[i], plans[i])
			if err != nil {
				return nil, err
			}
			out[i] = col
		}
		return &types.CleanedTable{Columns: out}, nil
	}

	// Each goroutine writes only its own slot of out and errs. Siblings are
	// not cancelled on failure so the reported error is always the
	// left-most failing column.
	errs := make([]error, len(raw.Columns))
	var g errgroup.Group
	g.SetLimit(c.workers)
	for i := range raw.Columns {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			col, err := c.cleanColumn(raw.Columns[i], plans[i])
			if err != nil {
				errs[i] = err
				return err
			}
			out[i] = col
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		return nil, err
	}
	return &types.CleanedTable{Columns: out}, nil
}

// plan resolves the label and parser of every column before any cell is
// parsed, so label problems surface without touching the data.
func (c *Cleaner) plan(raw *types.RawTable, units types.UnitRow) ([]plan, error) {
	plans := make([]plan, len(raw.Columns))
	listed := make([]bool, len(raw.Columns))

	for _, unit := range units {
		idx := raw.Index(unit.Column)
		if idx < 0 {
			return nil, &ColumnError{Column: unit.Column, Row: -1, Err: ErrColumnNotFound}
		}

		label, err := c.ResolveLabel(unit.Column, unit.Label)
		if err != nil {
			return nil, &ColumnError{Column: unit.Column, Row: -1, Raw: unit.Label, Err: err}
		}
		parse, err := c.reg.Lookup(label)
		if err != nil {
			return nil, &ColumnError{Column: unit.Column, Row: -1, Raw: unit.Label, Err: err}
		}

		plans[idx] = plan{label: label, parse: parse}
		listed[idx] = true
	}

	// Built-in corrections fix unit row entries, so they apply only to
	// listed columns.
	for i, col := range raw.Columns {
		if listed[i] {
			continue
		}
		label, ok := c.overrides[strings.ToLower(col.Name)]
		if !ok {
			label = string(registry.LabelText)
		}
		parse, err := c.reg.Lookup(label)
		if err != nil {
			return nil, &ColumnError{Column: col.Name, Row: -1, Err: err}
		}
		c.log.Debug("column has no unit entry", "column", col.Name, "label", label)
		plans[i] = plan{label: label, parse: parse}
	}

	return plans, nil
}

func (c *Cleaner) cleanColumn(col types.RawColumn, p plan) (types.Column, error) {
	values := make([]types.Value, len(col.Cells))
	for row, cell := range col.Cells {
		v, err := p.parse(cell)
		if err != nil {
			return types.Column{}, &ColumnError{Column: col.Name, Row: row, Raw: cell, Err: err}
		}
		values[row] = v
	}

	dtype := types.InferDType(values)
	c.log.Debug("cleaned column", "column", col.Name, "label", p.label, "dtype", dtype, "rows", len(values))

	return types.Column{
		Name:   col.Name,
		Label:  p.label,
		DType:  dtype,
		Values: values,
	}, nil
}
