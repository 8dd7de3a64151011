// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sheetclean/internal/registry"
	"github.com/pdiddy/sheetclean/pkg/types"
)

func text(ss ...string) []types.RawCell {
	cells := make([]types.RawCell, len(ss))
	for i, s := range ss {
		cells[i] = types.TextCell(s)
	}
	return cells
}

func units(pairs ...string) types.UnitRow {
	var row types.UnitRow
	for i := 0; i+1 < len(pairs); i += 2 {
		row = append(row, types.Unit{Column: pairs[i], Label: types.TextCell(pairs[i+1])})
	}
	return row
}

func newCleaner(opts Options) *Cleaner {
	return New(registry.New(), opts)
}

func TestCleanEndToEnd(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "A", Cells: text("5", "-")},
		{Name: "B", Cells: text("1", "0")},
	}}

	for _, workers := range []int{1, 4} {
		got, err := newCleaner(Options{Workers: workers}).Clean(context.Background(), raw, units("A", "days", "B", "flag"))
		require.NoError(t, err)

		require.Equal(t, 2, got.Len())
		assert.Equal(t, []string{"A", "B"}, got.Names())
		assert.Equal(t, []types.Value{types.IntValue(5), types.BoolValue(true)}, got.Row(0))
		assert.Equal(t, []types.Value{types.MissingValue(), types.BoolValue(false)}, got.Row(1))

		a, _ := got.Column("A")
		assert.Equal(t, "days", a.Label)
		assert.Equal(t, types.DTypeInt, a.DType)
		assert.True(t, a.Nullable())

		b, _ := got.Column("B")
		assert.Equal(t, types.DTypeBool, b.DType)
		assert.False(t, b.Nullable())
	}
}

func TestCleanLMABRNIsAlwaysFlag(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "LMABRN", Cells: []types.RawCell{types.TextCell("1"), types.TextCell("0"), types.MissingCell()}},
		{Name: "FLAGGED", Cells: []types.RawCell{types.NumberCell(2), types.NumberCell(0), types.MissingCell()}},
	}}
	want := []types.Value{types.BoolValue(true), types.BoolValue(false), types.MissingValue()}

	for _, recorded := range []types.RawCell{types.TextCell("text"), types.TextCell("bogus"), types.MissingCell()} {
		row := types.UnitRow{
			{Column: "LMABRN", Label: recorded},
			{Column: "FLAGGED", Label: types.TextCell("flag")},
		}
		got, err := newCleaner(Options{Overrides: map[string]string{"LMABRN": "text"}}).Clean(context.Background(), raw, row)
		require.NoError(t, err, recorded.String())

		for _, col := range got.Columns {
			assert.Equal(t, "flag", col.Label)
			assert.Equal(t, types.DTypeBool, col.DType)
			assert.Equal(t, want, col.Values, col.Name)
			assert.True(t, col.Nullable())
		}
	}
}

func TestResolveLabel(t *testing.T) {
	c := newCleaner(Options{Overrides: map[string]string{"NOTE": "text"}})

	tests := []struct {
		name    string
		column  string
		unit    types.RawCell
		want    string
		wantErr bool
	}{
		{name: "text unit", column: "WBA", unit: types.TextCell("weeks"), want: "weeks"},
		{name: "missing unit", column: "EFFDATE", unit: types.MissingCell(), want: ""},
		{name: "nan unit", column: "EFFDATE", unit: types.NumberCell(math.NaN()), want: ""},
		{name: "builtin override", column: "LMABRN", unit: types.TextCell("text"), want: "flag"},
		{name: "configured override", column: "NOTE", unit: types.TextCell("dollars"), want: "text"},
		{name: "numeric unit", column: "X", unit: types.NumberCell(3), wantErr: true},
		{name: "bool unit", column: "X", unit: types.BoolCell(true), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ResolveLabel(tt.column, tt.unit)
			if tt.wantErr {
				assert.ErrorIs(t, err, registry.ErrUnknownLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverrideBuiltinWins(t *testing.T) {
	c := newCleaner(Options{Overrides: map[string]string{"LMABRN": "text", "X": "days", "note": "text"}})

	label, ok := c.Override("LMABRN")
	assert.True(t, ok)
	assert.Equal(t, "flag", label)

	label, ok = c.Override("X")
	assert.True(t, ok)
	assert.Equal(t, "days", label)

	label, ok = c.Override("NOTE")
	assert.True(t, ok, "configured overrides ignore case")
	assert.Equal(t, "text", label)

	_, ok = c.Override("Y")
	assert.False(t, ok)
}

func TestCleanUnknownLabel(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "ST", Cells: text("AK")},
		{Name: "ODD", Cells: text("1")},
	}}

	_, err := newCleaner(Options{}).Clean(context.Background(), raw, units("ST", "text", "ODD", "bogus"))
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrUnknownLabel)

	var ce *ColumnError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "ODD", ce.Column)
	assert.Equal(t, -1, ce.Row)
	assert.Contains(t, err.Error(), `"ODD"`)
	assert.Contains(t, err.Error(), "bogus")
}

func TestCleanCellFailureAborts(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "WBA", Cells: text("1", "2", "3")},
		{Name: "DAYS", Cells: text("5", "n/a", "6")},
		{Name: "EFF", Cells: text("2020-01-01", "never", "2020-03-01")},
	}}
	row := units("WBA", "weeks", "DAYS", "days", "EFF", "date")

	for _, workers := range []int{1, 3} {
		got, err := newCleaner(Options{Workers: workers}).Clean(context.Background(), raw, row)
		require.Error(t, err)
		assert.Nil(t, got)

		var ce *ColumnError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "DAYS", ce.Column, "left-most failing column is reported")
		assert.Equal(t, 1, ce.Row)
		assert.Equal(t, "n/a", ce.Raw.Text)
		assert.ErrorIs(t, err, registry.ErrNumericParse)
		assert.Contains(t, err.Error(), "row 2")
		assert.Contains(t, err.Error(), `"n/a"`)
	}
}

func TestCleanDateFailure(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "EFF", Cells: text("2020-01-01", "^", "someday")},
	}}

	_, err := newCleaner(Options{}).Clean(context.Background(), raw, units("EFF", "end"))
	assert.ErrorIs(t, err, registry.ErrDateParse)
}

func TestCleanColumnNotFound(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{{Name: "A", Cells: text("x")}}}

	_, err := newCleaner(Options{}).Clean(context.Background(), raw, units("A", "text", "B", "days"))
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), `"B"`)
}

func TestCleanUnlistedColumnsPassThrough(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "ST", Cells: text("AL", "AK")},
		{Name: "WEEKS", Cells: text("26", "20")},
	}}

	got, err := newCleaner(Options{}).Clean(context.Background(), raw, units("WEEKS", "weeks"))
	require.NoError(t, err)

	st, ok := got.Column("ST")
	require.True(t, ok)
	assert.Equal(t, "text", st.Label)
	assert.Equal(t, []types.Value{types.TextValue("AL"), types.TextValue("AK")}, st.Values)
	assert.Equal(t, []string{"ST", "WEEKS"}, got.Names())
}

func TestCleanBuiltinCorrectionNeedsUnitEntry(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "LMABRN", Cells: text("yes")},
		{Name: "NOTE", Cells: text("7")},
	}}

	got, err := newCleaner(Options{Overrides: map[string]string{"note": "days"}}).Clean(context.Background(), raw, nil)
	require.NoError(t, err)

	lmabrn, _ := got.Column("LMABRN")
	assert.Equal(t, "text", lmabrn.Label)
	assert.Equal(t, []types.Value{types.TextValue("yes")}, lmabrn.Values)

	note, _ := got.Column("NOTE")
	assert.Equal(t, "days", note.Label)
	assert.Equal(t, []types.Value{types.IntValue(7)}, note.Values)
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "D", Cells: text("-", "4")},
	}}
	row := units("D", "days")

	_, err := newCleaner(Options{}).Clean(context.Background(), raw, row)
	require.NoError(t, err)

	assert.Equal(t, text("-", "4"), raw.Columns[0].Cells)
	assert.Equal(t, units("D", "days"), row)
}

func TestCleanIdentityIsIdempotent(t *testing.T) {
	raw := &types.RawTable{Columns: []types.RawColumn{
		{Name: "NAME", Cells: []types.RawCell{types.TextCell("Alaska"), types.NumberCell(7), types.MissingCell()}},
	}}
	c := newCleaner(Options{})

	first, err := c.Clean(context.Background(), raw, units("NAME", "unit"))
	require.NoError(t, err)

	again := &types.RawTable{Columns: []types.RawColumn{{Name: "NAME", Cells: []types.RawCell{
		types.TextCell(first.Columns[0].Values[0].Text),
		types.NumberCell(first.Columns[0].Values[1].Float),
		types.MissingCell(),
	}}}}
	second, err := c.Clean(context.Background(), again, units("NAME", "unit"))
	require.NoError(t, err)

	assert.Equal(t, first.Columns[0].Values, second.Columns[0].Values)
}

func TestCleanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := &types.RawTable{Columns: []types.RawColumn{{Name: "A", Cells: text("1")}}}
	for _, workers := range []int{1, 2} {
		_, err := newCleaner(Options{Workers: workers}).Clean(ctx, raw, units("A", "weeks"))
		assert.True(t, errors.Is(err, context.Canceled))
	}
}
