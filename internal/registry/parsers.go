// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// Sentinel tokens used by the datasheet to mean "not applicable". Each
// family recognizes only its own tokens.
const (
	dateNA     = "^"
	dashNA     = "-"
	dotNA      = "."
	maxBenefit = "Max Benefit"
)

// dateLayouts are tried in order. ISO forms come first because they are
// unambiguous.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
	"2006/01/02",
	"2006.01.02",
	"1/2/2006",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1-2-2006",
	"01-02-2006",
	"1/2/06",
	"01/02/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"02-Jan-06",
	"20060102",
}

func parseIdentity(c types.RawCell) (types.Value, error) {
	switch c.Kind {
	case types.CellText:
		return types.TextValue(c.Text), nil
	case types.CellNumber:
		return types.FloatValue(c.Number), nil
	case types.CellBool:
		return types.BoolValue(c.Bool), nil
	}
	return types.MissingValue(), nil
}

// parseInt truncates numeric cells toward zero and accepts only integer
// literals in text cells. A missing cell is an error: integer columns
// have no missing marker of their own.
func parseInt(c types.RawCell) (types.Value, error) {
	switch c.Kind {
	case types.CellNumber:
		n := c.Number
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return types.Value{}, fmt.Errorf("%w: %v is not finite", ErrNumericParse, n)
		}
		if n >= math.MaxInt64 || n < math.MinInt64 {
			return types.Value{}, fmt.Errorf("%w: %v overflows int64", ErrNumericParse, n)
		}
		return types.IntValue(int64(math.Trunc(n))), nil
	case types.CellBool:
		if c.Bool {
			return types.IntValue(1), nil
		}
		return types.IntValue(0), nil
	case types.CellText:
		i, err := strconv.ParseInt(strings.TrimSpace(c.Text), 10, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("%w: not an integer", ErrNumericParse)
		}
		return types.IntValue(i), nil
	}
	return types.Value{}, fmt.Errorf("%w: missing value", ErrNumericParse)
}

// parseFloat converts to float64. Missing cells and NaN stay missing.
func parseFloat(c types.RawCell) (types.Value, error) {
	switch c.Kind {
	case types.CellNumber:
		return floatValue(c.Number), nil
	case types.CellBool:
		if c.Bool {
			return types.FloatValue(1), nil
		}
		return types.FloatValue(0), nil
	case types.CellText:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("%w: not a number", ErrNumericParse)
		}
		return floatValue(f), nil
	}
	return types.MissingValue(), nil
}

func floatValue(f float64) types.Value {
	if math.IsNaN(f) {
		return types.MissingValue()
	}
	return types.FloatValue(f)
}

func parseRate(c types.RawCell) (types.Value, error) {
	if isToken(c, dashNA) {
		return types.MissingValue(), nil
	}
	return parseFloat(c)
}

func parseDays(c types.RawCell) (types.Value, error) {
	if isToken(c, dashNA) || isToken(c, dotNA) {
		return types.MissingValue(), nil
	}
	return parseInt(c)
}

// parseBool applies truthiness: non-zero numbers and non-empty text are
// true. Numeric text is judged by its value, so a "0" read as text stays
// false. Missing cells stay missing.
func parseBool(c types.RawCell) (types.Value, error) {
	switch c.Kind {
	case types.CellBool:
		return types.BoolValue(c.Bool), nil
	case types.CellNumber:
		if math.IsNaN(c.Number) {
			return types.MissingValue(), nil
		}
		return types.BoolValue(c.Number != 0), nil
	case types.CellText:
		s := strings.TrimSpace(c.Text)
		if s == "" {
			return types.BoolValue(false), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return types.BoolValue(f != 0), nil
		}
		return types.BoolValue(true), nil
	}
	return types.MissingValue(), nil
}

// parseDate maps "^" and zero to missing. Non-zero numbers are Excel
// serial dates; text is matched against dateLayouts.
func parseDate(c types.RawCell) (types.Value, error) {
	switch c.Kind {
	case types.CellMissing:
		return types.MissingValue(), nil
	case types.CellBool:
		if !c.Bool {
			return types.MissingValue(), nil
		}
		return types.Value{}, fmt.Errorf("%w: boolean cell", ErrDateParse)
	case types.CellNumber:
		if c.Number == 0 {
			return types.MissingValue(), nil
		}
		t, err := excelize.ExcelDateToTime(c.Number, false)
		if err != nil {
			return types.Value{}, fmt.Errorf("%w: %v", ErrDateParse, err)
		}
		return types.TimeValue(t), nil
	}

	if isToken(c, dateNA) {
		return types.MissingValue(), nil
	}
	s := strings.TrimSpace(c.Text)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 {
		return types.MissingValue(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return types.TimeValue(t), nil
		}
	}
	return types.Value{}, fmt.Errorf("%w: unrecognized layout", ErrDateParse)
}

// parseCurrency handles the "... Max Benefit ... $1,234" notes used by the
// dollars columns: the amount is the last space-delimited token. Any other
// text must be a plain number or the "." marker.
func parseCurrency(c types.RawCell) (types.Value, error) {
	switch c.Kind {
	case types.CellNumber:
		return floatValue(c.Number), nil
	case types.CellBool:
		if c.Bool {
			return types.FloatValue(1), nil
		}
		return types.FloatValue(0), nil
	case types.CellMissing:
		return types.MissingValue(), nil
	}

	s := c.Text
	if strings.Contains(s, maxBenefit) {
		fields := strings.Split(s, " ")
		token := strings.Trim(strings.TrimSpace(fields[len(fields)-1]), "$")
		token = strings.ReplaceAll(token, ",", "")
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("%w: no amount after %q", ErrCurrencyParse, maxBenefit)
		}
		return floatValue(f), nil
	}
	if isToken(c, dotNA) {
		return types.MissingValue(), nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return types.Value{}, fmt.Errorf("%w: not a number", ErrCurrencyParse)
	}
	return floatValue(f), nil
}

// isToken reports whether c is the text sentinel token, ignoring
// surrounding whitespace. Every sentinel is matched this way.
func isToken(c types.RawCell, token string) bool {
	return c.Kind == types.CellText && strings.TrimSpace(c.Text) == token
}
