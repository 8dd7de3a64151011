// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"errors"
	"fmt"

	"github.com/pdiddy/sheetclean/pkg/types"
)

var (
	// ErrUnknownLabel is returned when a label has no registered parser.
	ErrUnknownLabel = errors.New("unknown type label")

	// ErrDateParse is returned when a cell is not a recognizable date.
	ErrDateParse = errors.New("invalid date")

	// ErrCurrencyParse is returned when a cell is not a dollar amount.
	ErrCurrencyParse = errors.New("invalid currency amount")

	// ErrNumericParse is returned when a cell is not a number of the
	// expected shape.
	ErrNumericParse = errors.New("invalid number")
)

// ParseError reports a cell that its label's parser rejected. Err wraps
// one of the sentinel errors above.
type ParseError struct {
	Label Label
	Raw   types.RawCell
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q as %q: %v", e.Raw.String(), string(e.Label), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
