// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"errors"
	"fmt"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// ErrColumnNotFound is returned when the unit row names a column the
// table does not have.
var ErrColumnNotFound = errors.New("column not found")

// ColumnError locates a cleaning failure. Row is the zero-based data row
// of the offending cell, or -1 when the failure concerns the whole column
// (an unknown label or a missing column).
type ColumnError struct {
	Column string
	Row    int
	Raw    types.RawCell
	Err    error
}

func (e *ColumnError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("column %q, row %d: %v", e.Column, e.Row+1, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}
