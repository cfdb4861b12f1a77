package export

import (
	"errors"
	"fmt"
)

// ErrEmptyTable indicates a table with no cells.
var ErrEmptyTable = errors.New("table has no cells")

// SheetError wraps a failure writing one sheet location.
type SheetError struct {
	// Sheet is the worksheet name.
	Sheet string
	// Cell is the A1 reference or range, when known.
	Cell string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SheetError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("sheet %s, %s: %v", e.Sheet, e.Cell, e.Err)
	}
	return fmt.Sprintf("sheet %s: %v", e.Sheet, e.Err)
}

// Unwrap returns the underlying error.
func (e *SheetError) Unwrap() error {
	return e.Err
}
