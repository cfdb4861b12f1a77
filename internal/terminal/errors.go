package terminal

import "errors"

// ErrNoTable indicates a document without a table in its editable region.
var ErrNoTable = errors.New("document has no table to edit")
