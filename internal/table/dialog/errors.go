package dialog

import "errors"

// ErrInvalidClassList indicates a class list that is not a JSON array.
var ErrInvalidClassList = errors.New("class list must be a JSON array")
