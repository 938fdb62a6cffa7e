package comment

import "errors"

// ErrInvalidInput indicates a missing or oversized comment field.
var ErrInvalidInput = errors.New("invalid comment input")
