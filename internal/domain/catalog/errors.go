package catalog

import "errors"

var (
	// ErrNotFound indicates the achievement doesn't exist.
	ErrNotFound = errors.New("catalog entry not found")
	// ErrInvalidInput indicates invalid catalog input.
	ErrInvalidInput = errors.New("invalid catalog input")
)
