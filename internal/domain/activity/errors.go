package activity

import "errors"

// ErrInvalidInput indicates an empty or untyped activity entry.
var ErrInvalidInput = errors.New("invalid activity input")
