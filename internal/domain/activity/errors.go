package activity

import "errors"

// ErrInvalidInput indicates an invalid journal entry.
var ErrInvalidInput = errors.New("invalid activity input")
