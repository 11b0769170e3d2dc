package location

import "errors"

var (
	// ErrInvalidTable indicates a correction table that cannot be decoded.
	ErrInvalidTable = errors.New("invalid location table")
	// ErrInvalidEntry indicates a table entry with a bad name or coordinates.
	ErrInvalidEntry = errors.New("invalid location entry")
)
