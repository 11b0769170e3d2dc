package grant

import "errors"

var (
	// ErrMissingName indicates an entry without an organization name.
	ErrMissingName = errors.New("missing organization name")
	// ErrMissingLocation indicates an entry without a (lat, lng) pair.
	ErrMissingLocation = errors.New("missing coordinates")
	// ErrInvalidLocation indicates coordinates outside valid degree ranges.
	ErrInvalidLocation = errors.New("coordinates out of range")
	// ErrInvalidAmount indicates an amount that is not a non-negative number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidStatus indicates an unknown lifecycle status.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrDuplicateName indicates two entries share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrMetadataMismatch indicates metadata totals that disagree with the entries.
	ErrMetadataMismatch = errors.New("metadata does not match entries")
)
