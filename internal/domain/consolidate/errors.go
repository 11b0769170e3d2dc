package consolidate

import "errors"

var (
	// ErrEmptyGroup indicates a merge was requested for a group without records.
	ErrEmptyGroup = errors.New("empty group")
	// ErrInvalidPolicy indicates an unknown description policy.
	ErrInvalidPolicy = errors.New("invalid merge policy")
)
