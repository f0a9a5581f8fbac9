package validator

import "errors"

// Package-specific errors. Ordinary mismatches are never errors; they are
// failed Outcomes. Errors mark faults in the validator tree itself.
var (
	// ErrAmbiguousMatch is returned by Any when two or more branches match
	// the same input. That means the schema's branches overlap, which is a
	// bug in how the tree was assembled, not a property of the input.
	ErrAmbiguousMatch = errors.New("multiple validator branches matched the same value")
)
