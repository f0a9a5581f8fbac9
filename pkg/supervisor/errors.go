package supervisor

import "errors"

// Package-specific errors
var (
	// ErrAlreadyStarted is returned by Start on a running manager.
	ErrAlreadyStarted = errors.New("supervisor already started")

	// ErrNotStarted is returned by Stop on a manager that is not running.
	ErrNotStarted = errors.New("supervisor not started")
)
