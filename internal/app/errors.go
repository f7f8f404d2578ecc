package app

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrNotFound marks reads of ids that do not exist. Mutators treat
	// unknown ids as no-ops instead.
	ErrNotFound = errors.New("not found")
)
