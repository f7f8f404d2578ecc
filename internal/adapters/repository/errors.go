package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound = errors.New("snapshot not found")
	ErrClosed   = errors.New("store closed")
)
