package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. Callers match with errors.Is.
var (
	// ErrValidation marks caller-facing input validation failures. They are
	// raised before a command ever reaches the transition reducer.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateID marks a create with an id that already exists in the
	// target collection. It is a kind of validation failure.
	ErrDuplicateID = fmt.Errorf("%w: duplicate id", ErrValidation)

	// ErrSlotFull marks an assignment to a slot already holding SlotCapacity
	// members. Re-assigning an existing member stays a no-op, not an error.
	ErrSlotFull = fmt.Errorf("%w: slot full", ErrValidation)
)
