// Package repository defines the snapshot store interface and errors.
//
// The engine persists its entire state as one opaque blob: the store is a
// single key-value slot, not a relational mapping of the entities.
package repository

import (
	"context"

	"github.com/okian/proctord/internal/domain/model"
)

// Store provides read/write access to the persisted snapshot.
type Store interface {
	// Load returns the stored snapshot.
	// Returns ErrNotFound when no snapshot has been saved yet.
	Load(ctx context.Context) (model.Snapshot, error)

	// Save replaces the stored snapshot wholesale.
	Save(ctx context.Context, s model.Snapshot) error

	// Close releases underlying resources.
	Close() error
}
