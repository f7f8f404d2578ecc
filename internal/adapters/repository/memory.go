package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/okian/proctord/internal/domain/model"
)

// MemoryStore keeps the snapshot blob in memory. It round-trips through
// JSON like the SQLite store so tests observe the same serialization
// behavior.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
	closed  bool

	// FailSaves makes every Save return an error, for exercising the
	// fire-and-forget persistence path.
	FailSaves bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved snapshot or ErrNotFound.
func (m *MemoryStore) Load(_ context.Context) (model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return model.Snapshot{}, ErrClosed
	}
	if m.payload == nil {
		return model.Snapshot{}, ErrNotFound
	}
	var snap model.Snapshot
	if err := json.Unmarshal(m.payload, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// SeedPayload primes the store with a raw blob, bypassing Save. Tests use it
// to stage legacy or corrupt payloads.
func (m *MemoryStore) SeedPayload(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
}

// Save serializes and retains the snapshot.
func (m *MemoryStore) Save(_ context.Context, snap model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailSaves {
		return fmt.Errorf("save snapshot: store unavailable")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	m.payload = payload
	return nil
}

// Close marks the store closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
