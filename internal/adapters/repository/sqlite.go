package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/okian/proctord/internal/domain/model"
	"github.com/okian/proctord/pkg/metrics"
)

const defaultBucket = "snapshot"

// SQLiteStore persists the snapshot to a single SQLite table as a JSON
// blob, one row per bucket. The whole snapshot is rewritten on every save.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex
	path   string
	bucket string
}

// NewSQLiteStore opens (or creates) the backing file and ensures the state
// table exists.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	if path == "" {
		path = "proctord.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}

	s := &SQLiteStore{db: db, path: path, bucket: defaultBucket}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the backing file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Load reads and decodes the stored snapshot blob.
func (s *SQLiteStore) Load(ctx context.Context) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, s.bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("select snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save serializes the snapshot and upserts it under the configured bucket.
func (s *SQLiteStore) Save(ctx context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		s.bucket, payload); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	metrics.UpdateSnapshotBytes(len(payload))
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}
