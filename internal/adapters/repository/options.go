package repository

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithBucket overrides the key under which the snapshot blob is stored.
func WithBucket(bucket string) Option {
	return func(s *SQLiteStore) {
		if bucket != "" {
			s.bucket = bucket
		}
	}
}
