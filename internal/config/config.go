// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the sqlite file holding the snapshot blob.
	DBPath string `koanf:"db_path"`

	// AdminSecret gates the admin session flag.
	AdminSecret string `koanf:"admin_secret"`

	// PointsPerSlot seeds the points awarded per assigned slot when no
	// stored snapshot exists.
	PointsPerSlot int `koanf:"points_per_slot"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DBPath:              "proctord.db",
		AdminSecret:         "admin123",
		PointsPerSlot:       10,
		MaxLeaderboardLimit: 100,
	}
}
