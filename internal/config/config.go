// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors are wrapped via this package's error kinds.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory recompute job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of recompute workers.
	WorkerCount int `koanf:"worker_count"`

	// PendingSize bounds the pending-request tracker.
	PendingSize int `koanf:"pending_size"`

	// HistoryDepth caps how many history entries feed the repetition
	// penalty per participant.
	HistoryDepth int `koanf:"history_depth"`

	// MaxHistoryLimit caps GET /history/{id}?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`

	// MeetingMultipliers overrides entries of the meeting-type multiplier
	// table, keyed by meeting type then role.
	MeetingMultipliers map[string]map[string]float64 `koanf:"meeting_multipliers"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		QueueSize:          1000,
		WorkerCount:        runtime.NumCPU() * 2,
		PendingSize:        10_000,
		HistoryDepth:       10,
		MaxHistoryLimit:    50,
		MeetingMultipliers: map[string]map[string]float64{},
	}
}
