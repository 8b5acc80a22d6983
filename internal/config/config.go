// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// cyferkey vault. It aggregates all sub-configurations and is populated by
// merging defaults, environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the vault directory and the activity database location.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the sync listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds log destination and verbosity.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// GeneratedLength is the number of characters in a password produced by
	// the /generate route and the TUI generate action.
	// Env: APP_GENERATED_LENGTH
	GeneratedLength int `env:"GENERATED_LENGTH"`
}

// ActivityDisabled is the ActivityDSN value that turns the activity log off.
const ActivityDisabled = "off"

// Storage groups the on-disk locations used by the application.
type Storage struct {
	// DataDir is the directory holding one <identity>.encrypt file per
	// account.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// ActivityDSN is the SQLite data source for the sync activity log.
	// The value "off" disables the log.
	// Env: STORAGE_ACTIVITY_DSN
	ActivityDSN string `env:"ACTIVITY_DSN"`
}

// ActivityEnabled reports whether the activity log should be opened.
func (s Storage) ActivityEnabled() bool {
	return s.ActivityDSN != ActivityDisabled
}

// Server holds network and limit settings for the sync listener.
type Server struct {
	// Address is the loopback TCP address the sync listener binds,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS"`

	// MaxBodyBytes caps a request body. Larger bodies are rejected with 400.
	// Env: SERVER_MAX_BODY_BYTES
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES"`

	// ShutdownTimeout bounds graceful shutdown when the UI exits.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// PruneInterval is how often old activity rows are deleted.
	// Env: WORKERS_PRUNE_INTERVAL
	PruneInterval time.Duration `env:"PRUNE_INTERVAL"`

	// ActivityRetention is how long activity rows are kept.
	// Env: WORKERS_ACTIVITY_RETENTION
	ActivityRetention time.Duration `env:"ACTIVITY_RETENTION"`
}

// Log holds logging settings. The vault binary owns the terminal, so logs
// always go to a file.
type Log struct {
	// File is the log file path.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Defaults returns the configuration used for every field no source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{GeneratedLength: 10},
		Storage: Storage{
			DataDir:     "data",
			ActivityDSN: "data/activity.db",
		},
		Server: Server{
			Address:         "127.0.0.1:6700",
			MaxBodyBytes:    64 << 10,
			ShutdownTimeout: 5 * time.Second,
		},
		Workers: Workers{
			PruneInterval:     time.Hour,
			ActivityRetention: 30 * 24 * time.Hour,
		},
		Log: Log{
			File:  "cyferkey.log",
			Level: "info",
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  0. Defaults
//  1. Environment variables
//  2. Command-line flags (os.Args)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
