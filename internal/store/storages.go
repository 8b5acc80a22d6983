// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/logger"
)

// Storages groups the session-independent persistence of the application.
// The vault itself is opened later, once the session exists.
type Storages struct {
	// ActivityRepository records sync requests. It is a no-op when the
	// activity log is disabled.
	ActivityRepository ActivityRepository

	db *DB
}

// NewStorages initialises the storage layer using the supplied
// configuration and logger. When the activity log is enabled it:
//  1. Opens an SQLite connection to cfg.ActivityDSN, creating the database
//     file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	if !cfg.ActivityEnabled() {
		logger.Info().Msg("activity log disabled")
		return &Storages{ActivityRepository: NewNopActivityRepository()}, nil
	}

	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.ActivityDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		ActivityRepository: NewActivityRepository(db, logger),
		db:                 db,
	}, nil
}

// Close releases the activity database, if one was opened.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
