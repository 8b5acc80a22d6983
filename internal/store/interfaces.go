// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VaultStorage is the record collection of one logged-in identity.
// Implementations must be safe for concurrent use.
type VaultStorage interface {
	Fetch(key string) (*models.Record, bool)
	FetchAll() []*models.Record
	Put(record *models.Record) error
	Remove(key string, secret units.Text)
	Save() error
}

// ActivityRepository keeps a log of handled sync requests.
type ActivityRepository interface {
	Record(ctx context.Context, activity models.Activity) error
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
	PruneBefore(ctx context.Context, before time.Time) (int64, error)
}
