// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService implements the three routes of the sync protocol. Every body
// is cipher-transformed text; the returned key is the decoded lookup key, or
// empty when the request could not be decoded that far.
type SyncService interface {
	Validate(ctx context.Context, body units.Text) error
	Passwords(ctx context.Context, body units.Text) (key string, payload units.Text, err error)
	Generate(ctx context.Context, body units.Text) (key string, payload units.Text, err error)
}

// PasswordGenerator produces random secrets.
type PasswordGenerator interface {
	Generate(length int) string
}

// VaultService is what the terminal UI does with the vault. Records it
// returns are decrypted snapshots.
type VaultService interface {
	List(ctx context.Context) []*models.Record
	Add(ctx context.Context, entry models.Entry) error
	Delete(ctx context.Context, key, secret string)
	Generate(ctx context.Context, key string) (string, error)
	Save(ctx context.Context) error
}

type ActivityService interface {
	Record(ctx context.Context, activity models.Activity) error
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}
