// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/cyferkey/internal/app"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

type vaultService struct {
	vault     store.VaultStorage
	session   *session.Session
	generator PasswordGenerator
	length    int

	logger *logger.Logger
}

func NewVaultService(vault store.VaultStorage, sess *session.Session, generator PasswordGenerator, length int, log *logger.Logger) VaultService {
	return &vaultService{
		vault:     vault,
		session:   sess,
		generator: generator,
		length:    length,
		logger:    log,
	}
}

// List returns decrypted snapshots of every record sorted by key.
func (v *vaultService) List(ctx context.Context) []*models.Record {
	records := v.vault.FetchAll()
	for _, r := range records {
		r.Decrypt(v.session.Cipher())
	}
	slices.SortFunc(records, func(a, b *models.Record) int {
		return strings.Compare(a.Key(), b.Key())
	})
	return records
}

func (v *vaultService) Add(ctx context.Context, entry models.Entry) error {
	if err := v.vault.Put(models.NewPlaintextRecord(entry.Key, entry.Secrets...)); err != nil {
		return fmt.Errorf("error adding record %q: %w", entry.Key, err)
	}
	return nil
}

func (v *vaultService) Delete(ctx context.Context, key, secret string) {
	v.vault.Remove(key, units.FromString(secret))
}

// Generate stores a random secret under key and returns it.
func (v *vaultService) Generate(ctx context.Context, key string) (string, error) {
	secret := v.generator.Generate(v.length)
	if err := v.vault.Put(models.NewPlaintextRecord(key, secret)); err != nil {
		return "", fmt.Errorf("error storing generated secret for %q: %w", key, err)
	}
	return secret, nil
}

// Save writes the vault to disk and reports the outcome to the session
// subscribers. Failures are not retried.
func (v *vaultService) Save(ctx context.Context) error {
	if err := v.vault.Save(); err != nil {
		v.logger.Err(err).
			Str("func", "vaultService.Save").
			Msg("vault save failed")
		v.session.Publish(session.Event{Kind: session.EventSaveFailed, Message: app.MsgSaveFailed + err.Error()})
		return err
	}

	v.session.Publish(session.Event{Kind: session.EventSaved, Message: app.MsgVaultSaved})
	return nil
}
