// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MKhiriev/cyferkey/internal/app"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

// syncService is the concrete implementation of SyncService.
//
// Request bodies are the identity and, for /passwords and /generate, the
// lookup key concatenated without a separator and transformed as one text.
// They are split at the length of the session identity in code units.
type syncService struct {
	vault     store.VaultStorage
	session   *session.Session
	generator PasswordGenerator
	length    int

	logger *logger.Logger
}

// NewSyncService constructs a SyncService bound to one session and its vault.
// length is the size of secrets produced by Generate.
func NewSyncService(vault store.VaultStorage, sess *session.Session, generator PasswordGenerator, length int, log *logger.Logger) SyncService {
	return &syncService{
		vault:     vault,
		session:   sess,
		generator: generator,
		length:    length,
		logger:    log,
	}
}

// Validate reports whether body decrypts to the session identity and
// publishes the outcome to the session subscribers.
func (s *syncService) Validate(ctx context.Context, body units.Text) error {
	plain := s.session.Cipher().Transform(body)
	if !plain.Equal(s.session.IdentityText()) {
		s.session.Publish(session.Event{Kind: session.EventRejected, Message: app.MsgExtensionRejected})
		return ErrIdentityMismatch
	}

	s.session.Publish(session.Event{Kind: session.EventConnected, Message: app.MsgExtensionConnected})
	return nil
}

// Passwords returns every secret stored under the requested key, each one
// prefixed by its length unit, transformed as a whole.
func (s *syncService) Passwords(ctx context.Context, body units.Text) (string, units.Text, error) {
	key, err := s.split(body)
	if err != nil {
		return key, nil, err
	}

	record, ok := s.vault.Fetch(key)
	if !ok {
		return key, nil, fmt.Errorf("%w: %q", ErrRecordNotFound, key)
	}
	record.Decrypt(s.session.Cipher())

	payload := make(units.Text, 0, 16*record.Len())
	for _, secret := range record.Secrets() {
		if secret.Len() > math.MaxUint16 {
			return key, nil, fmt.Errorf("secret under %q too long for a length unit: %w", key, store.ErrSecretTooLong)
		}
		payload = append(payload, uint16(secret.Len()))
		payload = append(payload, secret...)
	}

	s.logger.Debug().
		Str("func", "syncService.Passwords").
		Str("key", key).
		Int("secrets", record.Len()).
		Msg("serving secrets")

	return key, s.session.Cipher().Transform(payload), nil
}

// Generate stores a fresh secret under the requested key and returns it
// transformed. Subscribers are asked to reload their view of the vault.
func (s *syncService) Generate(ctx context.Context, body units.Text) (string, units.Text, error) {
	key, err := s.split(body)
	if err != nil {
		return key, nil, err
	}

	secret := s.generator.Generate(s.length)
	if err = s.vault.Put(models.NewPlaintextRecord(key, secret)); err != nil {
		if errors.Is(err, store.ErrEmptyKey) {
			return key, nil, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
		}
		return key, nil, fmt.Errorf("error storing generated secret: %w", err)
	}

	s.logger.Debug().
		Str("func", "syncService.Generate").
		Str("key", key).
		Msg("generated secret stored")

	s.session.Publish(session.Event{Kind: session.EventReload, Message: app.MsgSecretGenerated + key})

	return key, s.session.Cipher().TransformString(secret), nil
}

// split decrypts body and separates the identity prefix from the key.
func (s *syncService) split(body units.Text) (string, error) {
	identity := s.session.IdentityText()

	plain := s.session.Cipher().Transform(body)
	if plain.Len() < identity.Len() {
		return "", fmt.Errorf("%w: body shorter than identity", ErrMalformedRequest)
	}

	if !plain[:identity.Len()].Equal(identity) {
		return "", ErrIdentityMismatch
	}
	return plain[identity.Len():].RawString(), nil
}
