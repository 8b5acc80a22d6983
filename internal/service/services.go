// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/store"
)

// Services groups everything built on top of one logged-in session.
type Services struct {
	SyncService     SyncService
	VaultService    VaultService
	ActivityService ActivityService
	Generator       PasswordGenerator
}

func NewServices(vault store.VaultStorage, activity store.ActivityRepository, sess *session.Session, cfg config.App, log *logger.Logger) (*Services, error) {
	if cfg.GeneratedLength <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGeneratedLength, cfg.GeneratedLength)
	}

	generator := NewPasswordGenerator()

	return &Services{
		SyncService:     NewSyncService(vault, sess, generator, cfg.GeneratedLength, log.GetChildLogger()),
		VaultService:    NewVaultValidationService().Wrap(NewVaultService(vault, sess, generator, cfg.GeneratedLength, log.GetChildLogger())),
		ActivityService: NewActivityService(activity, log.GetChildLogger()),
		Generator:       generator,
	}, nil
}
