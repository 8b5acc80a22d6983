// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/internal/utils"
	"github.com/MKhiriev/cyferkey/models"
)

type activityService struct {
	repository store.ActivityRepository
	ids        *utils.UUIDGenerator
	now        func() time.Time

	logger *logger.Logger
}

func NewActivityService(repository store.ActivityRepository, log *logger.Logger) ActivityService {
	return &activityService{
		repository: repository,
		ids:        utils.NewUUIDGenerator(),
		now:        time.Now,
		logger:     log,
	}
}

// Record stores activity, filling in the ID and timestamp when missing.
func (a *activityService) Record(ctx context.Context, activity models.Activity) error {
	if activity.ID == "" {
		activity.ID = a.ids.Generate()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = a.now()
	}
	return a.repository.Record(ctx, activity)
}

func (a *activityService) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	return a.repository.Recent(ctx, limit)
}

// Prune deletes activity older than retention and returns the number of rows
// removed.
func (a *activityService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	removed, err := a.repository.PruneBefore(ctx, a.now().Add(-retention))
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		a.logger.Info().
			Str("func", "activityService.Prune").
			Int64("removed", removed).
			Msg("old activity pruned")
	}
	return removed, nil
}
