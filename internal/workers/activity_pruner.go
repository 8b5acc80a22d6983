// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/service"
)

// ActivityPruner deletes activity rows older than the retention period, once
// at start and then on every interval tick.
type ActivityPruner struct {
	activity  service.ActivityService
	interval  time.Duration
	retention time.Duration

	logger *logger.Logger
}

func NewActivityPruner(activity service.ActivityService, cfg config.Workers, logger *logger.Logger) *ActivityPruner {
	return &ActivityPruner{
		activity:  activity,
		interval:  cfg.PruneInterval,
		retention: cfg.ActivityRetention,
		logger:    logger,
	}
}

// Run prunes until ctx is cancelled. A failed prune is logged and retried on
// the next tick.
func (p *ActivityPruner) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.prune(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *ActivityPruner) prune(ctx context.Context) {
	removed, err := p.activity.Prune(ctx, p.retention)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Err(err).
			Str("func", "ActivityPruner.prune").
			Msg("error pruning activity")
		return
	}

	p.logger.Debug().
		Str("func", "ActivityPruner.prune").
		Int64("removed", removed).
		Dur("retention", p.retention).
		Msg("activity pruned")
}
