// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers for the given configuration.
// The activity pruner is registered only while the activity log is enabled.
func NewWorkers(services *service.Services, storage config.Storage, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if storage.ActivityEnabled() {
		w.workers = append(w.workers, NewActivityPruner(services.ActivityService, cfg, logger))
	}
	return w
}

// Len returns the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and waits for all of them. The first failure
// cancels the others.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}
