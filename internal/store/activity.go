// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/models"
)

const activityTable = "activity"

var activityColumns = []string{
	"id",
	"route",
	"lookup_key",
	"status",
	"remote_addr",
	"trace_id",
	"created_at",
}

type activityRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewActivityRepository returns an [ActivityRepository] backed by db.
func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	return &activityRepository{
		db:     db,
		logger: logger,
	}
}

func (a *activityRepository) Record(ctx context.Context, activity models.Activity) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertActivityQuery(activity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = a.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "activityRepository.Record").
			Str("route", activity.Route).
			Msg("failed to insert activity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (a *activityRepository) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecentActivityQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "activityRepository.Recent").
			Msg("failed to query recent activity")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Activity
	for rows.Next() {
		var item models.Activity
		if err := rows.Scan(
			&item.ID,
			&item.Route,
			&item.Key,
			&item.Status,
			&item.RemoteAddr,
			&item.TraceID,
			&item.CreatedAt,
		); err != nil {
			log.Err(err).
				Str("func", "activityRepository.Recent").
				Msg("failed to scan activity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (a *activityRepository) PruneBefore(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := sq.Delete(activityTable).
		Where(sq.Lt{"created_at": before.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := a.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "activityRepository.PruneBefore").
			Msg("failed to prune activity")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}

func buildInsertActivityQuery(activity models.Activity) (string, []any, error) {
	return sq.Insert(activityTable).
		Columns(activityColumns...).
		Values(
			activity.ID,
			activity.Route,
			activity.Key,
			activity.Status,
			activity.RemoteAddr,
			activity.TraceID,
			activity.CreatedAt.UTC(),
		).
		ToSql()
}

func buildRecentActivityQuery(limit int) (string, []any, error) {
	return sq.Select(activityColumns...).
		From(activityTable).
		OrderBy("created_at DESC").
		Limit(uint64(max(limit, 0))).
		ToSql()
}

// nopActivityRepository is used when the activity log is disabled.
type nopActivityRepository struct{}

// NewNopActivityRepository returns an [ActivityRepository] that stores
// nothing.
func NewNopActivityRepository() ActivityRepository {
	return nopActivityRepository{}
}

func (nopActivityRepository) Record(context.Context, models.Activity) error { return nil }

func (nopActivityRepository) Recent(context.Context, int) ([]models.Activity, error) {
	return nil, nil
}

func (nopActivityRepository) PruneBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}
