// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/domain-landing/models"
	"github.com/danielhkuo/domain-landing/telemetry"
)

// EventRepo persists telemetry events. It is a telemetry.Sink.
type EventRepo struct {
	db *sqlx.DB
}

func NewEventRepo(db *sqlx.DB) *EventRepo {
	return &EventRepo{db: db}
}

// Track stores e. Failures are logged, never returned to the caller.
func (r *EventRepo) Track(ctx context.Context, e telemetry.Event) {
	if err := r.Insert(ctx, e); err != nil {
		slog.Error("failed to store event", "event", e.Name, "error", err)
	}
}

func (r *EventRepo) Insert(ctx context.Context, e telemetry.Event) error {
	props := []byte("{}")
	if len(e.Properties) > 0 {
		var err error
		if props, err = json.Marshal(e.Properties); err != nil {
			return fmt.Errorf("encoding properties: %w", err)
		}
	}

	query := r.db.Rebind(`
		INSERT INTO event (id, name, category, label, value, properties, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		uuid.NewString(), e.Name, e.Category, e.Label, e.Value, string(props), e.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// Recent returns the latest events, newest first.
func (r *EventRepo) Recent(ctx context.Context, limit int) ([]models.StoredEvent, error) {
	query := r.db.Rebind(`
		SELECT id, name, category, label, value, properties, created_at
		FROM event
		ORDER BY created_at DESC
		LIMIT ?`)

	events := []models.StoredEvent{}
	if err := r.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// CountByName returns how many events of each name were stored.
func (r *EventRepo) CountByName(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Name  string `db:"name"`
		Count int    `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT name, COUNT(*) AS n FROM event GROUP BY name"); err != nil {
		return nil, fmt.Errorf("counting events: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Name] = row.Count
	}
	return counts, nil
}
