package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"alert-engine/internal/models"
)

// LatestInstanceTriggeredAt returns the triggered_at of the most recent
// instance for the given rule. The second return is false when the rule
// has never fired.
func (d *DB) LatestInstanceTriggeredAt(ctx context.Context, alertID string) (time.Time, bool, error) {
	var triggeredAt time.Time
	err := d.Pool.QueryRow(ctx, `
        SELECT triggered_at FROM alert_instances
        WHERE alert_id = $1
        ORDER BY triggered_at DESC
        LIMIT 1`, alertID).Scan(&triggeredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get latest instance for alert %s: %w", alertID, err)
	}
	return triggeredAt, true, nil
}

// CreateInstanceWithNotifications inserts one alert instance and its
// notification fan-out in a single transaction: either all rows persist
// or none do, keeping notifications_sent consistent with the rows it
// names.
func (d *DB) CreateInstanceWithNotifications(ctx context.Context, inst models.AlertInstance, notifs []models.Notification) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        INSERT INTO alert_instances (
            id, alert_id, triggered_value, message, metadata, resolved,
            resolved_by, resolved_at, notifications_sent, triggered_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inst.ID, inst.AlertID, inst.TriggeredValue, inst.Message, inst.Metadata,
		inst.Resolved, inst.ResolvedBy, inst.ResolvedAt, inst.NotificationsSent,
		inst.TriggeredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert instance: %w", err)
	}

	for _, n := range notifs {
		_, err = tx.Exec(ctx, `
            INSERT INTO notifications (
                id, user_id, title, message, type, data, read, read_at,
                action_url, expires_at, created_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			n.ID, n.UserID, n.Title, n.Message, n.Type, n.Data, n.Read, n.ReadAt,
			n.ActionURL, n.ExpiresAt, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit fan-out: %w", err)
	}
	return nil
}

// ListInstances returns recent alert instances for the read API.
func (d *DB) ListInstances(ctx context.Context, limit, offset int) ([]models.AlertInstance, error) {
	query := `
        SELECT id, alert_id, triggered_value, message, metadata, resolved,
               resolved_by, resolved_at, notifications_sent, triggered_at
        FROM alert_instances
        ORDER BY triggered_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := d.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert instances: %w", err)
	}
	defer rows.Close()

	var list []models.AlertInstance
	for rows.Next() {
		var inst models.AlertInstance
		err := rows.Scan(
			&inst.ID, &inst.AlertID, &inst.TriggeredValue, &inst.Message,
			&inst.Metadata, &inst.Resolved, &inst.ResolvedBy, &inst.ResolvedAt,
			&inst.NotificationsSent, &inst.TriggeredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert instance: %w", err)
		}
		list = append(list, inst)
	}
	return list, rows.Err()
}
