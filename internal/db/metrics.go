package db

import (
	"context"
	"fmt"
	"time"

	"alert-engine/internal/models"
)

// APIUsageSince returns api_usage rows created at or after start.
func (d *DB) APIUsageSince(ctx context.Context, start time.Time) ([]models.APIUsageRow, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT status_code, created_at FROM api_usage WHERE created_at >= $1`, start)
	if err != nil {
		return nil, fmt.Errorf("failed to query api usage: %w", err)
	}
	defer rows.Close()

	var out []models.APIUsageRow
	for rows.Next() {
		var r models.APIUsageRow
		if err := rows.Scan(&r.StatusCode, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan api usage row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ResponseTimeSamples returns every recorded response_time sample. The
// evaluator narrows them to the window in memory.
func (d *DB) ResponseTimeSamples(ctx context.Context) ([]models.MetricSample, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT value, created_at FROM performance_metrics WHERE metric_name = 'response_time'`)
	if err != nil {
		return nil, fmt.Errorf("failed to query response time samples: %w", err)
	}
	defer rows.Close()

	var out []models.MetricSample
	for rows.Next() {
		var s models.MetricSample
		if err := rows.Scan(&s.Value, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan metric sample: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UnresolvedErrors returns error_tracking entries still marked unresolved.
func (d *DB) UnresolvedErrors(ctx context.Context) ([]models.ErrorRecord, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT last_seen FROM error_tracking WHERE resolved = FALSE`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unresolved errors: %w", err)
	}
	defer rows.Close()

	var out []models.ErrorRecord
	for rows.Next() {
		var r models.ErrorRecord
		if err := rows.Scan(&r.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan error record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UnresolvedSecurityEvents returns security_events still marked unresolved.
func (d *DB) UnresolvedSecurityEvents(ctx context.Context) ([]models.SecurityEvent, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT severity, created_at FROM security_events WHERE resolved = FALSE`)
	if err != nil {
		return nil, fmt.Errorf("failed to query security events: %w", err)
	}
	defer rows.Close()

	var out []models.SecurityEvent
	for rows.Next() {
		var e models.SecurityEvent
		if err := rows.Scan(&e.Severity, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan security event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
