package db

import (
	"context"
	"fmt"

	"alert-engine/internal/models"
)

// ListActiveRules returns all active alert rules, newest first.
func (d *DB) ListActiveRules(ctx context.Context) ([]models.AlertRule, error) {
	query := `
        SELECT id, name, description, type, severity, conditions, is_active,
               created_by, created_at, updated_at
        FROM alerts
        WHERE is_active = TRUE
        ORDER BY created_at DESC`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}
	defer rows.Close()

	var rules []models.AlertRule
	for rows.Next() {
		var r models.AlertRule
		err := rows.Scan(
			&r.ID, &r.Name, &r.Description, &r.Type, &r.Severity, &r.Conditions,
			&r.IsActive, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// ListAdminIDs returns the identifiers of all administrator users, the
// fan-out recipient set for a run.
func (d *DB) ListAdminIDs(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `SELECT id FROM users WHERE role = 'admin'`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan admin id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
