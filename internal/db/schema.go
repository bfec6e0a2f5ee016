package db

import "context"

// EnsureSchema creates the tables and indexes the engine touches. The
// rules, metric sources, and users tables are owned by the wider
// platform; the statements here only guarantee a usable local setup.
func (d *DB) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL DEFAULT 'threshold',
			severity TEXT NOT NULL DEFAULT 'warning',
			conditions TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS alert_instances (
			id TEXT PRIMARY KEY,
			alert_id TEXT NOT NULL,
			triggered_value DOUBLE PRECISION,
			message TEXT NOT NULL,
			metadata TEXT,
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			resolved_by TEXT,
			resolved_at TIMESTAMPTZ,
			notifications_sent TEXT,
			triggered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'system',
			data TEXT,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			read_at TIMESTAMPTZ,
			action_url TEXT,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS api_usage (
			id TEXT PRIMARY KEY,
			endpoint TEXT NOT NULL,
			method TEXT NOT NULL,
			status_code INTEGER NOT NULL,
			response_time INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS performance_metrics (
			id TEXT PRIMARY KEY,
			metric_name TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			unit TEXT NOT NULL DEFAULT 'ms',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS error_tracking (
			id TEXT PRIMARY KEY,
			error_type TEXT NOT NULL,
			error_name TEXT NOT NULL,
			message TEXT NOT NULL,
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			last_seen TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS security_events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS alerts_is_active_idx ON alerts(is_active)`,
		`CREATE INDEX IF NOT EXISTS alert_instances_alert_id_idx ON alert_instances(alert_id, triggered_at DESC)`,
		`CREATE INDEX IF NOT EXISTS notifications_user_id_idx ON notifications(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS api_usage_created_at_idx ON api_usage(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := d.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
