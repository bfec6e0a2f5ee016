package models

import "time"

// APIUsageRow is the slice of an api_usage record the error-rate metric needs.
type APIUsageRow struct {
	StatusCode int
	CreatedAt  time.Time
}

// MetricSample is one recorded performance sample.
type MetricSample struct {
	Value     float64
	CreatedAt time.Time
}

// ErrorRecord is an unresolved error-tracking entry.
type ErrorRecord struct {
	LastSeen time.Time
}

// SecurityEvent is an unresolved security event.
type SecurityEvent struct {
	Severity  string
	CreatedAt time.Time
}
