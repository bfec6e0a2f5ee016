package engine

import (
	"context"
	"time"

	"alert-engine/internal/models"
)

// metricValue computes the scalar for one metric over [now - window, now].
// Each branch fetches a broad candidate set and reduces it in memory; an
// empty set always yields 0, never an error.
func (e *Engine) metricValue(ctx context.Context, metric models.Metric, now time.Time, timeRangeMinutes int) (float64, error) {
	start := now.Add(-time.Duration(timeRangeMinutes) * time.Minute)

	switch metric {
	case models.MetricAPIErrorRate:
		rows, err := e.store.APIUsageSince(ctx, start)
		if err != nil {
			return 0, err
		}
		if len(rows) == 0 {
			return 0, nil
		}
		errorCount := 0
		for _, r := range rows {
			if r.StatusCode >= 400 {
				errorCount++
			}
		}
		// Percentage, not a fraction.
		return float64(errorCount) / float64(len(rows)) * 100, nil

	case models.MetricAvgResponseTime:
		samples, err := e.store.ResponseTimeSamples(ctx)
		if err != nil {
			return 0, err
		}
		var sum float64
		var count int
		for _, s := range samples {
			if !s.CreatedAt.Before(start) {
				sum += s.Value
				count++
			}
		}
		if count == 0 {
			return 0, nil
		}
		return sum / float64(count), nil

	case models.MetricUnresolvedErrorCount:
		records, err := e.store.UnresolvedErrors(ctx)
		if err != nil {
			return 0, err
		}
		count := 0
		for _, r := range records {
			if !r.LastSeen.Before(start) {
				count++
			}
		}
		return float64(count), nil

	case models.MetricSecurityCriticalEvents:
		events, err := e.store.UnresolvedSecurityEvents(ctx)
		if err != nil {
			return 0, err
		}
		count := 0
		for _, ev := range events {
			if ev.Severity == "critical" && !ev.CreatedAt.Before(start) {
				count++
			}
		}
		return float64(count), nil
	}

	return 0, nil
}
