package engine

import (
	"context"
	"testing"
	"time"

	"alert-engine/internal/lock"
	"alert-engine/internal/models"
)

func TestMetricValueEmptySetsYieldZero(t *testing.T) {
	metricsUnderTest := []models.Metric{
		models.MetricAPIErrorRate,
		models.MetricAvgResponseTime,
		models.MetricUnresolvedErrorCount,
		models.MetricSecurityCriticalEvents,
	}

	eng := newTestEngine(&fakeStore{}, lock.NewMemoryStore())
	for _, metric := range metricsUnderTest {
		t.Run(string(metric), func(t *testing.T) {
			value, err := eng.metricValue(context.Background(), metric, testNow, 10)
			if err != nil {
				t.Fatalf("metricValue(%s) error = %v", metric, err)
			}
			if value != 0 {
				t.Fatalf("metricValue(%s) = %v on empty data, want 0", metric, value)
			}
		})
	}
}

func TestMetricValueAPIErrorRateIsPercentage(t *testing.T) {
	store := &fakeStore{apiUsage: []models.APIUsageRow{
		{StatusCode: 200, CreatedAt: testNow.Add(-2 * time.Minute)},
		{StatusCode: 404, CreatedAt: testNow.Add(-3 * time.Minute)},
		{StatusCode: 500, CreatedAt: testNow.Add(-4 * time.Minute)},
		{StatusCode: 201, CreatedAt: testNow.Add(-5 * time.Minute)},
	}}
	eng := newTestEngine(store, lock.NewMemoryStore())

	value, err := eng.metricValue(context.Background(), models.MetricAPIErrorRate, testNow, 10)
	if err != nil {
		t.Fatalf("metricValue() error = %v", err)
	}
	if value != 50 {
		t.Fatalf("metricValue() = %v, want 50 (2 of 4 rows errored)", value)
	}
}

func TestMetricValueAvgResponseTimeWindow(t *testing.T) {
	store := &fakeStore{samples: []models.MetricSample{
		{Value: 100, CreatedAt: testNow.Add(-2 * time.Minute)},
		{Value: 300, CreatedAt: testNow.Add(-8 * time.Minute)},
		// Outside the 10 minute window, must be ignored.
		{Value: 9000, CreatedAt: testNow.Add(-45 * time.Minute)},
	}}
	eng := newTestEngine(store, lock.NewMemoryStore())

	value, err := eng.metricValue(context.Background(), models.MetricAvgResponseTime, testNow, 10)
	if err != nil {
		t.Fatalf("metricValue() error = %v", err)
	}
	if value != 200 {
		t.Fatalf("metricValue() = %v, want 200 (mean of windowed samples)", value)
	}
}

func TestMetricValueAvgResponseTimeAllOutsideWindow(t *testing.T) {
	store := &fakeStore{samples: []models.MetricSample{
		{Value: 9000, CreatedAt: testNow.Add(-45 * time.Minute)},
	}}
	eng := newTestEngine(store, lock.NewMemoryStore())

	value, err := eng.metricValue(context.Background(), models.MetricAvgResponseTime, testNow, 10)
	if err != nil {
		t.Fatalf("metricValue() error = %v", err)
	}
	if value != 0 {
		t.Fatalf("metricValue() = %v, want 0 when no sample is in window", value)
	}
}

func TestMetricValueUnresolvedErrorCountWindow(t *testing.T) {
	store := &fakeStore{errorRecords: []models.ErrorRecord{
		{LastSeen: testNow.Add(-time.Minute)},
		{LastSeen: testNow.Add(-9 * time.Minute)},
		{LastSeen: testNow.Add(-11 * time.Minute)},
	}}
	eng := newTestEngine(store, lock.NewMemoryStore())

	value, err := eng.metricValue(context.Background(), models.MetricUnresolvedErrorCount, testNow, 10)
	if err != nil {
		t.Fatalf("metricValue() error = %v", err)
	}
	if value != 2 {
		t.Fatalf("metricValue() = %v, want 2 (last_seen within window)", value)
	}
}

func TestMetricValueSecurityCriticalEventsFilters(t *testing.T) {
	store := &fakeStore{events: []models.SecurityEvent{
		{Severity: "critical", CreatedAt: testNow.Add(-time.Minute)},
		{Severity: "high", CreatedAt: testNow.Add(-time.Minute)},
		{Severity: "critical", CreatedAt: testNow.Add(-20 * time.Minute)},
	}}
	eng := newTestEngine(store, lock.NewMemoryStore())

	value, err := eng.metricValue(context.Background(), models.MetricSecurityCriticalEvents, testNow, 10)
	if err != nil {
		t.Fatalf("metricValue() error = %v", err)
	}
	if value != 1 {
		t.Fatalf("metricValue() = %v, want 1 (critical and in window)", value)
	}
}
