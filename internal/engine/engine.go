// Package engine implements the scheduled alert evaluation and
// notification fan-out run.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alert-engine/internal/lock"
	"alert-engine/internal/models"
)

// Store is the relational-store surface the engine reads and writes.
// *db.DB satisfies it; tests use an in-memory fake.
type Store interface {
	ListActiveRules(ctx context.Context) ([]models.AlertRule, error)
	ListAdminIDs(ctx context.Context) ([]string, error)
	APIUsageSince(ctx context.Context, start time.Time) ([]models.APIUsageRow, error)
	ResponseTimeSamples(ctx context.Context) ([]models.MetricSample, error)
	UnresolvedErrors(ctx context.Context) ([]models.ErrorRecord, error)
	UnresolvedSecurityEvents(ctx context.Context) ([]models.SecurityEvent, error)
	LatestInstanceTriggeredAt(ctx context.Context, alertID string) (time.Time, bool, error)
	CreateInstanceWithNotifications(ctx context.Context, inst models.AlertInstance, notifs []models.Notification) error
}

var (
	runsCompleted        = metrics.NewCounter(`alert_runs_total{result="completed"}`)
	runsSkipped          = metrics.NewCounter(`alert_runs_total{result="skipped"}`)
	runsFailed           = metrics.NewCounter(`alert_runs_total{result="failed"}`)
	instancesCreated     = metrics.NewCounter(`alert_instances_created_total`)
	notificationsCreated = metrics.NewCounter(`alert_notifications_created_total`)
)

// Engine runs one sequential evaluation pass per invocation. Overlapping
// invocations are serialized by the lease: whichever acquires it first
// evaluates, the rest report a skipped run.
type Engine struct {
	store  Store
	lease  *lock.Lease
	logger *logrus.Logger
	now    func() time.Time
}

func New(store Store, lease *lock.Lease, logger *logrus.Logger) *Engine {
	return &Engine{
		store:  store,
		lease:  lease,
		logger: logger,
		now:    time.Now,
	}
}

// Run performs one evaluation pass. Lock contention is a routine outcome,
// not an error; a store failure mid-batch aborts the remaining rules and
// surfaces as a run-level error with rows already committed left intact.
func (e *Engine) Run(ctx context.Context) (models.RunResult, error) {
	started := time.Now()
	token := uuid.NewString()

	acquired, err := e.lease.Acquire(ctx, token)
	if err != nil {
		runsFailed.Inc()
		return models.RunResult{DurationMs: time.Since(started).Milliseconds()},
			fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		runsSkipped.Inc()
		e.logger.Info("evaluation skipped, lock held by another run")
		return models.RunResult{
			Success:    true,
			Skipped:    true,
			Reason:     "locked",
			DurationMs: time.Since(started).Milliseconds(),
		}, nil
	}
	defer e.lease.Release(ctx, token)

	result, err := e.evaluate(ctx)
	result.DurationMs = time.Since(started).Milliseconds()
	if err != nil {
		runsFailed.Inc()
		return result, err
	}

	runsCompleted.Inc()
	result.Success = true
	e.logger.WithFields(logrus.Fields{
		"evaluated":             result.Evaluated,
		"triggered":             result.Triggered,
		"instances_created":     result.InstancesCreated,
		"notifications_created": result.NotificationsCreated,
		"duration_ms":           result.DurationMs,
	}).Info("evaluation pass finished")
	return result, nil
}

func (e *Engine) evaluate(ctx context.Context) (models.RunResult, error) {
	var result models.RunResult
	now := e.now()

	rules, err := e.store.ListActiveRules(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load active rules: %w", err)
	}
	admins, err := e.store.ListAdminIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load admins: %w", err)
	}

	for _, rule := range rules {
		result.Evaluated++

		cond := models.ParseCondition(rule.Conditions)
		if cond == nil {
			e.logger.WithField("alert_id", rule.ID).Warn("unparseable conditions, rule skipped")
			continue
		}

		value, err := e.metricValue(ctx, cond.Metric, now, cond.TimeRangeMinutes)
		if err != nil {
			return result, fmt.Errorf("failed to evaluate metric for alert %s: %w", rule.ID, err)
		}

		if !models.Compare(value, cond.Operator, cond.Threshold) {
			continue
		}
		result.Triggered++

		suppress, err := e.shouldSuppress(ctx, rule.ID, now, cond.CooldownMinutes)
		if err != nil {
			return result, err
		}
		if suppress {
			e.logger.WithField("alert_id", rule.ID).Debug("rule in cooldown, skipped")
			continue
		}

		inst, notifs := buildFanout(rule, *cond, value, now, admins)
		if err := e.store.CreateInstanceWithNotifications(ctx, inst, notifs); err != nil {
			return result, fmt.Errorf("failed to commit fan-out for alert %s: %w", rule.ID, err)
		}

		result.InstancesCreated++
		result.NotificationsCreated += len(notifs)
		instancesCreated.Inc()
		notificationsCreated.Add(len(notifs))

		e.logger.WithFields(logrus.Fields{
			"alert_id":      rule.ID,
			"instance_id":   inst.ID,
			"value":         value,
			"notifications": len(notifs),
		}).Info("alert triggered")
	}

	return result, nil
}

// shouldSuppress reports whether the rule fired within its cooldown. Only
// the single most recent firing matters: a monotonic debounce, not a
// sliding-window rate limiter.
func (e *Engine) shouldSuppress(ctx context.Context, alertID string, now time.Time, cooldownMinutes int) (bool, error) {
	last, ok, err := e.store.LatestInstanceTriggeredAt(ctx, alertID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return now.Sub(last) < time.Duration(cooldownMinutes)*time.Minute, nil
}
