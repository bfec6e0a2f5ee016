package models

import (
	"encoding/json"
	"math"
)

// Metric identifies one of the supported metric kinds.
//
// Note the unit convention rule authors must know: api_error_rate is a
// percentage (0-100), the other three are raw counts over the window.
type Metric string

const (
	MetricAPIErrorRate           Metric = "api_error_rate"
	MetricAvgResponseTime        Metric = "avg_response_time"
	MetricUnresolvedErrorCount   Metric = "unresolved_error_count"
	MetricSecurityCriticalEvents Metric = "security_critical_events"
)

// Operator is a threshold comparison.
type Operator string

const (
	OpGT  Operator = "gt"
	OpGTE Operator = "gte"
	OpLT  Operator = "lt"
	OpLTE Operator = "lte"
)

const (
	DefaultTimeRangeMinutes = 10
	DefaultCooldownMinutes  = 60
)

// Condition is the parsed form of AlertRule.Conditions.
type Condition struct {
	Metric           Metric   `json:"metric"`
	Operator         Operator `json:"operator"`
	Threshold        float64  `json:"threshold"`
	TimeRangeMinutes int      `json:"timeRangeMinutes"`
	CooldownMinutes  int      `json:"cooldownMinutes"`
}

// ParseCondition decodes a raw conditions payload. It never panics; any
// structural problem (malformed JSON, wrong shape, unknown metric or
// operator, non-finite threshold) yields nil so the caller can skip the
// rule and continue the batch. Missing or non-positive window and
// cooldown values fall back to the defaults.
func ParseCondition(raw string) *Condition {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil
	}
	if obj == nil {
		return nil
	}

	metric, ok := obj["metric"].(string)
	if !ok || !validMetric(Metric(metric)) {
		return nil
	}

	operator, ok := obj["operator"].(string)
	if !ok || !validOperator(Operator(operator)) {
		return nil
	}

	threshold, ok := obj["threshold"].(float64)
	if !ok || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil
	}

	cond := &Condition{
		Metric:           Metric(metric),
		Operator:         Operator(operator),
		Threshold:        threshold,
		TimeRangeMinutes: DefaultTimeRangeMinutes,
		CooldownMinutes:  DefaultCooldownMinutes,
	}

	if v, ok := obj["timeRangeMinutes"].(float64); ok && v > 0 {
		cond.TimeRangeMinutes = int(math.Floor(v))
	}
	if v, ok := obj["cooldownMinutes"].(float64); ok && v > 0 {
		cond.CooldownMinutes = int(math.Floor(v))
	}

	return cond
}

// Compare applies op between value and threshold.
func Compare(value float64, op Operator, threshold float64) bool {
	switch op {
	case OpGT:
		return value > threshold
	case OpGTE:
		return value >= threshold
	case OpLT:
		return value < threshold
	case OpLTE:
		return value <= threshold
	default:
		return false
	}
}

func validMetric(m Metric) bool {
	switch m {
	case MetricAPIErrorRate, MetricAvgResponseTime, MetricUnresolvedErrorCount, MetricSecurityCriticalEvents:
		return true
	}
	return false
}

func validOperator(op Operator) bool {
	switch op {
	case OpGT, OpGTE, OpLT, OpLTE:
		return true
	}
	return false
}
