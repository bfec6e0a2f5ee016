package models

import "testing"

func TestParseConditionRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed-json", raw: `{"metric": "api_error_rate"`},
		{name: "empty-string", raw: ""},
		{name: "json-null", raw: "null"},
		{name: "json-array", raw: `[1, 2, 3]`},
		{name: "json-scalar", raw: `42`},
		{name: "missing-metric", raw: `{"operator": "gt", "threshold": 1}`},
		{name: "unknown-metric", raw: `{"metric": "cpu_usage", "operator": "gt", "threshold": 1}`},
		{name: "missing-operator", raw: `{"metric": "api_error_rate", "threshold": 1}`},
		{name: "unknown-operator", raw: `{"metric": "api_error_rate", "operator": "eq", "threshold": 1}`},
		{name: "missing-threshold", raw: `{"metric": "api_error_rate", "operator": "gt"}`},
		{name: "string-threshold", raw: `{"metric": "api_error_rate", "operator": "gt", "threshold": "1"}`},
		{name: "non-object-metric", raw: `{"metric": 5, "operator": "gt", "threshold": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCondition(tt.raw); got != nil {
				t.Fatalf("ParseCondition(%q) = %+v, want nil", tt.raw, got)
			}
		})
	}
}

func TestParseConditionDefaults(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantWindow   int
		wantCooldown int
	}{
		{
			name:         "both-absent",
			raw:          `{"metric": "api_error_rate", "operator": "gt", "threshold": 1}`,
			wantWindow:   10,
			wantCooldown: 60,
		},
		{
			name:         "non-positive-values",
			raw:          `{"metric": "api_error_rate", "operator": "gt", "threshold": 1, "timeRangeMinutes": 0, "cooldownMinutes": -5}`,
			wantWindow:   10,
			wantCooldown: 60,
		},
		{
			name:         "explicit-values",
			raw:          `{"metric": "api_error_rate", "operator": "gt", "threshold": 1, "timeRangeMinutes": 30, "cooldownMinutes": 120}`,
			wantWindow:   30,
			wantCooldown: 120,
		},
		{
			name:         "fractional-values-floored",
			raw:          `{"metric": "api_error_rate", "operator": "gt", "threshold": 1, "timeRangeMinutes": 15.9, "cooldownMinutes": 90.1}`,
			wantWindow:   15,
			wantCooldown: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := ParseCondition(tt.raw)
			if cond == nil {
				t.Fatalf("ParseCondition(%q) = nil, want condition", tt.raw)
			}
			if cond.TimeRangeMinutes != tt.wantWindow {
				t.Errorf("TimeRangeMinutes = %d, want %d", cond.TimeRangeMinutes, tt.wantWindow)
			}
			if cond.CooldownMinutes != tt.wantCooldown {
				t.Errorf("CooldownMinutes = %d, want %d", cond.CooldownMinutes, tt.wantCooldown)
			}
		})
	}
}

func TestParseConditionFields(t *testing.T) {
	cond := ParseCondition(`{"metric": "security_critical_events", "operator": "gte", "threshold": 3.5}`)
	if cond == nil {
		t.Fatal("ParseCondition() = nil, want condition")
	}
	if cond.Metric != MetricSecurityCriticalEvents {
		t.Errorf("Metric = %q, want %q", cond.Metric, MetricSecurityCriticalEvents)
	}
	if cond.Operator != OpGTE {
		t.Errorf("Operator = %q, want %q", cond.Operator, OpGTE)
	}
	if cond.Threshold != 3.5 {
		t.Errorf("Threshold = %v, want 3.5", cond.Threshold)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		op        Operator
		threshold float64
		want      bool
	}{
		{name: "gt-true", value: 50, op: OpGT, threshold: 1, want: true},
		{name: "gt-equal-false", value: 1, op: OpGT, threshold: 1, want: false},
		{name: "gte-equal-true", value: 1, op: OpGTE, threshold: 1, want: true},
		{name: "lt-true", value: 0.5, op: OpLT, threshold: 1, want: true},
		{name: "lt-false", value: 2, op: OpLT, threshold: 1, want: false},
		{name: "lte-equal-true", value: 1, op: OpLTE, threshold: 1, want: true},
		{name: "unknown-operator", value: 1, op: Operator("eq"), threshold: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.value, tt.op, tt.threshold); got != tt.want {
				t.Fatalf("Compare(%v, %q, %v) = %v, want %v", tt.value, tt.op, tt.threshold, got, tt.want)
			}
		})
	}
}
