package models

import "time"

// AlertRule is an operator-authored definition of a condition to watch.
// Rules are read-only from the engine's perspective.
type AlertRule struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Conditions  string    `json:"conditions"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AlertInstance records one firing of one rule at one point in time.
// Instances are never mutated by the engine after creation; resolution
// happens through the admin surface.
type AlertInstance struct {
	ID                string     `json:"id"`
	AlertID           string     `json:"alert_id"`
	TriggeredValue    float64    `json:"triggered_value"`
	Message           string     `json:"message"`
	Metadata          string     `json:"metadata"`
	Resolved          bool       `json:"resolved"`
	ResolvedBy        *string    `json:"resolved_by,omitempty"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	NotificationsSent string     `json:"notifications_sent"`
	TriggeredAt       time.Time  `json:"triggered_at"`
}

// InstanceMetadata is the audit blob stored on an AlertInstance.
type InstanceMetadata struct {
	Conditions        Condition `json:"conditions"`
	CalculatedAt      time.Time `json:"calculatedAt"`
	NotificationType  string    `json:"notificationType"`
	NotificationCount int       `json:"notificationCount"`
}
