package models

import "time"

// Notification is a per-recipient inbox entry created alongside an
// AlertInstance. The engine only ever inserts these; a separate reader
// consumes them.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Data      string     `json:"data"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	ActionURL string     `json:"action_url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationData is the payload carried in Notification.Data, linking
// the notification back to the alert and instance that produced it.
type NotificationData struct {
	AlertID          string   `json:"alertId"`
	AlertInstanceID  string   `json:"alertInstanceId"`
	Metric           Metric   `json:"metric"`
	Operator         Operator `json:"operator"`
	Threshold        float64  `json:"threshold"`
	Value            float64  `json:"value"`
	TimeRangeMinutes int      `json:"timeRangeMinutes"`
}
