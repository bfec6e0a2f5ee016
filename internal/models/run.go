package models

// RunResult is the outcome of one evaluation pass, returned to the
// trigger caller.
type RunResult struct {
	Success              bool   `json:"success"`
	Skipped              bool   `json:"skipped,omitempty"`
	Reason               string `json:"reason,omitempty"`
	Evaluated            int    `json:"evaluated"`
	Triggered            int    `json:"triggered"`
	InstancesCreated     int    `json:"instancesCreated"`
	NotificationsCreated int    `json:"notificationsCreated"`
	DurationMs           int64  `json:"durationMs"`
}
