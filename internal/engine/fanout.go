package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"alert-engine/internal/models"
)

// buildFanout assembles one alert instance and one notification per
// admin. notifications_sent on the instance lists exactly the ids of the
// notifications built here; the caller persists both in one transaction.
func buildFanout(rule models.AlertRule, cond models.Condition, value float64, now time.Time, admins []string) (models.AlertInstance, []models.Notification) {
	instanceID := uuid.NewString()

	notificationType := "system"
	actionURL := "/admin/monitoring"
	if rule.Type == "security" {
		notificationType = "security"
		actionURL = "/admin/security"
	}

	title := fmt.Sprintf("[%s] %s", strings.ToUpper(rule.Severity), rule.Name)
	message := fmt.Sprintf("Alert triggered: %s %s %v (value: %.2f)",
		cond.Metric, cond.Operator, cond.Threshold, value)
	if rule.Description != nil && *rule.Description != "" {
		message = *rule.Description
	}

	notifs := make([]models.Notification, 0, len(admins))
	notificationIDs := make([]string, 0, len(admins))
	for _, adminID := range admins {
		id := uuid.NewString()
		notificationIDs = append(notificationIDs, id)

		data, _ := json.Marshal(models.NotificationData{
			AlertID:          rule.ID,
			AlertInstanceID:  instanceID,
			Metric:           cond.Metric,
			Operator:         cond.Operator,
			Threshold:        cond.Threshold,
			Value:            value,
			TimeRangeMinutes: cond.TimeRangeMinutes,
		})

		notifs = append(notifs, models.Notification{
			ID:        id,
			UserID:    adminID,
			Title:     title,
			Message:   message,
			Type:      notificationType,
			Data:      string(data),
			ActionURL: actionURL,
			CreatedAt: now,
		})
	}

	metadata, _ := json.Marshal(models.InstanceMetadata{
		Conditions:        cond,
		CalculatedAt:      now,
		NotificationType:  notificationType,
		NotificationCount: len(notifs),
	})
	sentIDs, _ := json.Marshal(notificationIDs)

	inst := models.AlertInstance{
		ID:                instanceID,
		AlertID:           rule.ID,
		TriggeredValue:    value,
		Message:           message,
		Metadata:          string(metadata),
		Resolved:          false,
		NotificationsSent: string(sentIDs),
		TriggeredAt:       now,
	}
	return inst, notifs
}
