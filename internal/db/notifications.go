package db

import (
	"context"
	"fmt"

	"alert-engine/internal/models"
)

// GetNotificationsByUserID returns a user's notifications, newest first.
func (d *DB) GetNotificationsByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	query := `
        SELECT id, user_id, title, message, type, data, read, read_at,
               action_url, expires_at, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	rows, err := d.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Data,
			&n.Read, &n.ReadAt, &n.ActionURL, &n.ExpiresAt, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
