package repository

import (
	"context"
	"fmt"

	"jansunwai/models"
)

// CreateNotification persists one fan-out record.
func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (target_role, type, title, message, created_by, is_read)
		VALUES (?, ?, ?, ?, ?, 0)
	`
	result, err := s.q.ExecContext(ctx, query,
		n.TargetRole, n.Type, n.Title, n.Message, n.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get notification id: %w", err)
	}
	n.ID = id
	return nil
}

// NotificationsForRole returns the most recent notifications for a role.
func (s *Store) NotificationsForRole(ctx context.Context, role models.Role, limit int) ([]models.Notification, error) {
	query := `
		SELECT notification_id, target_role, type, title, message, created_by, is_read, created_at
		FROM notifications
		WHERE target_role = ?
		ORDER BY created_at DESC, notification_id DESC
		LIMIT ?
	`
	rows, err := s.q.QueryContext(ctx, query, role, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.TargetRole, &n.Type, &n.Title, &n.Message, &n.CreatedBy, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationsRead marks a role's notifications read and clears the
// unread flag on every user holding that role.
func (s *Store) MarkNotificationsRead(ctx context.Context, role models.Role) error {
	if _, err := s.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE target_role = ? AND is_read = 0`, role); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	if _, err := s.q.ExecContext(ctx,
		`UPDATE users SET has_unread_notifications = 0 WHERE role = ?`, role); err != nil {
		return fmt.Errorf("failed to clear unread flags: %w", err)
	}
	return nil
}

// MarkRoleUnread sets the unread flag on every user currently holding the
// target role.
func (s *Store) MarkRoleUnread(ctx context.Context, role models.Role) error {
	if _, err := s.q.ExecContext(ctx,
		`UPDATE users SET has_unread_notifications = 1 WHERE role = ?`, role); err != nil {
		return fmt.Errorf("failed to set unread flags: %w", err)
	}
	return nil
}
