package service

import (
	"context"

	"jansunwai/models"
)

const defaultNotificationLimit = 50

// NotificationService serves the read side of the notification inbox.
type NotificationService struct {
	store Store
}

// NewNotificationService creates a new notification service.
func NewNotificationService(store Store) *NotificationService {
	return &NotificationService{store: store}
}

// NotificationsForRole returns the most recent notifications targeted at a
// role.
func (s *NotificationService) NotificationsForRole(ctx context.Context, role models.Role, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	items, err := s.store.NotificationsForRole(ctx, role, limit)
	if err != nil {
		return nil, internalError("failed to list notifications", err)
	}
	return items, nil
}

// MarkRead marks every notification for the role as read and clears the
// role's unread flag.
func (s *NotificationService) MarkRead(ctx context.Context, role models.Role) error {
	if err := s.store.MarkNotificationsRead(ctx, role); err != nil {
		return internalError("failed to mark notifications read", err)
	}
	return nil
}
