package service

import (
	"context"
	"database/sql"
	"log"

	"jansunwai/models"
)

// Notifier persists policy drafts and flags target-role users as having
// unread notifications. Fan-out is best-effort: every failure is logged and
// swallowed so a notification problem can never roll back or block the
// complaint mutation that triggered it.
type Notifier struct {
	store Store
}

// NewNotifier creates a notifier backed by the given store.
func NewNotifier(store Store) *Notifier {
	return &Notifier{store: store}
}

// Dispatch persists each draft outside any caller transaction.
func (n *Notifier) Dispatch(ctx context.Context, actorID int64, drafts []Draft) {
	for _, d := range drafts {
		notif := &models.Notification{
			TargetRole: d.TargetRole,
			Type:       d.Type,
			Title:      d.Title,
			Message:    d.Message,
			CreatedBy:  sql.NullInt64{Int64: actorID, Valid: actorID != 0},
		}
		if err := n.store.CreateNotification(ctx, notif); err != nil {
			log.Printf("[notify] failed to persist %s notification for %s: %v", d.Type, d.TargetRole, err)
			continue
		}
		if err := n.store.MarkRoleUnread(ctx, d.TargetRole); err != nil {
			log.Printf("[notify] failed to flag unread for role %s: %v", d.TargetRole, err)
		}
	}
}
