package service

import (
	"context"

	"jansunwai/models"
)

// Store is the transactional repository the engine runs against. Read
// methods that miss return (nil, nil), never an error; the engine decides
// whether absence is a not-found condition.
type Store interface {
	// WithinTx runs fn against a transaction-bound Store. A non-nil error
	// from fn rolls back every write made through that Store.
	WithinTx(ctx context.Context, fn func(Store) error) error

	GetComplaint(ctx context.Context, id int64) (*models.Complaint, error)
	GetComplaints(ctx context.Context, ids []int64) ([]models.Complaint, error)
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	UpdateComplaint(ctx context.Context, c *models.Complaint) error
	ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, int64, error)
	ChildComplaints(ctx context.Context, parentID int64) ([]models.Complaint, error)

	// MarkSplit flips is_split on a complaint that has not been split or
	// merged yet, recording the display id computed for child naming. It
	// reports false when the guard failed, i.e. a concurrent operation won.
	MarkSplit(ctx context.Context, id int64, displayID string) (bool, error)
	// MarkMerged flips is_merged and records the absorbing primary, guarded
	// the same way against a concurrent merge.
	MarkMerged(ctx context.Context, id, primaryID int64) (bool, error)

	SetLinkedComplaints(ctx context.Context, id int64, links models.IDList) error
	// ComplaintsLinkingTo returns every complaint whose link list references
	// any of the given ids.
	ComplaintsLinkingTo(ctx context.Context, ids []int64) ([]models.Complaint, error)

	HistoryForComplaint(ctx context.Context, complaintID int64) ([]models.ComplaintHistory, error)
	CreateHistory(ctx context.Context, h *models.ComplaintHistory) error

	RemarksForComplaint(ctx context.Context, complaintID int64) ([]models.Remark, error)
	CreateRemark(ctx context.Context, rm *models.Remark) error

	CreateNotification(ctx context.Context, n *models.Notification) error
	NotificationsForRole(ctx context.Context, role models.Role, limit int) ([]models.Notification, error)
	MarkNotificationsRead(ctx context.Context, role models.Role) error
	MarkRoleUnread(ctx context.Context, role models.Role) error
}
