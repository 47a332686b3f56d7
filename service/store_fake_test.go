package service_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"jansunwai/models"
	"jansunwai/service"
)

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

// fakeStore is an in-memory service.Store for exercising the engine without
// a database. WithinTx snapshots the state and restores it when fn fails,
// mirroring transactional rollback.
type fakeStore struct {
	mu sync.Mutex

	nextComplaintID    int64
	nextHistoryID      int64
	nextRemarkID       int64
	nextNotificationID int64

	complaints    map[int64]*models.Complaint
	history       []models.ComplaintHistory
	remarks       []models.Remark
	notifications []models.Notification
	unreadRoles   map[models.Role]bool
}

var _ service.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		complaints:  make(map[int64]*models.Complaint),
		unreadRoles: make(map[models.Role]bool),
	}
}

func cloneComplaint(c *models.Complaint) *models.Complaint {
	cp := *c
	cp.Media = append(models.MediaList(nil), c.Media...)
	cp.OriginalComplaintIDs = append(models.IDList(nil), c.OriginalComplaintIDs...)
	cp.LinkedComplaintIDs = append(models.IDList(nil), c.LinkedComplaintIDs...)
	return &cp
}

func (f *fakeStore) snapshot() *fakeStore {
	snap := &fakeStore{
		nextComplaintID:    f.nextComplaintID,
		nextHistoryID:      f.nextHistoryID,
		nextRemarkID:       f.nextRemarkID,
		nextNotificationID: f.nextNotificationID,
		complaints:         make(map[int64]*models.Complaint, len(f.complaints)),
		history:            append([]models.ComplaintHistory(nil), f.history...),
		remarks:            append([]models.Remark(nil), f.remarks...),
		notifications:      append([]models.Notification(nil), f.notifications...),
		unreadRoles:        make(map[models.Role]bool, len(f.unreadRoles)),
	}
	for id, c := range f.complaints {
		snap.complaints[id] = cloneComplaint(c)
	}
	for role, v := range f.unreadRoles {
		snap.unreadRoles[role] = v
	}
	return snap
}

func (f *fakeStore) restore(snap *fakeStore) {
	f.nextComplaintID = snap.nextComplaintID
	f.nextHistoryID = snap.nextHistoryID
	f.nextRemarkID = snap.nextRemarkID
	f.nextNotificationID = snap.nextNotificationID
	f.complaints = snap.complaints
	f.history = snap.history
	f.remarks = snap.remarks
	f.notifications = snap.notifications
	f.unreadRoles = snap.unreadRoles
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(service.Store) error) error {
	f.mu.Lock()
	snap := f.snapshot()
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.restore(snap)
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeStore) GetComplaint(ctx context.Context, id int64) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[id]
	if !ok {
		return nil, nil
	}
	return cloneComplaint(c), nil
}

func (f *fakeStore) GetComplaints(ctx context.Context, ids []int64) ([]models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Complaint
	for _, id := range ids {
		if c, ok := f.complaints[id]; ok {
			out = append(out, *cloneComplaint(c))
		}
	}
	return out, nil
}

func (f *fakeStore) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextComplaintID++
	c.ID = f.nextComplaintID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	f.complaints[c.ID] = cloneComplaint(c)
	return nil
}

func (f *fakeStore) UpdateComplaint(ctx context.Context, c *models.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.complaints[c.ID] = cloneComplaint(c)
	return nil
}

func (f *fakeStore) ListComplaints(ctx context.Context, flt models.ComplaintFilter) ([]models.Complaint, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.Complaint
	ids := make([]int64, 0, len(f.complaints))
	for id := range f.complaints {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	for _, id := range ids {
		c := f.complaints[id]
		if len(flt.Statuses) > 0 {
			found := false
			for _, s := range flt.Statuses {
				if c.Status == s {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if flt.Department != "" && c.Department != flt.Department {
			continue
		}
		matched = append(matched, *cloneComplaint(c))
	}

	total := int64(len(matched))
	offset := (flt.Page - 1) * flt.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + flt.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeStore) ChildComplaints(ctx context.Context, parentID int64) ([]models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Complaint
	for _, c := range f.complaints {
		if c.ParentComplaintID.Valid && c.ParentComplaintID.Int64 == parentID {
			out = append(out, *cloneComplaint(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SplitIndex.Int64 < out[j].SplitIndex.Int64
	})
	return out, nil
}

func (f *fakeStore) MarkSplit(ctx context.Context, id int64, displayID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[id]
	if !ok || c.IsSplit || c.IsMerged {
		return false, nil
	}
	c.IsSplit = true
	c.SplitIndex = nullInt64(0)
	c.DisplayID = sql.NullString{String: displayID, Valid: true}
	return true, nil
}

func (f *fakeStore) MarkMerged(ctx context.Context, id, primaryID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[id]
	if !ok || c.IsMerged {
		return false, nil
	}
	c.IsMerged = true
	c.MergedIntoComplaintID = nullInt64(primaryID)
	return true, nil
}

func (f *fakeStore) SetLinkedComplaints(ctx context.Context, id int64, links models.IDList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[id]
	if !ok {
		return nil
	}
	c.LinkedComplaintIDs = append(models.IDList(nil), links...)
	return nil
}

func (f *fakeStore) ComplaintsLinkingTo(ctx context.Context, ids []int64) ([]models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Complaint
	for _, c := range f.complaints {
		for _, id := range ids {
			if c.LinkedComplaintIDs.Contains(id) {
				out = append(out, *cloneComplaint(c))
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) HistoryForComplaint(ctx context.Context, complaintID int64) ([]models.ComplaintHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ComplaintHistory
	for _, h := range f.history {
		if h.ComplaintID == complaintID {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) CreateHistory(ctx context.Context, h *models.ComplaintHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextHistoryID++
	h.ID = f.nextHistoryID
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	f.history = append(f.history, *h)
	return nil
}

func (f *fakeStore) RemarksForComplaint(ctx context.Context, complaintID int64) ([]models.Remark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Remark
	for _, rm := range f.remarks {
		if rm.ComplaintID == complaintID {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateRemark(ctx context.Context, rm *models.Remark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextRemarkID++
	rm.ID = f.nextRemarkID
	if rm.CreatedAt.IsZero() {
		rm.CreatedAt = time.Now().UTC()
	}
	f.remarks = append(f.remarks, *rm)
	return nil
}

func (f *fakeStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextNotificationID++
	n.ID = f.nextNotificationID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeStore) NotificationsForRole(ctx context.Context, role models.Role, limit int) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].TargetRole == role {
			out = append(out, f.notifications[i])
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) MarkNotificationsRead(ctx context.Context, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].TargetRole == role {
			f.notifications[i].IsRead = true
		}
	}
	f.unreadRoles[role] = false
	return nil
}

func (f *fakeStore) MarkRoleUnread(ctx context.Context, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unreadRoles[role] = true
	return nil
}
