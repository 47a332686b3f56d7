package repository

import (
	"context"
	"fmt"
	"time"

	"jansunwai/models"
)

// HistoryForComplaint returns a complaint's audit entries in ascending
// timestamp order, the order merge replay depends on.
func (s *Store) HistoryForComplaint(ctx context.Context, complaintID int64) ([]models.ComplaintHistory, error) {
	query := `
		SELECT history_id, complaint_id, user_id, role, action, notes,
			attachment, eta, old_status, new_status, created_at
		FROM complaint_history
		WHERE complaint_id = ?
		ORDER BY created_at ASC, history_id ASC
	`
	rows, err := s.q.QueryContext(ctx, query, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var history []models.ComplaintHistory
	for rows.Next() {
		var h models.ComplaintHistory
		if err := rows.Scan(
			&h.ID, &h.ComplaintID, &h.UserID, &h.Role, &h.Action, &h.Notes,
			&h.Attachment, &h.ETA, &h.OldStatus, &h.NewStatus, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return history, nil
}

// CreateHistory appends an audit entry. A pre-set CreatedAt is preserved so
// merged timelines keep their original timestamps; otherwise now is used.
func (s *Store) CreateHistory(ctx context.Context, h *models.ComplaintHistory) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO complaint_history (
			complaint_id, user_id, role, action, notes,
			attachment, eta, old_status, new_status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.q.ExecContext(ctx, query,
		h.ComplaintID, h.UserID, h.Role, h.Action, h.Notes,
		h.Attachment, h.ETA, h.OldStatus, h.NewStatus, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create history: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get history id: %w", err)
	}
	h.ID = id
	return nil
}

// RemarksForComplaint returns a complaint's remarks in ascending timestamp
// order.
func (s *Store) RemarksForComplaint(ctx context.Context, complaintID int64) ([]models.Remark, error) {
	query := `
		SELECT remark_id, complaint_id, user_id, role, visibility, notes, created_at
		FROM remarks
		WHERE complaint_id = ?
		ORDER BY created_at ASC, remark_id ASC
	`
	rows, err := s.q.QueryContext(ctx, query, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query remarks: %w", err)
	}
	defer rows.Close()

	var remarks []models.Remark
	for rows.Next() {
		var rm models.Remark
		if err := rows.Scan(
			&rm.ID, &rm.ComplaintID, &rm.UserID, &rm.Role, &rm.Visibility, &rm.Notes, &rm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan remark: %w", err)
		}
		remarks = append(remarks, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating remarks: %w", err)
	}
	return remarks, nil
}

// CreateRemark appends a remark, preserving a pre-set CreatedAt the same way
// CreateHistory does.
func (s *Store) CreateRemark(ctx context.Context, rm *models.Remark) error {
	if rm.CreatedAt.IsZero() {
		rm.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO remarks (complaint_id, user_id, role, visibility, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := s.q.ExecContext(ctx, query,
		rm.ComplaintID, rm.UserID, rm.Role, rm.Visibility, rm.Notes, rm.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create remark: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get remark id: %w", err)
	}
	rm.ID = id
	return nil
}
