package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"jansunwai/models"
)

const complaintColumns = `complaint_id, display_id, title, description, category, subcategory,
		location, taluka, media, current_status, priority, department,
		parent_complaint_id, split_index, is_split,
		merged_into_complaint_id, is_merged,
		original_complaint_ids, linked_complaint_ids,
		created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComplaint(row rowScanner) (*models.Complaint, error) {
	var c models.Complaint
	var dept sql.NullString
	err := row.Scan(
		&c.ID, &c.DisplayID, &c.Title, &c.Description, &c.Category, &c.Subcategory,
		&c.Location, &c.Taluka, &c.Media, &c.Status, &c.Priority, &dept,
		&c.ParentComplaintID, &c.SplitIndex, &c.IsSplit,
		&c.MergedIntoComplaintID, &c.IsMerged,
		&c.OriginalComplaintIDs, &c.LinkedComplaintIDs,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dept.Valid {
		c.Department = models.Department(dept.String)
	}
	return &c, nil
}

// nullableDepartment maps the empty sentinel to NULL.
func nullableDepartment(d models.Department) interface{} {
	if d == "" {
		return nil
	}
	return string(d)
}

// GetComplaint returns the complaint or (nil, nil) when the id does not
// resolve.
func (s *Store) GetComplaint(ctx context.Context, id int64) (*models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE complaint_id = ?`
	c, err := scanComplaint(s.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return c, nil
}

// GetComplaints returns the complaints matching the given ids, in store
// order. Missing ids are simply absent from the result.
func (s *Store) GetComplaints(ctx context.Context, ids []int64) ([]models.Complaint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sq.Select(complaintColumns).
		From("complaints").
		Where(sq.Eq{"complaint_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build complaints query: %w", err)
	}
	return s.queryComplaints(ctx, query, args...)
}

// CreateComplaint inserts a new complaint and sets its generated id.
func (s *Store) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (
			display_id, title, description, category, subcategory,
			location, taluka, media, current_status, priority, department,
			parent_complaint_id, split_index, is_split,
			merged_into_complaint_id, is_merged,
			original_complaint_ids, linked_complaint_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.q.ExecContext(ctx, query,
		c.DisplayID, c.Title, c.Description, c.Category, c.Subcategory,
		c.Location, c.Taluka, c.Media, c.Status, c.Priority, nullableDepartment(c.Department),
		c.ParentComplaintID, c.SplitIndex, c.IsSplit,
		c.MergedIntoComplaintID, c.IsMerged,
		c.OriginalComplaintIDs, c.LinkedComplaintIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get complaint id: %w", err)
	}
	c.ID = id
	return nil
}

// UpdateComplaint writes the full mutable state of a complaint.
func (s *Store) UpdateComplaint(ctx context.Context, c *models.Complaint) error {
	query := `
		UPDATE complaints
		SET display_id = ?, title = ?, description = ?, category = ?, subcategory = ?,
			location = ?, taluka = ?, media = ?, current_status = ?, priority = ?, department = ?,
			parent_complaint_id = ?, split_index = ?, is_split = ?,
			merged_into_complaint_id = ?, is_merged = ?,
			original_complaint_ids = ?, linked_complaint_ids = ?,
			updated_at = NOW()
		WHERE complaint_id = ?
	`
	_, err := s.q.ExecContext(ctx, query,
		c.DisplayID, c.Title, c.Description, c.Category, c.Subcategory,
		c.Location, c.Taluka, c.Media, c.Status, c.Priority, nullableDepartment(c.Department),
		c.ParentComplaintID, c.SplitIndex, c.IsSplit,
		c.MergedIntoComplaintID, c.IsMerged,
		c.OriginalComplaintIDs, c.LinkedComplaintIDs,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}
	return nil
}

// MarkSplit flips is_split under a guard so two concurrent splits cannot
// both succeed; the affected-row count is the check. The parent's split
// index becomes 0, marking it as the original of its split family.
func (s *Store) MarkSplit(ctx context.Context, id int64, displayID string) (bool, error) {
	result, err := s.q.ExecContext(ctx, `
		UPDATE complaints
		SET is_split = 1, split_index = 0, display_id = ?, updated_at = NOW()
		WHERE complaint_id = ? AND is_split = 0 AND is_merged = 0
	`, displayID, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark complaint split: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// MarkMerged flips is_merged under the same guard.
func (s *Store) MarkMerged(ctx context.Context, id, primaryID int64) (bool, error) {
	result, err := s.q.ExecContext(ctx, `
		UPDATE complaints
		SET is_merged = 1, merged_into_complaint_id = ?, updated_at = NOW()
		WHERE complaint_id = ? AND is_merged = 0
	`, primaryID, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark complaint merged: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// SetLinkedComplaints replaces a complaint's link list.
func (s *Store) SetLinkedComplaints(ctx context.Context, id int64, links models.IDList) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE complaints SET linked_complaint_ids = ?, updated_at = NOW() WHERE complaint_id = ?`,
		links, id)
	if err != nil {
		return fmt.Errorf("failed to set linked complaints: %w", err)
	}
	return nil
}

// ComplaintsLinkingTo returns every complaint whose link list references any
// of the given ids. Matching is exact JSON membership, not substring.
func (s *Store) ComplaintsLinkingTo(ctx context.Context, ids []int64) ([]models.Complaint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var refs sq.Or
	for _, id := range ids {
		refs = append(refs, sq.Expr("JSON_CONTAINS(linked_complaint_ids, CAST(? AS JSON))", id))
	}
	query, args, err := sq.Select(complaintColumns).
		From("complaints").
		Where(sq.And{sq.NotEq{"linked_complaint_ids": nil}, refs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build linking query: %w", err)
	}
	return s.queryComplaints(ctx, query, args...)
}

// ChildComplaints returns the children of a split parent ordered by split
// index.
func (s *Store) ChildComplaints(ctx context.Context, parentID int64) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + `
		FROM complaints WHERE parent_complaint_id = ? ORDER BY split_index ASC`
	return s.queryComplaints(ctx, query, parentID)
}

func (s *Store) queryComplaints(ctx context.Context, query string, args ...interface{}) ([]models.Complaint, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaints: %w", err)
	}
	return complaints, nil
}
