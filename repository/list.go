package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"jansunwai/models"
)

// sortColumns whitelists the externally requestable sort columns. Anything
// else falls back to descending-by-id.
var sortColumns = map[string]string{
	"id":        "complaint_id",
	"title":     "title",
	"status":    "current_status",
	"priority":  "priority",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// listPredicate builds the single predicate shared by the page query and
// the count query. Computing these from two different predicates would let
// total_count drift from the page contents.
func listPredicate(f models.ComplaintFilter) sq.And {
	var pred sq.And

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		or := sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"description": pattern},
			sq.Like{"category": pattern},
			sq.Like{"subcategory": pattern},
			sq.Like{"location": pattern},
		}
		if f.SearchID != nil {
			or = append(or, sq.Eq{"complaint_id": *f.SearchID})
		}
		pred = append(pred, or)
	}
	if len(f.Statuses) > 0 {
		pred = append(pred, sq.Eq{"current_status": f.Statuses})
	}
	if f.Department != "" {
		pred = append(pred, sq.Eq{"department": string(f.Department)})
	}
	if f.Location != "" {
		pred = append(pred, sq.Like{"location": "%" + f.Location + "%"})
	}
	if f.Taluka != "" {
		pred = append(pred, sq.Eq{"taluka": f.Taluka})
	}
	if f.From != nil {
		pred = append(pred, sq.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		pred = append(pred, sq.LtOrEq{"created_at": *f.To})
	}

	return pred
}

func listOrder(f models.ComplaintFilter) string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		return "complaint_id DESC"
	}
	if f.SortDesc {
		return column + " DESC"
	}
	return column + " ASC"
}

// ListComplaints returns one page of complaints and the total count, both
// over the same predicate.
func (s *Store) ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, int64, error) {
	pred := listPredicate(f)

	countQB := sq.Select("COUNT(*)").From("complaints")
	pageQB := sq.Select(complaintColumns).From("complaints")
	if len(pred) > 0 {
		countQB = countQB.Where(pred)
		pageQB = pageQB.Where(pred)
	}

	countQuery, countArgs, err := countQB.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := s.q.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	offset := uint64((f.Page - 1) * f.Limit)
	pageQuery, pageArgs, err := pageQB.
		OrderBy(listOrder(f)).
		Limit(uint64(f.Limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build page query: %w", err)
	}
	items, err := s.queryComplaints(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
