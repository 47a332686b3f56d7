package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"jansunwai/models"
)

// DefaultDisplayIDPrefix is used when no prefix is configured.
const DefaultDisplayIDPrefix = "BG"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ComplaintService is the lifecycle reconciliation engine: it executes
// create, update, split, merge, link and unlink operations against the
// store, maintaining referential invariants across complaints, history
// entries and remarks, and fans out notifications through the policy.
type ComplaintService struct {
	store    Store
	notifier *Notifier
	prefix   string
}

// NewComplaintService creates the engine. prefix is the display-id prefix;
// empty falls back to DefaultDisplayIDPrefix.
func NewComplaintService(store Store, notifier *Notifier, prefix string) *ComplaintService {
	if prefix == "" {
		prefix = DefaultDisplayIDPrefix
	}
	return &ComplaintService{store: store, notifier: notifier, prefix: prefix}
}

// displayOf returns the external identifier for a complaint, synthesizing
// one from the numeric id when none is stored.
func (s *ComplaintService) displayOf(c *models.Complaint) string {
	if c.DisplayID.Valid && c.DisplayID.String != "" {
		return c.DisplayID.String
	}
	return fmt.Sprintf("%s-%d", s.prefix, c.ID)
}

// GetComplaint returns a complaint with its history, remarks, split
// children and linked complaints.
func (s *ComplaintService) GetComplaint(ctx context.Context, id int64) (*models.ComplaintDetail, error) {
	c, err := s.store.GetComplaint(ctx, id)
	if err != nil {
		return nil, internalError("failed to get complaint", err)
	}
	if c == nil {
		return nil, notFoundError("complaint %d not found", id)
	}

	detail := &models.ComplaintDetail{Complaint: *c}

	if detail.History, err = s.store.HistoryForComplaint(ctx, id); err != nil {
		return nil, internalError("failed to get complaint history", err)
	}
	if detail.Remarks, err = s.store.RemarksForComplaint(ctx, id); err != nil {
		return nil, internalError("failed to get complaint remarks", err)
	}
	if c.IsSplit {
		if detail.Children, err = s.store.ChildComplaints(ctx, id); err != nil {
			return nil, internalError("failed to get split children", err)
		}
	}
	if len(c.LinkedComplaintIDs) > 0 {
		if detail.Linked, err = s.store.GetComplaints(ctx, c.LinkedComplaintIDs); err != nil {
			return nil, internalError("failed to get linked complaints", err)
		}
	}
	return detail, nil
}

// CreateComplaint files a new complaint with status Open and writes the
// initial history entry. Classification fields arrive in the external
// vocabulary; unmapped department/priority values are treated as absent.
func (s *ComplaintService) CreateComplaint(ctx context.Context, req *models.CreateComplaintRequest, actor models.Actor) (*models.Complaint, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, validationError("title is required")
	}

	c := &models.Complaint{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusOpen,
		Priority:    models.PriorityNormal,
		Media:       req.Media,
	}
	if req.Category != nil {
		c.Category = sql.NullString{String: *req.Category, Valid: true}
	}
	if req.Subcategory != nil {
		c.Subcategory = sql.NullString{String: *req.Subcategory, Valid: true}
	}
	if req.Location != nil {
		c.Location = sql.NullString{String: *req.Location, Valid: true}
	}
	if req.Taluka != nil {
		c.Taluka = sql.NullString{String: *req.Taluka, Valid: true}
	}
	if req.Priority != nil {
		if p := PriorityToInternal(*req.Priority); p != "" {
			c.Priority = p
		}
	}
	if req.Department != nil {
		c.Department = DepartmentToInternal(*req.Department)
	}

	err := s.store.WithinTx(ctx, func(tx Store) error {
		if err := tx.CreateComplaint(ctx, c); err != nil {
			return fmt.Errorf("failed to create complaint: %w", err)
		}
		c.DisplayID = sql.NullString{String: fmt.Sprintf("%s-%d", s.prefix, c.ID), Valid: true}
		if err := tx.UpdateComplaint(ctx, c); err != nil {
			return fmt.Errorf("failed to assign display id: %w", err)
		}
		return tx.CreateHistory(ctx, &models.ComplaintHistory{
			ComplaintID: c.ID,
			UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
			Role:        actor.Role,
			Action:      "Complaint Created",
			NewStatus:   sql.NullString{String: string(models.StatusOpen), Valid: true},
		})
	})
	if err != nil {
		return nil, internalError("failed to create complaint", err)
	}
	log.Printf("[complaint] created complaint %s (id=%d)", c.DisplayID.String, c.ID)
	return c, nil
}

// UpdateComplaint applies a partial update. A status change appends a
// history entry and runs the transition notification path; non-empty remark
// text additionally creates a Remark entity and runs the remark path. The
// two records are independent even when triggered by the same request.
func (s *ComplaintService) UpdateComplaint(ctx context.Context, id int64, req *models.UpdateComplaintRequest, actor models.Actor) (*models.ComplaintDetail, error) {
	c, err := s.store.GetComplaint(ctx, id)
	if err != nil {
		return nil, internalError("failed to get complaint", err)
	}
	if c == nil {
		return nil, notFoundError("complaint %d not found", id)
	}

	oldStatus := c.Status
	statusChanged := false
	externalStatus := ""
	if req.Status != nil {
		// Unmapped labels leave the status unchanged, mirroring the
		// department/priority sentinel behavior.
		if mapped, ok := StatusToInternal(*req.Status); ok && mapped != oldStatus {
			c.Status = mapped
			externalStatus = *req.Status
			statusChanged = true
		}
	}
	if req.Priority != nil {
		if p := PriorityToInternal(*req.Priority); p != "" {
			c.Priority = p
		}
	}
	if req.Department != nil {
		if d := DepartmentToInternal(*req.Department); d != "" {
			c.Department = d
		}
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Category != nil {
		c.Category = sql.NullString{String: *req.Category, Valid: true}
	}
	if req.Subcategory != nil {
		c.Subcategory = sql.NullString{String: *req.Subcategory, Valid: true}
	}
	if req.Location != nil {
		c.Location = sql.NullString{String: *req.Location, Valid: true}
	}
	if req.Taluka != nil {
		c.Taluka = sql.NullString{String: *req.Taluka, Valid: true}
	}

	remarkText := ""
	if req.Remark != nil {
		remarkText = strings.TrimSpace(*req.Remark)
	}
	visibility := models.VisibilityInternal
	if req.RemarkVisibility != nil && models.Visibility(*req.RemarkVisibility) == models.VisibilityPublic {
		visibility = models.VisibilityPublic
	}

	err = s.store.WithinTx(ctx, func(tx Store) error {
		if err := tx.UpdateComplaint(ctx, c); err != nil {
			return fmt.Errorf("failed to update complaint: %w", err)
		}
		if statusChanged {
			h := &models.ComplaintHistory{
				ComplaintID: c.ID,
				UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
				Role:        actor.Role,
				Action:      "Status changed to " + externalStatus,
				OldStatus:   sql.NullString{String: string(oldStatus), Valid: true},
				NewStatus:   sql.NullString{String: string(c.Status), Valid: true},
			}
			if remarkText != "" {
				h.Notes = sql.NullString{String: remarkText, Valid: true}
			}
			if req.Attachment != nil {
				h.Attachment = sql.NullString{String: *req.Attachment, Valid: true}
			}
			if req.ETA != nil {
				h.ETA = sql.NullTime{Time: *req.ETA, Valid: true}
			}
			if err := tx.CreateHistory(ctx, h); err != nil {
				return fmt.Errorf("failed to create status history: %w", err)
			}
		}
		if remarkText != "" {
			if err := tx.CreateRemark(ctx, &models.Remark{
				ComplaintID: c.ID,
				UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
				Role:        actor.Role,
				Visibility:  visibility,
				Notes:       remarkText,
			}); err != nil {
				return fmt.Errorf("failed to create remark: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, internalError("failed to update complaint", err)
	}

	// Notification fan-out is fire-and-forget relative to the committed
	// transaction above.
	display := s.displayOf(c)
	var drafts []Draft
	if statusChanged {
		drafts = append(drafts, DecideTransition(StatusTransitionEvent{
			ComplaintID: c.ID,
			DisplayID:   display,
			OldStatus:   oldStatus,
			NewStatus:   c.Status,
			ActorID:     actor.ID,
		})...)
	}
	if remarkText != "" {
		var tagged []models.Role
		if IsStakeholderRole(actor.Role) {
			tagged = ExtractTaggedRoles(remarkText)
		}
		drafts = append(drafts, DecideRemark(RemarkEvent{
			ComplaintID: c.ID,
			DisplayID:   display,
			Status:      c.Status,
			Visibility:  visibility,
			ActorRole:   actor.Role,
			Department:  c.Department,
			TaggedRoles: tagged,
		})...)
	}
	if len(drafts) > 0 && s.notifier != nil {
		s.notifier.Dispatch(ctx, actor.ID, drafts)
	}

	return s.GetComplaint(ctx, id)
}

// ListComplaints builds the filter predicate and returns one page plus the
// total count over the same predicate.
func (s *ComplaintService) ListComplaints(ctx context.Context, f models.ComplaintFilter) (*models.ComplaintPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	if f.Search != "" {
		if id, ok := ParseSearchID(s.prefix, f.Search); ok {
			f.SearchID = &id
		}
	}

	items, total, err := s.store.ListComplaints(ctx, f)
	if err != nil {
		return nil, internalError("failed to list complaints", err)
	}
	return &models.ComplaintPage{
		Items:      items,
		TotalCount: total,
		Page:       f.Page,
		Limit:      f.Limit,
	}, nil
}
