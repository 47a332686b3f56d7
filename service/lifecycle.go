package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"jansunwai/models"
)

const mergeDescriptionSeparator = "\n\n----------\n\n"

// SplitComplaint decomposes one complaint into N independent children. Each
// child copies every field of the source except those overridden in its
// split entry. A complaint may be split exactly once.
func (s *ComplaintService) SplitComplaint(ctx context.Context, sourceID int64, req *models.SplitRequest, actor models.Actor) (*models.SplitResponse, error) {
	if len(req.Splits) == 0 {
		return nil, validationError("at least one split entry is required")
	}

	source, err := s.store.GetComplaint(ctx, sourceID)
	if err != nil {
		return nil, internalError("failed to get complaint", err)
	}
	if source == nil {
		return nil, notFoundError("complaint %d not found", sourceID)
	}
	if source.IsSplit {
		return nil, conflictError("complaint %s has already been split", s.displayOf(source))
	}
	if source.IsMerged {
		return nil, conflictError("complaint %s was merged and cannot be split", s.displayOf(source))
	}

	base := s.displayOf(source)
	resp := &models.SplitResponse{
		CreatedIDs: make([]int64, 0, len(req.Splits)),
		DisplayIDs: make([]string, 0, len(req.Splits)),
	}

	err = s.store.WithinTx(ctx, func(tx Store) error {
		for i, part := range req.Splits {
			child := s.childFromSplit(source, part, int64(i+1), base)
			if err := tx.CreateComplaint(ctx, child); err != nil {
				return fmt.Errorf("failed to create split child %d: %w", i+1, err)
			}

			note := fmt.Sprintf("Created from split of complaint %s", base)
			if part.Description != nil && *part.Description != "" {
				note += ": " + *part.Description
			}
			if err := tx.CreateHistory(ctx, &models.ComplaintHistory{
				ComplaintID: child.ID,
				UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
				Role:        actor.Role,
				Action:      "Complaint Created from Split",
				Notes:       sql.NullString{String: note, Valid: true},
			}); err != nil {
				return fmt.Errorf("failed to create child history: %w", err)
			}

			resp.CreatedIDs = append(resp.CreatedIDs, child.ID)
			resp.DisplayIDs = append(resp.DisplayIDs, child.DisplayID.String)
		}

		// The guarded flip is the race-free check against a concurrent
		// split; losing it rolls back the children created above.
		ok, err := tx.MarkSplit(ctx, source.ID, base)
		if err != nil {
			return fmt.Errorf("failed to mark complaint split: %w", err)
		}
		if !ok {
			return conflictError("complaint %s has already been split", base)
		}

		return tx.CreateHistory(ctx, &models.ComplaintHistory{
			ComplaintID: source.ID,
			UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
			Role:        actor.Role,
			Action:      "Complaint Split",
			Notes: sql.NullString{
				String: "Split into " + strings.Join(resp.DisplayIDs, ", "),
				Valid:  true,
			},
		})
	})
	if err != nil {
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, internalError("split failed", err)
	}

	log.Printf("[complaint] split %s into %d children", base, len(resp.CreatedIDs))
	return resp, nil
}

// childFromSplit copies the source complaint into a new child, applying the
// split entry's overrides. Relationship state never carries over.
func (s *ComplaintService) childFromSplit(source *models.Complaint, part models.SplitPart, index int64, base string) *models.Complaint {
	child := &models.Complaint{
		DisplayID:         sql.NullString{String: fmt.Sprintf("%s-%d", base, index), Valid: true},
		Title:             source.Title,
		Description:       source.Description,
		Category:          source.Category,
		Subcategory:       source.Subcategory,
		Location:          source.Location,
		Taluka:            source.Taluka,
		Media:             source.Media,
		Status:            source.Status,
		Priority:          source.Priority,
		Department:        source.Department,
		ParentComplaintID: sql.NullInt64{Int64: source.ID, Valid: true},
		SplitIndex:        sql.NullInt64{Int64: index, Valid: true},
	}
	if part.Description != nil {
		child.Description = *part.Description
	}
	if part.Status != nil {
		if mapped, ok := StatusToInternal(*part.Status); ok {
			child.Status = mapped
		}
	}
	if part.Department != nil {
		if d := DepartmentToInternal(*part.Department); d != "" {
			child.Department = d
		}
	}
	if part.Priority != nil {
		if p := PriorityToInternal(*part.Priority); p != "" {
			child.Priority = p
		}
	}
	if part.Category != nil {
		child.Category = sql.NullString{String: *part.Category, Valid: true}
	}
	if part.Subcategory != nil {
		child.Subcategory = sql.NullString{String: *part.Subcategory, Valid: true}
	}
	if part.Taluka != nil {
		child.Taluka = sql.NullString{String: *part.Taluka, Valid: true}
	}
	if part.Location != nil {
		child.Location = sql.NullString{String: *part.Location, Valid: true}
	}
	if part.Media != nil {
		child.Media = part.Media
	}
	return child
}

// MergeComplaints absorbs the content and timeline of every non-primary
// selected complaint into the primary. History and remarks are copied with
// original timestamps and a provenance suffix; originals are never deleted.
// Link lists across the whole store are rewritten to point at the primary.
func (s *ComplaintService) MergeComplaints(ctx context.Context, req *models.MergeRequest, actor models.Actor) (*models.MergeResponse, error) {
	if len(req.ComplaintIDs) < 2 {
		return nil, validationError("merge requires at least two complaint ids")
	}
	primaryInSet := false
	seen := make(map[int64]bool, len(req.ComplaintIDs))
	for _, id := range req.ComplaintIDs {
		if seen[id] {
			return nil, validationError("duplicate complaint id %d in merge set", id)
		}
		seen[id] = true
		if id == req.PrimaryComplaintID {
			primaryInSet = true
		}
	}
	if !primaryInSet {
		return nil, validationError("primary complaint %d is not in the merge set", req.PrimaryComplaintID)
	}

	fetched, err := s.store.GetComplaints(ctx, req.ComplaintIDs)
	if err != nil {
		return nil, internalError("failed to get complaints", err)
	}
	byID := make(map[int64]*models.Complaint, len(fetched))
	for i := range fetched {
		byID[fetched[i].ID] = &fetched[i]
	}
	// Preserve the supplied order; it drives description concatenation and
	// history replay.
	selected := make([]*models.Complaint, 0, len(req.ComplaintIDs))
	for _, id := range req.ComplaintIDs {
		c, ok := byID[id]
		if !ok {
			return nil, notFoundError("complaint %d not found", id)
		}
		if c.IsMerged {
			return nil, conflictError("complaint %s is already merged", s.displayOf(c))
		}
		selected = append(selected, c)
	}
	primary := byID[req.PrimaryComplaintID]

	reason := "Merged as duplicate"
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		reason = strings.TrimSpace(*req.Reason)
	}

	mergedIDs := make([]int64, 0, len(selected)-1)
	mergedDisplays := make([]string, 0, len(selected)-1)
	for _, c := range selected {
		if c.ID != primary.ID {
			mergedIDs = append(mergedIDs, c.ID)
			mergedDisplays = append(mergedDisplays, s.displayOf(c))
		}
	}

	primary.Description = s.combinedDescription(selected, primary)
	primary.Media = combinedMedia(selected)
	primary.OriginalComplaintIDs = mergedIDs
	// Classification stays untouched: merge enriches content, it does not
	// override status/department/priority.

	err = s.store.WithinTx(ctx, func(tx Store) error {
		if err := tx.UpdateComplaint(ctx, primary); err != nil {
			return fmt.Errorf("failed to update primary: %w", err)
		}

		for _, c := range selected {
			if c.ID == primary.ID {
				continue
			}
			if err := s.absorbTimeline(ctx, tx, c, primary); err != nil {
				return err
			}

			ok, err := tx.MarkMerged(ctx, c.ID, primary.ID)
			if err != nil {
				return fmt.Errorf("failed to mark complaint %d merged: %w", c.ID, err)
			}
			if !ok {
				return conflictError("complaint %s is already merged", s.displayOf(c))
			}
			if err := tx.CreateHistory(ctx, &models.ComplaintHistory{
				ComplaintID: c.ID,
				UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
				Role:        actor.Role,
				Action:      "Complaint Merged",
				Notes: sql.NullString{
					String: fmt.Sprintf("Merged into complaint %s: %s", s.displayOf(primary), reason),
					Valid:  true,
				},
			}); err != nil {
				return fmt.Errorf("failed to create merge history: %w", err)
			}
		}

		if err := tx.CreateHistory(ctx, &models.ComplaintHistory{
			ComplaintID: primary.ID,
			UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
			Role:        actor.Role,
			Action:      "Complaints Merged",
			Notes: sql.NullString{
				String: fmt.Sprintf("Merged complaints %s into this complaint: %s",
					strings.Join(mergedDisplays, ", "), reason),
				Valid: true,
			},
		}); err != nil {
			return fmt.Errorf("failed to create primary merge history: %w", err)
		}

		return s.reconcileLinks(ctx, tx, selected, primary, mergedIDs)
	})
	if err != nil {
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, internalError("merge failed", err)
	}

	log.Printf("[complaint] merged %d complaints into %s", len(mergedIDs), s.displayOf(primary))
	return &models.MergeResponse{PrimaryID: primary.ID, MergedIDs: mergedIDs}, nil
}

// combinedDescription concatenates every non-empty description in supplied
// order, falling back to the primary's own when all are empty.
func (s *ComplaintService) combinedDescription(selected []*models.Complaint, primary *models.Complaint) string {
	var parts []string
	for _, c := range selected {
		if d := strings.TrimSpace(c.Description); d != "" {
			parts = append(parts, d)
		}
	}
	if len(parts) == 0 {
		return primary.Description
	}
	return strings.Join(parts, mergeDescriptionSeparator)
}

// combinedMedia unions media across the selection, de-duplicated by URL with
// first occurrence winning.
func combinedMedia(selected []*models.Complaint) models.MediaList {
	seen := make(map[string]bool)
	var media models.MediaList
	for _, c := range selected {
		for _, item := range c.Media {
			if item.URL == "" || seen[item.URL] {
				continue
			}
			seen[item.URL] = true
			media = append(media, item)
		}
	}
	return media
}

// absorbTimeline copies a non-primary complaint's history and remarks onto
// the primary with original timestamps and a provenance suffix. The
// originals on the source complaint are left untouched.
func (s *ComplaintService) absorbTimeline(ctx context.Context, tx Store, source, primary *models.Complaint) error {
	provenance := fmt.Sprintf("(merged from complaint %s)", s.displayOf(source))

	history, err := tx.HistoryForComplaint(ctx, source.ID)
	if err != nil {
		return fmt.Errorf("failed to read history of complaint %d: %w", source.ID, err)
	}
	for _, h := range history {
		notes := provenance
		if h.Notes.Valid && h.Notes.String != "" {
			notes = h.Notes.String + " " + provenance
		}
		if err := tx.CreateHistory(ctx, &models.ComplaintHistory{
			ComplaintID: primary.ID,
			UserID:      h.UserID,
			Role:        h.Role,
			Action:      h.Action,
			Notes:       sql.NullString{String: notes, Valid: true},
			Attachment:  h.Attachment,
			ETA:         h.ETA,
			OldStatus:   h.OldStatus,
			NewStatus:   h.NewStatus,
			CreatedAt:   h.CreatedAt, // original timeline, not merge time
		}); err != nil {
			return fmt.Errorf("failed to copy history entry %d: %w", h.ID, err)
		}
	}

	remarks, err := tx.RemarksForComplaint(ctx, source.ID)
	if err != nil {
		return fmt.Errorf("failed to read remarks of complaint %d: %w", source.ID, err)
	}
	for _, rm := range remarks {
		notes := provenance
		if rm.Notes != "" {
			notes = rm.Notes + " " + provenance
		}
		if err := tx.CreateRemark(ctx, &models.Remark{
			ComplaintID: primary.ID,
			UserID:      rm.UserID,
			Role:        rm.Role,
			Visibility:  rm.Visibility,
			Notes:       notes,
			CreatedAt:   rm.CreatedAt,
		}); err != nil {
			return fmt.Errorf("failed to copy remark %d: %w", rm.ID, err)
		}
	}
	return nil
}

// reconcileLinks unions the selection's link lists onto the primary
// (dropping intra-selection links) and rewrites every other complaint's
// references to absorbed ids so they point at the primary. Matching is
// exact-id equality.
func (s *ComplaintService) reconcileLinks(ctx context.Context, tx Store, selected []*models.Complaint, primary *models.Complaint, mergedIDs []int64) error {
	inSelection := make(map[int64]bool, len(selected))
	for _, c := range selected {
		inSelection[c.ID] = true
	}

	var union models.IDList
	for _, c := range selected {
		for _, linked := range c.LinkedComplaintIDs {
			if inSelection[linked] || union.Contains(linked) {
				continue
			}
			union = append(union, linked)
		}
	}
	// An empty union still has to be written when the primary's own list
	// referenced a complaint it just absorbed; skipping the write would
	// leave a link from the primary to one of its siblings.
	droppedOwnLink := false
	for _, linked := range primary.LinkedComplaintIDs {
		if inSelection[linked] {
			droppedOwnLink = true
			break
		}
	}
	if len(union) > 0 || droppedOwnLink {
		if err := tx.SetLinkedComplaints(ctx, primary.ID, union); err != nil {
			return fmt.Errorf("failed to set primary links: %w", err)
		}
		primary.LinkedComplaintIDs = union
	}

	mergedSet := make(map[int64]bool, len(mergedIDs))
	for _, id := range mergedIDs {
		mergedSet[id] = true
	}
	referrers, err := tx.ComplaintsLinkingTo(ctx, mergedIDs)
	if err != nil {
		return fmt.Errorf("failed to find complaints linking to merged ids: %w", err)
	}
	for i := range referrers {
		ref := &referrers[i]
		if inSelection[ref.ID] {
			continue
		}
		var rewritten models.IDList
		for _, linked := range ref.LinkedComplaintIDs {
			target := linked
			if mergedSet[linked] {
				target = primary.ID
			}
			if !rewritten.Contains(target) {
				rewritten = append(rewritten, target)
			}
		}
		if err := tx.SetLinkedComplaints(ctx, ref.ID, rewritten); err != nil {
			return fmt.Errorf("failed to rewrite links of complaint %d: %w", ref.ID, err)
		}
	}
	return nil
}

// LinkComplaints records a symmetric "related to" association between two
// complaints. The reciprocal reference is always written on both sides.
func (s *ComplaintService) LinkComplaints(ctx context.Context, idA, idB int64, reason string, actor models.Actor) error {
	if idA == idB {
		return validationError("cannot link a complaint to itself")
	}
	a, b, err := s.getPair(ctx, idA, idB)
	if err != nil {
		return err
	}
	if a.LinkedComplaintIDs.Contains(b.ID) && b.LinkedComplaintIDs.Contains(a.ID) {
		return conflictError("complaints %s and %s are already linked", s.displayOf(a), s.displayOf(b))
	}
	if reason == "" {
		reason = "Related"
	}

	err = s.store.WithinTx(ctx, func(tx Store) error {
		if !a.LinkedComplaintIDs.Contains(b.ID) {
			if err := tx.SetLinkedComplaints(ctx, a.ID, append(a.LinkedComplaintIDs, b.ID)); err != nil {
				return fmt.Errorf("failed to link %d -> %d: %w", a.ID, b.ID, err)
			}
		}
		if !b.LinkedComplaintIDs.Contains(a.ID) {
			if err := tx.SetLinkedComplaints(ctx, b.ID, append(b.LinkedComplaintIDs, a.ID)); err != nil {
				return fmt.Errorf("failed to link %d -> %d: %w", b.ID, a.ID, err)
			}
		}
		for _, side := range []struct {
			own   *models.Complaint
			other *models.Complaint
		}{{a, b}, {b, a}} {
			if err := tx.CreateHistory(ctx, &models.ComplaintHistory{
				ComplaintID: side.own.ID,
				UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
				Role:        actor.Role,
				Action:      "Complaint Linked",
				Notes: sql.NullString{
					String: fmt.Sprintf("Linked to complaint %s: %s", s.displayOf(side.other), reason),
					Valid:  true,
				},
			}); err != nil {
				return fmt.Errorf("failed to create link history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*Error); ok {
			return err
		}
		return internalError("link failed", err)
	}
	return nil
}

// UnlinkComplaints removes the association from both sides. A link present
// on only one side is repaired, not treated as an error.
func (s *ComplaintService) UnlinkComplaints(ctx context.Context, idA, idB int64, actor models.Actor) error {
	if idA == idB {
		return validationError("cannot unlink a complaint from itself")
	}
	a, b, err := s.getPair(ctx, idA, idB)
	if err != nil {
		return err
	}
	onA := a.LinkedComplaintIDs.Contains(b.ID)
	onB := b.LinkedComplaintIDs.Contains(a.ID)
	if !onA && !onB {
		return conflictError("complaints %s and %s are not linked", s.displayOf(a), s.displayOf(b))
	}
	if onA != onB {
		log.Printf("[complaint] repairing one-sided link between %d and %d", a.ID, b.ID)
	}

	err = s.store.WithinTx(ctx, func(tx Store) error {
		if onA {
			if err := tx.SetLinkedComplaints(ctx, a.ID, removeID(a.LinkedComplaintIDs, b.ID)); err != nil {
				return fmt.Errorf("failed to unlink %d -> %d: %w", a.ID, b.ID, err)
			}
		}
		if onB {
			if err := tx.SetLinkedComplaints(ctx, b.ID, removeID(b.LinkedComplaintIDs, a.ID)); err != nil {
				return fmt.Errorf("failed to unlink %d -> %d: %w", b.ID, a.ID, err)
			}
		}
		for _, side := range []struct {
			own   *models.Complaint
			other *models.Complaint
		}{{a, b}, {b, a}} {
			if err := tx.CreateHistory(ctx, &models.ComplaintHistory{
				ComplaintID: side.own.ID,
				UserID:      sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
				Role:        actor.Role,
				Action:      "Complaint Unlinked",
				Notes: sql.NullString{
					String: fmt.Sprintf("Unlinked from complaint %s", s.displayOf(side.other)),
					Valid:  true,
				},
			}); err != nil {
				return fmt.Errorf("failed to create unlink history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*Error); ok {
			return err
		}
		return internalError("unlink failed", err)
	}
	return nil
}

func (s *ComplaintService) getPair(ctx context.Context, idA, idB int64) (*models.Complaint, *models.Complaint, error) {
	a, err := s.store.GetComplaint(ctx, idA)
	if err != nil {
		return nil, nil, internalError("failed to get complaint", err)
	}
	if a == nil {
		return nil, nil, notFoundError("complaint %d not found", idA)
	}
	b, err := s.store.GetComplaint(ctx, idB)
	if err != nil {
		return nil, nil, internalError("failed to get complaint", err)
	}
	if b == nil {
		return nil, nil, notFoundError("complaint %d not found", idB)
	}
	return a, b, nil
}

func removeID(list models.IDList, id int64) models.IDList {
	var out models.IDList
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
