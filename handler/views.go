package handler

import (
	"time"

	"jansunwai/models"
	"jansunwai/service"
)

// View DTOs translate the internal vocabulary back to the external one
// before anything leaves the API.

type complaintView struct {
	ID          int64              `json:"id"`
	DisplayID   string             `json:"display_id,omitempty"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    *string            `json:"category,omitempty"`
	Subcategory *string            `json:"subcategory,omitempty"`
	Location    *string            `json:"location,omitempty"`
	Taluka      *string            `json:"taluka,omitempty"`
	Media       []models.MediaItem `json:"media,omitempty"`
	Status      string             `json:"status"`
	Priority    string             `json:"priority"`
	Department  string             `json:"department,omitempty"`

	ParentComplaintID     *int64  `json:"parent_complaint_id,omitempty"`
	SplitIndex            *int64  `json:"split_index,omitempty"`
	IsSplit               bool    `json:"is_split"`
	MergedIntoComplaintID *int64  `json:"merged_into_complaint_id,omitempty"`
	IsMerged              bool    `json:"is_merged"`
	OriginalComplaintIDs  []int64 `json:"original_complaint_ids,omitempty"`
	LinkedComplaintIDs    []int64 `json:"linked_complaint_ids,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type historyView struct {
	ID         int64      `json:"id"`
	UserID     *int64     `json:"user_id,omitempty"`
	Role       string     `json:"role"`
	Action     string     `json:"action"`
	Notes      *string    `json:"notes,omitempty"`
	Attachment *string    `json:"attachment,omitempty"`
	ETA        *time.Time `json:"eta,omitempty"`
	OldStatus  string     `json:"old_status,omitempty"`
	NewStatus  string     `json:"new_status,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type remarkView struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"user_id,omitempty"`
	Role       string    `json:"role"`
	Visibility string    `json:"visibility"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

type complaintDetailView struct {
	Complaint complaintView   `json:"complaint"`
	History   []historyView   `json:"history"`
	Remarks   []remarkView    `json:"remarks"`
	Children  []complaintView `json:"children,omitempty"`
	Linked    []complaintView `json:"linked,omitempty"`
}

type complaintPageView struct {
	Items      []complaintView `json:"items"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

func toComplaintView(c models.Complaint) complaintView {
	v := complaintView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Media:       c.Media,
		Status:      service.StatusToExternal(c.Status),
		Priority:    service.PriorityToExternal(c.Priority),
		IsSplit:     c.IsSplit,
		IsMerged:    c.IsMerged,
		CreatedAt:   c.CreatedAt,
	}
	if c.DisplayID.Valid {
		v.DisplayID = c.DisplayID.String
	}
	if c.Category.Valid {
		v.Category = &c.Category.String
	}
	if c.Subcategory.Valid {
		v.Subcategory = &c.Subcategory.String
	}
	if c.Location.Valid {
		v.Location = &c.Location.String
	}
	if c.Taluka.Valid {
		v.Taluka = &c.Taluka.String
	}
	if c.Department != "" {
		v.Department = service.DepartmentToExternal(c.Department)
	}
	if c.ParentComplaintID.Valid {
		v.ParentComplaintID = &c.ParentComplaintID.Int64
	}
	if c.SplitIndex.Valid {
		v.SplitIndex = &c.SplitIndex.Int64
	}
	if c.MergedIntoComplaintID.Valid {
		v.MergedIntoComplaintID = &c.MergedIntoComplaintID.Int64
	}
	if len(c.OriginalComplaintIDs) > 0 {
		v.OriginalComplaintIDs = c.OriginalComplaintIDs
	}
	if len(c.LinkedComplaintIDs) > 0 {
		v.LinkedComplaintIDs = c.LinkedComplaintIDs
	}
	if c.UpdatedAt.Valid {
		v.UpdatedAt = &c.UpdatedAt.Time
	}
	return v
}

func toHistoryView(h models.ComplaintHistory) historyView {
	v := historyView{
		ID:        h.ID,
		Role:      service.RoleDisplayName(h.Role),
		Action:    h.Action,
		CreatedAt: h.CreatedAt,
	}
	if h.UserID.Valid {
		v.UserID = &h.UserID.Int64
	}
	if h.Notes.Valid {
		v.Notes = &h.Notes.String
	}
	if h.Attachment.Valid {
		v.Attachment = &h.Attachment.String
	}
	if h.ETA.Valid {
		v.ETA = &h.ETA.Time
	}
	if h.OldStatus.Valid {
		v.OldStatus = service.StatusToExternal(models.Status(h.OldStatus.String))
	}
	if h.NewStatus.Valid {
		v.NewStatus = service.StatusToExternal(models.Status(h.NewStatus.String))
	}
	return v
}

func toRemarkView(rm models.Remark) remarkView {
	v := remarkView{
		ID:         rm.ID,
		Role:       service.RoleDisplayName(rm.Role),
		Visibility: string(rm.Visibility),
		Notes:      rm.Notes,
		CreatedAt:  rm.CreatedAt,
	}
	if rm.UserID.Valid {
		v.UserID = &rm.UserID.Int64
	}
	return v
}

func toDetailView(d *models.ComplaintDetail) complaintDetailView {
	view := complaintDetailView{
		Complaint: toComplaintView(d.Complaint),
		History:   make([]historyView, 0, len(d.History)),
		Remarks:   make([]remarkView, 0, len(d.Remarks)),
	}
	for _, h := range d.History {
		view.History = append(view.History, toHistoryView(h))
	}
	for _, rm := range d.Remarks {
		view.Remarks = append(view.Remarks, toRemarkView(rm))
	}
	for _, c := range d.Children {
		view.Children = append(view.Children, toComplaintView(c))
	}
	for _, c := range d.Linked {
		view.Linked = append(view.Linked, toComplaintView(c))
	}
	return view
}
