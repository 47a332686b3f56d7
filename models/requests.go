package models

import "time"

// CreateComplaintRequest is the payload for filing a new complaint. All
// classification values use the external vocabulary.
type CreateComplaintRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    *string     `json:"category,omitempty"`
	Subcategory *string     `json:"subcategory,omitempty"`
	Location    *string     `json:"location,omitempty"`
	Taluka      *string     `json:"taluka,omitempty"`
	Media       []MediaItem `json:"media,omitempty"`
	Priority    *string     `json:"priority,omitempty"`
	Department  *string     `json:"department,omitempty"`
}

// UpdateComplaintRequest is a partial update; only fields present in the
// payload are applied. Classification values use the external vocabulary.
type UpdateComplaintRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Category         *string    `json:"category,omitempty"`
	Subcategory      *string    `json:"subcategory,omitempty"`
	Location         *string    `json:"location,omitempty"`
	Taluka           *string    `json:"taluka,omitempty"`
	Status           *string    `json:"status,omitempty"`
	Priority         *string    `json:"priority,omitempty"`
	Department       *string    `json:"department,omitempty"`
	Remark           *string    `json:"remark,omitempty"`
	RemarkVisibility *string    `json:"remark_visibility,omitempty"` // PUBLIC | INTERNAL, default INTERNAL
	Attachment       *string    `json:"attachment,omitempty"`
	ETA              *time.Time `json:"eta,omitempty"`
}

// SplitPart describes one child of a split. Unset fields inherit from the
// source complaint.
type SplitPart struct {
	Description *string     `json:"description,omitempty"`
	Status      *string     `json:"status,omitempty"`
	Department  *string     `json:"department,omitempty"`
	Priority    *string     `json:"priority,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Subcategory *string     `json:"subcategory,omitempty"`
	Taluka      *string     `json:"taluka,omitempty"`
	Location    *string     `json:"location,omitempty"`
	Media       []MediaItem `json:"media,omitempty"`
}

// SplitRequest is the payload for splitting a complaint into children.
type SplitRequest struct {
	Splits []SplitPart `json:"splits"`
}

// SplitResponse lists the created children in input order.
type SplitResponse struct {
	CreatedIDs []int64  `json:"created_ids"`
	DisplayIDs []string `json:"display_ids"`
}

// MergeRequest is the payload for merging complaints into a primary.
type MergeRequest struct {
	ComplaintIDs       []int64 `json:"complaint_ids"`
	PrimaryComplaintID int64   `json:"primary_complaint_id"`
	Reason             *string `json:"reason,omitempty"`
}

// MergeResponse reports the surviving primary and the absorbed ids.
type MergeResponse struct {
	PrimaryID int64   `json:"primary_id"`
	MergedIDs []int64 `json:"merged_ids"`
}

// LinkRequest is the payload for linking or unlinking two complaints.
type LinkRequest struct {
	TargetComplaintID int64  `json:"target_complaint_id"`
	Reason            string `json:"reason,omitempty"` // conventionally "Duplicate" or "Related"
}

// ComplaintFilter carries the list predicate after external values have been
// mapped to internal ones. SearchID is set when the search term matched one
// of the recognized id shapes.
type ComplaintFilter struct {
	Search     string
	SearchID   *int64
	Statuses   []Status
	Department Department
	Location   string
	Taluka     string
	From       *time.Time
	To         *time.Time
	SortBy     string
	SortDesc   bool
	Page       int
	Limit      int
}

// ComplaintPage is one page of list results. TotalCount reflects the same
// predicate as the page itself.
type ComplaintPage struct {
	Items      []Complaint `json:"items"`
	TotalCount int64       `json:"total_count"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

// ErrorResponse is the JSON error body returned by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
