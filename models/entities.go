package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MediaItem is one attachment on a complaint.
type MediaItem struct {
	URL       string    `json:"url"`
	Type      MediaType `json:"type"`
	Filename  string    `json:"filename,omitempty"`
	Extension string    `json:"extension,omitempty"`
}

// UnmarshalJSON accepts both the structured object form and the legacy
// bare-string form ("https://...") still present in old rows.
func (m *MediaItem) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		*m = MediaItem{URL: url, Type: MediaOther}
		return nil
	}
	type alias MediaItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = MediaItem(a)
	return nil
}

// MediaList is a JSON column of media items.
type MediaList []MediaItem

// Value implements driver.Valuer; empty lists are stored as NULL.
func (m MediaList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *MediaList) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// IDList is a JSON column of complaint ids.
type IDList []int64

// Value implements driver.Valuer; empty lists are stored as NULL.
func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *IDList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Contains reports whether id is in the list.
func (l IDList) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
}

// Complaint is the central entity.
type Complaint struct {
	ID          int64          `db:"complaint_id" json:"complaint_id"`
	DisplayID   sql.NullString `db:"display_id" json:"display_id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Category    sql.NullString `db:"category" json:"category"`
	Subcategory sql.NullString `db:"subcategory" json:"subcategory"`
	Location    sql.NullString `db:"location" json:"location"`
	Taluka      sql.NullString `db:"taluka" json:"taluka"`
	Media       MediaList      `db:"media" json:"media"`

	Status     Status     `db:"current_status" json:"current_status"`
	Priority   Priority   `db:"priority" json:"priority"`
	Department Department `db:"department" json:"department"` // empty = unassigned

	ParentComplaintID     sql.NullInt64 `db:"parent_complaint_id" json:"parent_complaint_id"`
	SplitIndex            sql.NullInt64 `db:"split_index" json:"split_index"`
	IsSplit               bool          `db:"is_split" json:"is_split"`
	MergedIntoComplaintID sql.NullInt64 `db:"merged_into_complaint_id" json:"merged_into_complaint_id"`
	IsMerged              bool          `db:"is_merged" json:"is_merged"`
	OriginalComplaintIDs  IDList        `db:"original_complaint_ids" json:"original_complaint_ids"`
	LinkedComplaintIDs    IDList        `db:"linked_complaint_ids" json:"linked_complaint_ids"`

	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at" json:"updated_at"`
}

// ComplaintHistory is an immutable, append-only audit entry. Entries are
// created exactly once per action and never mutated or deleted.
type ComplaintHistory struct {
	ID          int64          `db:"history_id" json:"history_id"`
	ComplaintID int64          `db:"complaint_id" json:"complaint_id"`
	UserID      sql.NullInt64  `db:"user_id" json:"user_id"`
	Role        Role           `db:"role" json:"role"`
	Action      string         `db:"action" json:"action"`
	Notes       sql.NullString `db:"notes" json:"notes"`
	Attachment  sql.NullString `db:"attachment" json:"attachment"`
	ETA         sql.NullTime   `db:"eta" json:"eta"`
	OldStatus   sql.NullString `db:"old_status" json:"old_status"`
	NewStatus   sql.NullString `db:"new_status" json:"new_status"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Remark is a commentary entry distinct from history, carrying visibility.
type Remark struct {
	ID          int64         `db:"remark_id" json:"remark_id"`
	ComplaintID int64         `db:"complaint_id" json:"complaint_id"`
	UserID      sql.NullInt64 `db:"user_id" json:"user_id"`
	Role        Role          `db:"role" json:"role"`
	Visibility  Visibility    `db:"visibility" json:"visibility"`
	Notes       string        `db:"notes" json:"notes"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// Notification is a role-targeted fan-out record.
type Notification struct {
	ID         int64            `db:"notification_id" json:"notification_id"`
	TargetRole Role             `db:"target_role" json:"target_role"`
	Type       NotificationType `db:"type" json:"type"`
	Title      string           `db:"title" json:"title"`
	Message    string           `db:"message" json:"message"`
	CreatedBy  sql.NullInt64    `db:"created_by" json:"created_by"`
	IsRead     bool             `db:"is_read" json:"is_read"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

// User is a staff or citizen account holding exactly one role.
type User struct {
	ID                     int64     `db:"user_id" json:"user_id"`
	Name                   string    `db:"name" json:"name"`
	Role                   Role      `db:"role" json:"role"`
	HasUnreadNotifications bool      `db:"has_unread_notifications" json:"has_unread_notifications"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// Actor identifies who performed an operation, as resolved by the auth
// middleware.
type Actor struct {
	ID   int64
	Role Role
}

// ComplaintDetail is a complaint with its relations, as returned by
// GetComplaint.
type ComplaintDetail struct {
	Complaint Complaint          `json:"complaint"`
	History   []ComplaintHistory `json:"history"`
	Remarks   []Remark           `json:"remarks"`
	Children  []Complaint        `json:"children,omitempty"`
	Linked    []Complaint        `json:"linked,omitempty"`
}
