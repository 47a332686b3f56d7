package handler

import (
	"net/http"
	"strconv"
	"time"

	"jansunwai/models"
	"jansunwai/service"
)

// NotificationHandler exposes the role notification feed.
type NotificationHandler struct {
	service *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

type notificationView struct {
	ID         int64     `json:"id"`
	TargetRole string    `json:"target_role"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func toNotificationView(n models.Notification) notificationView {
	return notificationView{
		ID:         n.ID,
		TargetRole: service.RoleDisplayName(n.TargetRole),
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

// resolveRole picks the feed's role: an explicit ?role= display name wins,
// otherwise the authenticated actor's own role.
func resolveRole(r *http.Request) (models.Role, bool) {
	if name := r.URL.Query().Get("role"); name != "" {
		return service.RoleByDisplayName(name)
	}
	actor := actorFrom(r)
	if actor.Role == "" {
		return "", false
	}
	return actor.Role, true
}

// GetNotifications handles GET /notifications.
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	role, ok := resolveRole(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "unknown role")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	notifications, err := h.service.NotificationsForRole(r.Context(), role, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	views := make([]notificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, toNotificationView(n))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// MarkNotificationsRead handles POST /notifications/read.
func (h *NotificationHandler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	role, ok := resolveRole(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "unknown role")
		return
	}

	if err := h.service.MarkRead(r.Context(), role); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "notifications marked as read"})
}
