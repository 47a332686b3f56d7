package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"jansunwai/middleware"
	"jansunwai/models"
	"jansunwai/service"
)

// ComplaintHandler exposes the complaint operations over HTTP.
type ComplaintHandler struct {
	service *service.ComplaintService
}

func NewComplaintHandler(svc *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: svc}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func actorFrom(r *http.Request) models.Actor {
	actor, _ := middleware.ActorFromContext(r.Context())
	return actor
}

// GetComplaint handles GET /complaints/{id}.
func (h *ComplaintHandler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid complaint id")
		return
	}

	detail, err := h.service.GetComplaint(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toDetailView(detail))
}

// CreateComplaint handles POST /complaints.
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	complaint, err := h.service.CreateComplaint(r.Context(), &req, actorFrom(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toComplaintView(*complaint))
}

// UpdateComplaint handles PATCH /complaints/{id}.
func (h *ComplaintHandler) UpdateComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid complaint id")
		return
	}

	var req models.UpdateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	detail, err := h.service.UpdateComplaint(r.Context(), id, &req, actorFrom(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toDetailView(detail))
}

// ListComplaints handles GET /complaints.
func (h *ComplaintHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	page, err := h.service.ListComplaints(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	view := complaintPageView{
		Items:      make([]complaintView, 0, len(page.Items)),
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
	}
	for _, c := range page.Items {
		view.Items = append(view.Items, toComplaintView(c))
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SplitComplaint handles POST /complaints/{id}/split.
func (h *ComplaintHandler) SplitComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid complaint id")
		return
	}

	var req models.SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	resp, err := h.service.SplitComplaint(r.Context(), id, &req, actorFrom(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

// MergeComplaints handles POST /complaints/merge.
func (h *ComplaintHandler) MergeComplaints(w http.ResponseWriter, r *http.Request) {
	var req models.MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	resp, err := h.service.MergeComplaints(r.Context(), &req, actorFrom(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// LinkComplaint handles POST /complaints/{id}/link.
func (h *ComplaintHandler) LinkComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid complaint id")
		return
	}

	var req models.LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	if err := h.service.LinkComplaints(r.Context(), id, req.TargetComplaintID, req.Reason, actorFrom(r)); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "complaints linked"})
}

// UnlinkComplaint handles POST /complaints/{id}/unlink.
func (h *ComplaintHandler) UnlinkComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid complaint id")
		return
	}

	var req models.LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	if err := h.service.UnlinkComplaints(r.Context(), id, req.TargetComplaintID, actorFrom(r)); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "complaints unlinked"})
}

// parseListFilter reads the list query parameters. Status, department and
// priority values arrive in the external vocabulary.
func parseListFilter(r *http.Request) (models.ComplaintFilter, error) {
	q := r.URL.Query()
	f := models.ComplaintFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Location: strings.TrimSpace(q.Get("location")),
		Taluka:   strings.TrimSpace(q.Get("taluka")),
		SortBy:   q.Get("sort_by"),
		SortDesc: !strings.EqualFold(q.Get("sort_dir"), "asc"),
	}

	if raw := q.Get("status"); raw != "" {
		for _, label := range strings.Split(raw, ",") {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			if status, ok := service.StatusToInternal(label); ok {
				f.Statuses = append(f.Statuses, status)
			}
		}
	}
	if dept := strings.TrimSpace(q.Get("department")); dept != "" {
		f.Department = service.DepartmentToInternal(dept)
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			f.Page = page
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			f.Limit = limit
		}
	}
	return f, nil
}
