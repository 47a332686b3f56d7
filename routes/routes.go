package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"jansunwai/handler"
	"jansunwai/middleware"
	"jansunwai/service"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	complaintService *service.ComplaintService,
	notificationService *service.NotificationService,
	jwtSecret string,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID)

	// Initialize handlers
	complaintHandler := handler.NewComplaintHandler(complaintService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	authMiddleware := middleware.NewAuthMiddleware(jwtSecret)

	// API v1 routes
	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	// Complaint routes (protected - require auth)
	complaints := apiV1.PathPrefix("/complaints").Subrouter()

	// GET /api/v1/complaints - List complaints with filters and pagination
	complaints.Handle("", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.ListComplaints))).Methods("GET")

	// POST /api/v1/complaints - Create a new complaint
	complaints.Handle("", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.CreateComplaint))).Methods("POST")

	// POST /api/v1/complaints/merge - Merge complaints into a primary
	complaints.Handle("/merge", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.MergeComplaints))).Methods("POST")

	// GET /api/v1/complaints/{id} - Get complaint with history, remarks and relations
	complaints.Handle("/{id}", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.GetComplaint))).Methods("GET")

	// PATCH /api/v1/complaints/{id} - Partial update (status, classification, remark)
	complaints.Handle("/{id}", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.UpdateComplaint))).Methods("PATCH")

	// POST /api/v1/complaints/{id}/split - Split a complaint into children
	complaints.Handle("/{id}/split", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.SplitComplaint))).Methods("POST")

	// POST /api/v1/complaints/{id}/link - Link two complaints
	complaints.Handle("/{id}/link", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.LinkComplaint))).Methods("POST")

	// POST /api/v1/complaints/{id}/unlink - Remove a link between two complaints
	complaints.Handle("/{id}/unlink", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.UnlinkComplaint))).Methods("POST")

	// Notification routes
	notifications := apiV1.PathPrefix("/notifications").Subrouter()

	// GET /api/v1/notifications - Role notification feed
	notifications.Handle("", authMiddleware.RequireAuth(http.HandlerFunc(notificationHandler.GetNotifications))).Methods("GET")

	// POST /api/v1/notifications/read - Mark a role's notifications as read
	notifications.Handle("/read", authMiddleware.RequireAuth(http.HandlerFunc(notificationHandler.MarkNotificationsRead))).Methods("POST")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return router
}
