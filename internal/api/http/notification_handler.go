package http

import (
	"net/http"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/service"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// PendingRequests returns how many pending join requests are waiting on
// carpools the caller owns that have not yet departed. Polled by the UI.
func (h *NotificationHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	count, err := h.notificationSvc.PendingRequestCount(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"pending_requests": count})
}

// MyUpdates returns the caller's join requests with unseen status changes.
func (h *NotificationHandler) MyUpdates(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	updates, err := h.notificationSvc.UnseenUpdates(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if updates == nil {
		updates = []domain.StatusUpdate{}
	}
	writeJSON(w, http.StatusOK, updates)
}

func (h *NotificationHandler) MarkUpdatesViewed(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.notificationSvc.MarkUpdatesViewed(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "notifications marked as viewed"})
}
