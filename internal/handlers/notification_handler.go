package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"kidic/internal/models"
	"kidic/internal/service"
	"kidic/internal/utils"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	notificationService *service.NotificationService
	guard               *service.AccessGuard
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService, guard *service.AccessGuard) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		guard:               guard,
	}
}

type sendNotificationRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// notificationType defaults to INFO when the request leaves it empty
func notificationType(s string) models.NotificationType {
	if s == "" {
		return models.NotificationInfo
	}
	return models.NotificationType(s)
}

// SendToFamily delivers a notification to every member of the bearer's
// family
func (h *NotificationHandler) SendToFamily(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	_, familyID, err := h.guard.CurrentFamily(auth.Raw)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req sendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	if err := utils.ValidateNotificationContent(req.Content); err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.notificationService.NotifyFamily(familyID, req.Content, notificationType(req.Type)); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// Broadcast delivers a notification to every registered parent
func (h *NotificationHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	if err := utils.ValidateNotificationContent(req.Content); err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.notificationService.BroadcastAll(req.Content, notificationType(req.Type)); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// List returns the bearer's notifications, most recent first
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	notifications, err := h.notificationService.ListForRecipient(auth.Claims.ParentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

// ListUnread returns the bearer's unread notifications, most recent first
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	notifications, err := h.notificationService.ListUnread(auth.Claims.ParentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

// MarkRead flips one of the bearer's notifications to read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	notificationID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid notification id", "", err)
		return
	}

	if err := h.notificationService.MarkRead(auth.Claims.ParentID, notificationID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
