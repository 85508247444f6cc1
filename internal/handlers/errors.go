package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kidic/internal/service"
	"kidic/internal/utils"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

// handleServiceError maps service errors to HTTP responses. Denials are
// always the same 403 regardless of cause.
func handleServiceError(w http.ResponseWriter, err error) {
	var vErr utils.ValidationError
	switch {
	case errors.Is(err, service.ErrDenied):
		respondWithError(w, http.StatusForbidden, "not authorized", "", nil)
	case errors.Is(err, service.ErrFamilyNotFound),
		errors.Is(err, service.ErrChildNotFound),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, err.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidNotificationType):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error", "unhandled service error", err)
	}
}
