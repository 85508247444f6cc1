package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"kidic/internal/service"
)

// ChildHandler handles child record requests
type ChildHandler struct {
	childService *service.ChildService
}

// NewChildHandler creates a new child handler
func NewChildHandler(childService *service.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

type childRequest struct {
	Name         string `json:"name"`
	Gender       string `json:"gender"`
	DateOfBirth  string `json:"date_of_birth"`
	MedicalNotes string `json:"medical_notes"`
}

func parseDateOfBirth(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func childIDFromPath(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// CreateChild adds a child to the bearer's family
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid date_of_birth, expected YYYY-MM-DD", "", err)
		return
	}

	child, err := h.childService.CreateChild(auth.Raw, req.Name, req.Gender, dob, req.MedicalNotes)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, child)
}

// ListChildren lists the children of the bearer's family
func (h *ChildHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	children, err := h.childService.ListChildren(auth.Raw)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, children)
}

// GetChild retrieves one child
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	child, err := h.childService.GetChild(auth.Raw, childID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, child)
}

// UpdateChild updates a child's mutable attributes
func (h *ChildHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid date_of_birth, expected YYYY-MM-DD", "", err)
		return
	}

	child, err := h.childService.UpdateChild(auth.Raw, childID, req.Name, dob, req.MedicalNotes)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, child)
}

// DeleteChild removes a child from its family
func (h *ChildHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	if err := h.childService.DeleteChild(auth.Raw, childID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
