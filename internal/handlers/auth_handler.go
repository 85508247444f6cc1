package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"kidic/internal/models"
	"kidic/internal/service"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	FamilyID string `json:"family_id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string         `json:"token"`
	Parent *models.Parent `json:"parent"`
}

// RegisterNewFamily creates a parent account together with a fresh family
func (h *AuthHandler) RegisterNewFamily(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	signed, parent, err := h.authService.SignUpNewFamily(req.Email, req.Password, req.Name, req.Phone, req.Gender)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Token: signed, Parent: parent})
}

// RegisterJoinFamily creates a parent account inside an existing family
func (h *AuthHandler) RegisterJoinFamily(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	familyID, err := uuid.Parse(req.FamilyID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid family id", "", err)
		return
	}

	signed, parent, err := h.authService.SignUpExistingFamily(req.Email, req.Password, req.Name, req.Phone, req.Gender, familyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Token: signed, Parent: parent})
}

// Login authenticates a parent and returns a fresh token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	signed, parent, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: signed, Parent: parent})
}
