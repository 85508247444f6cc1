package handlers

import (
	"encoding/json"
	"net/http"

	"kidic/internal/service"
)

// FamilyHandler handles family overview and invitation requests
type FamilyHandler struct {
	familyService *service.FamilyService
	guard         *service.AccessGuard
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *service.FamilyService, guard *service.AccessGuard) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
		guard:         guard,
	}
}

// GetFamily returns the bearer's family together with its parents and
// children
func (h *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	_, familyID, err := h.guard.CurrentFamily(auth.Raw)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	overview, err := h.familyService.FamilyOverview(familyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, overview)
}

type inviteRequest struct {
	Email string `json:"email"`
}

// InviteParent emails a join link for the bearer's family
func (h *FamilyHandler) InviteParent(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	parentID, familyID, err := h.guard.CurrentFamily(auth.Raw)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	inviterName := ""
	parents, err := h.familyService.GetFamilyParents(familyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	for _, p := range parents {
		if p.ID == parentID {
			inviterName = p.Name
			break
		}
	}

	if err := h.familyService.InviteParent(r.Context(), familyID, req.Email, inviterName); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "invitation sent"})
}
