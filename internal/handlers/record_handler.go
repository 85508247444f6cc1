package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"kidic/internal/service"
)

// RecordHandler handles a child's medical, growth and meal record requests
type RecordHandler struct {
	recordService *service.RecordService
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

type medicalRecordRequest struct {
	RecordType  string `json:"record_type"`
	Description string `json:"description"`
}

// AddMedicalRecord adds a medical entry for a child
func (h *RecordHandler) AddMedicalRecord(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	var req medicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	record, err := h.recordService.AddMedicalRecord(auth.Raw, childID, req.RecordType, req.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// ListMedicalRecords lists a child's medical entries
func (h *RecordHandler) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	records, err := h.recordService.ListMedicalRecords(auth.Raw, childID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

type growthRecordRequest struct {
	HeightCM   float64 `json:"height_cm"`
	WeightKG   float64 `json:"weight_kg"`
	RecordedAt string  `json:"recorded_at"`
}

// AddGrowthRecord adds a growth measurement for a child
func (h *RecordHandler) AddGrowthRecord(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	var req growthRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	recordedAt := time.Now()
	if req.RecordedAt != "" {
		recordedAt, err = time.Parse("2006-01-02", req.RecordedAt)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid recorded_at, expected YYYY-MM-DD", "", err)
			return
		}
	}

	record, err := h.recordService.AddGrowthRecord(auth.Raw, childID, req.HeightCM, req.WeightKG, recordedAt)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// ListGrowthRecords lists a child's growth measurements
func (h *RecordHandler) ListGrowthRecords(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	records, err := h.recordService.ListGrowthRecords(auth.Raw, childID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

type mealRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MealTime    string `json:"meal_time"`
}

// AddMeal adds a meal entry for a child
func (h *RecordHandler) AddMeal(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	var req mealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	meal, err := h.recordService.AddMeal(auth.Raw, childID, req.Name, req.Description, req.MealTime)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, meal)
}

// ListMeals lists a child's meal entries
func (h *RecordHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	auth := GetAuth(r.Context())

	childID, err := childIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid child id", "", err)
		return
	}

	meals, err := h.recordService.ListMeals(auth.Raw, childID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, meals)
}
