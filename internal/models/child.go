package models

import (
	"time"

	"github.com/google/uuid"
)

// Child represents a child record. The owning family is set at creation
// and never reassigned.
type Child struct {
	ID           int64     `json:"id"`
	FamilyID     uuid.UUID `json:"family_id"`
	Name         string    `json:"name"`
	Gender       string    `json:"gender"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	MedicalNotes string    `json:"medical_notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
