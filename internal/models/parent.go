package models

import (
	"time"

	"github.com/google/uuid"
)

// Parent represents a parent account in the system
type Parent struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Gender       string        `json:"gender"`
	FamilyID     uuid.NullUUID `json:"family_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CurrentFamily returns the parent's family id, or nil when the parent
// has not joined a family
func (p *Parent) CurrentFamily() *uuid.UUID {
	if !p.FamilyID.Valid {
		return nil
	}
	id := p.FamilyID.UUID
	return &id
}
