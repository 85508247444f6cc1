package models

import (
	"time"

	"github.com/google/uuid"
)

// Family is the access-control scoping unit grouping parents and children.
// Its id is an opaque 128-bit identifier so family ids cannot be enumerated.
type Family struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// FamilyOverview combines a family with its members and children
type FamilyOverview struct {
	Family   Family   `json:"family"`
	Parents  []Parent `json:"parents"`
	Children []Child  `json:"children"`
}
