package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kidic/internal/database"
	"kidic/internal/models"
)

// ChildRepository handles database operations for child records
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

const childColumns = "id, family_id, name, gender, date_of_birth, medical_notes, created_at, updated_at"

// CreateChild inserts a new child record owned by a family. The owning
// family is immutable once set.
func (r *ChildRepository) CreateChild(familyID uuid.UUID, name, gender string, dateOfBirth time.Time, medicalNotes string) (*models.Child, error) {
	query := `
		INSERT INTO children (family_id, name, gender, date_of_birth, medical_notes)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, familyID, name, gender, dateOfBirth, medicalNotes)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return &models.Child{
		ID:           id,
		FamilyID:     familyID,
		Name:         name,
		Gender:       gender,
		DateOfBirth:  dateOfBirth,
		MedicalNotes: medicalNotes,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetChildByID retrieves a child by ID, returning nil when absent
func (r *ChildRepository) GetChildByID(id int64) (*models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE id = ?"
	child := &models.Child{}
	err := r.db.QueryRow(query, id).Scan(
		&child.ID,
		&child.FamilyID,
		&child.Name,
		&child.Gender,
		&child.DateOfBirth,
		&child.MedicalNotes,
		&child.CreatedAt,
		&child.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}

	return child, nil
}

// GetFamilyChildren retrieves all children owned by a family
func (r *ChildRepository) GetFamilyChildren(familyID uuid.UUID) ([]models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE family_id = ? ORDER BY id ASC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var child models.Child
		if err := rows.Scan(
			&child.ID,
			&child.FamilyID,
			&child.Name,
			&child.Gender,
			&child.DateOfBirth,
			&child.MedicalNotes,
			&child.CreatedAt,
			&child.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, child)
	}

	return children, rows.Err()
}

// UpdateChild updates a child's mutable attributes. The owning family is
// never touched.
func (r *ChildRepository) UpdateChild(id int64, name string, dateOfBirth time.Time, medicalNotes string) error {
	query := `
		UPDATE children
		SET name = ?, date_of_birth = ?, medical_notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, dateOfBirth, medicalNotes, id)
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}
