package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kidic/internal/database"
	"kidic/internal/models"
)

// ParentRepository handles database operations for parent accounts
type ParentRepository struct {
	db *database.DB
}

// NewParentRepository creates a new parent repository
func NewParentRepository(db *database.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

const parentColumns = "id, email, password_hash, name, phone, gender, family_id, created_at, updated_at"

// CreateParent inserts a new parent account with no family membership
func (r *ParentRepository) CreateParent(email, passwordHash, name, phone, gender string) (*models.Parent, error) {
	query := `
		INSERT INTO parents (email, password_hash, name, phone, gender)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name, phone, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to create parent: %w", err)
	}

	return &models.Parent{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Phone:        phone,
		Gender:       gender,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetParentByEmail retrieves a parent by email address
func (r *ParentRepository) GetParentByEmail(email string) (*models.Parent, error) {
	query := "SELECT " + parentColumns + " FROM parents WHERE email = ?"
	return r.scanParent(r.db.QueryRow(query, email))
}

// GetParentByID retrieves a parent by ID
func (r *ParentRepository) GetParentByID(id int64) (*models.Parent, error) {
	query := "SELECT " + parentColumns + " FROM parents WHERE id = ?"
	return r.scanParent(r.db.QueryRow(query, id))
}

// GetAllParents retrieves every parent account in the system
func (r *ParentRepository) GetAllParents() ([]models.Parent, error) {
	query := "SELECT " + parentColumns + " FROM parents ORDER BY id ASC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query parents: %w", err)
	}
	defer rows.Close()

	return scanParents(rows)
}

// UpdateParent updates a parent's profile attributes
func (r *ParentRepository) UpdateParent(id int64, name, phone, gender string) error {
	query := `
		UPDATE parents
		SET name = ?, phone = ?, gender = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, phone, gender, id)
	if err != nil {
		return fmt.Errorf("failed to update parent: %w", err)
	}
	return nil
}

// scanParent scans a single parent row, returning nil when absent
func (r *ParentRepository) scanParent(row *sql.Row) (*models.Parent, error) {
	parent := &models.Parent{}
	err := row.Scan(
		&parent.ID,
		&parent.Email,
		&parent.PasswordHash,
		&parent.Name,
		&parent.Phone,
		&parent.Gender,
		&parent.FamilyID,
		&parent.CreatedAt,
		&parent.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}

	return parent, nil
}

// scanParents collects parent rows into a slice
func scanParents(rows *sql.Rows) ([]models.Parent, error) {
	var parents []models.Parent
	for rows.Next() {
		var parent models.Parent
		if err := rows.Scan(
			&parent.ID,
			&parent.Email,
			&parent.PasswordHash,
			&parent.Name,
			&parent.Phone,
			&parent.Gender,
			&parent.FamilyID,
			&parent.CreatedAt,
			&parent.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan parent: %w", err)
		}
		parents = append(parents, parent)
	}

	return parents, rows.Err()
}
