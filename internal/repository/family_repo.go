package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kidic/internal/database"
	"kidic/internal/models"
)

// FamilyRepository handles database operations for families and membership
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// CreateFamily allocates a new family with an opaque id and no members
func (r *FamilyRepository) CreateFamily() (*models.Family, error) {
	id := uuid.New()
	query := "INSERT INTO families (id) VALUES (?)"
	if _, err := r.db.Exec(query, id); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	return &models.Family{
		ID:        id,
		CreatedAt: time.Now(),
	}, nil
}

// GetFamilyByID retrieves a family by ID, returning nil when absent
func (r *FamilyRepository) GetFamilyByID(familyID uuid.UUID) (*models.Family, error) {
	query := "SELECT id, created_at FROM families WHERE id = ?"
	family := &models.Family{}
	err := r.db.QueryRow(query, familyID).Scan(&family.ID, &family.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return family, nil
}

// GetFamilyParents retrieves all member parents of a family
func (r *FamilyRepository) GetFamilyParents(familyID uuid.UUID) ([]models.Parent, error) {
	query := "SELECT " + parentColumns + " FROM parents WHERE family_id = ? ORDER BY id ASC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family parents: %w", err)
	}
	defer rows.Close()

	return scanParents(rows)
}

// AddParent sets the parent's family reference, making them a member.
// It returns false when the parent is already a member of that family.
// The membership check and the set happen in one transaction so two
// concurrent joins by the same parent cannot both succeed.
func (r *FamilyRepository) AddParent(familyID uuid.UUID, parentID int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM parents WHERE id = ?", parentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check parent: %w", err)
	}
	if exists == 0 {
		return false, fmt.Errorf("parent %d does not exist", parentID)
	}

	result, err := tx.Exec(`
		UPDATE parents
		SET family_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND (family_id IS NULL OR family_id <> ?)
	`, familyID, parentID, familyID)
	if err != nil {
		return false, fmt.Errorf("failed to add family member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read membership update result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rows > 0, nil
}

// IsChildOfFamily checks whether a child belongs to a family
func (r *FamilyRepository) IsChildOfFamily(familyID uuid.UUID, childID int64) (bool, error) {
	query := "SELECT COUNT(*) FROM children WHERE id = ? AND family_id = ?"
	var count int
	err := r.db.QueryRow(query, childID, familyID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check child membership: %w", err)
	}
	return count > 0, nil
}

// RemoveChild deletes a child from a family's set. Removing a child that
// is not in the set is a no-op.
func (r *FamilyRepository) RemoveChild(familyID uuid.UUID, childID int64) error {
	query := "DELETE FROM children WHERE id = ? AND family_id = ?"
	_, err := r.db.Exec(query, childID, familyID)
	if err != nil {
		return fmt.Errorf("failed to remove child: %w", err)
	}
	return nil
}
