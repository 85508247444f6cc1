package repository

import (
	"fmt"
	"time"

	"kidic/internal/database"
	"kidic/internal/models"
)

// RecordRepository handles database operations for a child's medical,
// growth and meal sub-records
type RecordRepository struct {
	db *database.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *database.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// CreateMedicalRecord inserts a medical entry for a child
func (r *RecordRepository) CreateMedicalRecord(childID int64, recordType, description string) (*models.MedicalRecord, error) {
	query := `
		INSERT INTO medical_records (child_id, record_type, description)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, childID, recordType, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}

	return &models.MedicalRecord{
		ID:          id,
		ChildID:     childID,
		RecordType:  recordType,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// GetChildMedicalRecords retrieves a child's medical entries, most recent first
func (r *RecordRepository) GetChildMedicalRecords(childID int64) ([]models.MedicalRecord, error) {
	query := `
		SELECT id, child_id, record_type, description, created_at
		FROM medical_records
		WHERE child_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical records: %w", err)
	}
	defer rows.Close()

	var records []models.MedicalRecord
	for rows.Next() {
		var rec models.MedicalRecord
		if err := rows.Scan(&rec.ID, &rec.ChildID, &rec.RecordType, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan medical record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CreateGrowthRecord inserts a growth measurement for a child
func (r *RecordRepository) CreateGrowthRecord(childID int64, heightCM, weightKG float64, recordedAt time.Time) (*models.GrowthRecord, error) {
	query := `
		INSERT INTO growth_records (child_id, height_cm, weight_kg, recorded_at)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, childID, heightCM, weightKG, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create growth record: %w", err)
	}

	return &models.GrowthRecord{
		ID:         id,
		ChildID:    childID,
		HeightCM:   heightCM,
		WeightKG:   weightKG,
		RecordedAt: recordedAt,
		CreatedAt:  time.Now(),
	}, nil
}

// GetChildGrowthRecords retrieves a child's growth measurements, most recent first
func (r *RecordRepository) GetChildGrowthRecords(childID int64) ([]models.GrowthRecord, error) {
	query := `
		SELECT id, child_id, height_cm, weight_kg, recorded_at, created_at
		FROM growth_records
		WHERE child_id = ?
		ORDER BY recorded_at DESC, id DESC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query growth records: %w", err)
	}
	defer rows.Close()

	var records []models.GrowthRecord
	for rows.Next() {
		var rec models.GrowthRecord
		if err := rows.Scan(&rec.ID, &rec.ChildID, &rec.HeightCM, &rec.WeightKG, &rec.RecordedAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan growth record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CreateMeal inserts a meal entry for a child
func (r *RecordRepository) CreateMeal(childID int64, name, description, mealTime string) (*models.Meal, error) {
	query := `
		INSERT INTO meals (child_id, name, description, meal_time)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, childID, name, description, mealTime)
	if err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	return &models.Meal{
		ID:          id,
		ChildID:     childID,
		Name:        name,
		Description: description,
		MealTime:    mealTime,
		CreatedAt:   time.Now(),
	}, nil
}

// GetChildMeals retrieves a child's meal entries, most recent first
func (r *RecordRepository) GetChildMeals(childID int64) ([]models.Meal, error) {
	query := `
		SELECT id, child_id, name, description, meal_time, created_at
		FROM meals
		WHERE child_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	var meals []models.Meal
	for rows.Next() {
		var meal models.Meal
		if err := rows.Scan(&meal.ID, &meal.ChildID, &meal.Name, &meal.Description, &meal.MealTime, &meal.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}

	return meals, rows.Err()
}
