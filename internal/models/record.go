package models

import "time"

// MedicalRecord is a medical entry for a child
type MedicalRecord struct {
	ID          int64     `json:"id"`
	ChildID     int64     `json:"child_id"`
	RecordType  string    `json:"record_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// GrowthRecord is a height/weight measurement for a child
type GrowthRecord struct {
	ID         int64     `json:"id"`
	ChildID    int64     `json:"child_id"`
	HeightCM   float64   `json:"height_cm"`
	WeightKG   float64   `json:"weight_kg"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Meal is a logged meal for a child
type Meal struct {
	ID          int64     `json:"id"`
	ChildID     int64     `json:"child_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MealTime    string    `json:"meal_time"`
	CreatedAt   time.Time `json:"created_at"`
}
