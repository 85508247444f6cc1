package service

import (
	"fmt"
	"log"
	"time"

	"kidic/internal/models"
	"kidic/internal/repository"
)

// RecordService handles a child's medical, growth and meal records.
// Every write notifies the child's family; notification failures are
// logged but never fail the write itself.
type RecordService struct {
	guard         *AccessGuard
	recordRepo    *repository.RecordRepository
	notifications *NotificationService
}

// NewRecordService creates a new record service
func NewRecordService(guard *AccessGuard, recordRepo *repository.RecordRepository, notifications *NotificationService) *RecordService {
	return &RecordService{
		guard:         guard,
		recordRepo:    recordRepo,
		notifications: notifications,
	}
}

// AddMedicalRecord adds a medical entry for a child and notifies the family
func (s *RecordService) AddMedicalRecord(rawToken string, childID int64, recordType, description string) (*models.MedicalRecord, error) {
	child, err := s.guard.AuthorizeChildAccess(rawToken, childID)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepo.CreateMedicalRecord(child.ID, recordType, description)
	if err != nil {
		return nil, err
	}

	s.notifyFamily(child, fmt.Sprintf("new medical record for %s", child.Name), models.NotificationMedical)
	return record, nil
}

// ListMedicalRecords lists a child's medical entries
func (s *RecordService) ListMedicalRecords(rawToken string, childID int64) ([]models.MedicalRecord, error) {
	child, err := s.guard.AuthorizeChildAccess(rawToken, childID)
	if err != nil {
		return nil, err
	}
	return s.recordRepo.GetChildMedicalRecords(child.ID)
}

// AddGrowthRecord adds a growth measurement for a child and notifies the family
func (s *RecordService) AddGrowthRecord(rawToken string, childID int64, heightCM, weightKG float64, recordedAt time.Time) (*models.GrowthRecord, error) {
	child, err := s.guard.AuthorizeChildAccess(rawToken, childID)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepo.CreateGrowthRecord(child.ID, heightCM, weightKG, recordedAt)
	if err != nil {
		return nil, err
	}

	s.notifyFamily(child, fmt.Sprintf("new growth record for %s", child.Name), models.NotificationGrowth)
	return record, nil
}

// ListGrowthRecords lists a child's growth measurements
func (s *RecordService) ListGrowthRecords(rawToken string, childID int64) ([]models.GrowthRecord, error) {
	child, err := s.guard.AuthorizeChildAccess(rawToken, childID)
	if err != nil {
		return nil, err
	}
	return s.recordRepo.GetChildGrowthRecords(child.ID)
}

// AddMeal adds a meal entry for a child and notifies the family
func (s *RecordService) AddMeal(rawToken string, childID int64, name, description, mealTime string) (*models.Meal, error) {
	child, err := s.guard.AuthorizeChildAccess(rawToken, childID)
	if err != nil {
		return nil, err
	}

	meal, err := s.recordRepo.CreateMeal(child.ID, name, description, mealTime)
	if err != nil {
		return nil, err
	}

	s.notifyFamily(child, fmt.Sprintf("new meal logged for %s", child.Name), models.NotificationMeal)
	return meal, nil
}

// ListMeals lists a child's meal entries
func (s *RecordService) ListMeals(rawToken string, childID int64) ([]models.Meal, error) {
	child, err := s.guard.AuthorizeChildAccess(rawToken, childID)
	if err != nil {
		return nil, err
	}
	return s.recordRepo.GetChildMeals(child.ID)
}

func (s *RecordService) notifyFamily(child *models.Child, content string, ntype models.NotificationType) {
	if err := s.notifications.NotifyFamily(child.FamilyID, content, ntype); err != nil {
		log.Printf("failed to notify family %s about %s: %v", child.FamilyID, ntype, err)
	}
}
