package service

import (
	"time"

	"kidic/internal/models"
	"kidic/internal/repository"
	"kidic/internal/utils"
)

// ChildService handles child records, with every operation authorized
// through the access guard
type ChildService struct {
	guard         *AccessGuard
	childRepo     *repository.ChildRepository
	familyService *FamilyService
}

// NewChildService creates a new child service
func NewChildService(guard *AccessGuard, childRepo *repository.ChildRepository, familyService *FamilyService) *ChildService {
	return &ChildService{
		guard:         guard,
		childRepo:     childRepo,
		familyService: familyService,
	}
}

// CreateChild adds a child to the bearer's current family
func (s *ChildService) CreateChild(rawToken, name, gender string, dateOfBirth time.Time, medicalNotes string) (*models.Child, error) {
	_, familyID, err := s.guard.CurrentFamily(rawToken)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateName(name); err != nil {
		return nil, err
	}

	return s.childRepo.CreateChild(familyID, name, gender, dateOfBirth, medicalNotes)
}

// GetChild retrieves a child the bearer is authorized to see
func (s *ChildService) GetChild(rawToken string, childID int64) (*models.Child, error) {
	return s.guard.AuthorizeChildAccess(rawToken, childID)
}

// ListChildren lists the children of the bearer's current family
func (s *ChildService) ListChildren(rawToken string) ([]models.Child, error) {
	_, familyID, err := s.guard.CurrentFamily(rawToken)
	if err != nil {
		return nil, err
	}
	return s.childRepo.GetFamilyChildren(familyID)
}

// UpdateChild updates a child's mutable attributes. The owning family
// cannot change.
func (s *ChildService) UpdateChild(rawToken string, childID int64, name string, dateOfBirth time.Time, medicalNotes string) (*models.Child, error) {
	child, err := s.guard.AuthorizeChildAccess(rawToken, childID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateName(name); err != nil {
		return nil, err
	}

	if err := s.childRepo.UpdateChild(child.ID, name, dateOfBirth, medicalNotes); err != nil {
		return nil, err
	}

	return s.childRepo.GetChildByID(child.ID)
}

// DeleteChild removes a child from its family
func (s *ChildService) DeleteChild(rawToken string, childID int64) error {
	child, err := s.guard.AuthorizeChildAccess(rawToken, childID)
	if err != nil {
		return err
	}
	return s.familyService.RemoveChild(child.FamilyID, child.ID)
}
