package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"kidic/internal/models"
	"kidic/internal/repository"
)

var (
	ErrFamilyNotFound = errors.New("family not found")
	ErrParentNotFound = errors.New("parent not found")
	ErrChildNotFound  = errors.New("child not found")
	ErrAlreadyMember  = errors.New("parent is already a member of this family")
)

// FamilyService handles family membership and the family overview
type FamilyService struct {
	familyRepo *repository.FamilyRepository
	parentRepo *repository.ParentRepository
	childRepo  *repository.ChildRepository
	email      *EmailService

	mu          sync.Mutex
	familyLocks map[uuid.UUID]*sync.Mutex
}

// NewFamilyService creates a new family service
func NewFamilyService(familyRepo *repository.FamilyRepository, parentRepo *repository.ParentRepository, childRepo *repository.ChildRepository, email *EmailService) *FamilyService {
	return &FamilyService{
		familyRepo:  familyRepo,
		parentRepo:  parentRepo,
		childRepo:   childRepo,
		email:       email,
		familyLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// lockFamily serializes membership changes for one family. Entries are
// never evicted; the map is bounded by the number of distinct families
// joined during the process lifetime, a few dozen bytes each.
func (s *FamilyService) lockFamily(familyID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.familyLocks[familyID]
	if !ok {
		lock = &sync.Mutex{}
		s.familyLocks[familyID] = lock
	}
	return lock
}

// CreateFamily allocates a new empty family
func (s *FamilyService) CreateFamily() (*models.Family, error) {
	return s.familyRepo.CreateFamily()
}

// GetFamily retrieves a family, failing when it does not exist
func (s *FamilyService) GetFamily(familyID uuid.UUID) (*models.Family, error) {
	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	return family, nil
}

// GetFamilyParents lists the member parents of a family
func (s *FamilyService) GetFamilyParents(familyID uuid.UUID) ([]models.Parent, error) {
	if _, err := s.GetFamily(familyID); err != nil {
		return nil, err
	}
	return s.familyRepo.GetFamilyParents(familyID)
}

// AddParent makes a parent a member of a family. A parent that is
// already a member gets ErrAlreadyMember; under concurrent joins exactly
// one caller succeeds.
func (s *FamilyService) AddParent(familyID uuid.UUID, parentID int64) error {
	lock := s.lockFamily(familyID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.GetFamily(familyID); err != nil {
		return err
	}

	added, err := s.familyRepo.AddParent(familyID, parentID)
	if err != nil {
		return err
	}
	if !added {
		return ErrAlreadyMember
	}
	return nil
}

// IsChildOfFamily checks whether a child belongs to a family
func (s *FamilyService) IsChildOfFamily(familyID uuid.UUID, childID int64) (bool, error) {
	return s.familyRepo.IsChildOfFamily(familyID, childID)
}

// RemoveChild removes a child from its family. Removing a child that is
// already gone is a no-op.
func (s *FamilyService) RemoveChild(familyID uuid.UUID, childID int64) error {
	if _, err := s.GetFamily(familyID); err != nil {
		return err
	}
	return s.familyRepo.RemoveChild(familyID, childID)
}

// CurrentFamilyOf returns the family a parent currently belongs to, or
// nil when they have none
func (s *FamilyService) CurrentFamilyOf(parentID int64) (*uuid.UUID, error) {
	parent, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrParentNotFound
	}
	return parent.CurrentFamily(), nil
}

// FamilyOverview assembles the family together with its parents and
// children
func (s *FamilyService) FamilyOverview(familyID uuid.UUID) (*models.FamilyOverview, error) {
	family, err := s.GetFamily(familyID)
	if err != nil {
		return nil, err
	}

	parents, err := s.familyRepo.GetFamilyParents(familyID)
	if err != nil {
		return nil, err
	}

	children, err := s.childRepo.GetFamilyChildren(familyID)
	if err != nil {
		return nil, err
	}

	return &models.FamilyOverview{
		Family:   *family,
		Parents:  parents,
		Children: children,
	}, nil
}

// InviteParent emails a join link for the family to the given address
func (s *FamilyService) InviteParent(ctx context.Context, familyID uuid.UUID, toEmail, inviterName string) error {
	if _, err := s.GetFamily(familyID); err != nil {
		return err
	}
	if s.email == nil {
		return fmt.Errorf("email delivery is not configured")
	}
	return s.email.SendFamilyInviteEmail(ctx, toEmail, inviterName, familyID)
}
