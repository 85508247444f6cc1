package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"kidic/internal/models"
	"kidic/internal/repository"
	"kidic/internal/token"
	"kidic/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles registration and login
type AuthService struct {
	parentRepo    *repository.ParentRepository
	familyService *FamilyService
	notifications *NotificationService
	codec         *token.Codec
}

// NewAuthService creates a new auth service
func NewAuthService(parentRepo *repository.ParentRepository, familyService *FamilyService, notifications *NotificationService, codec *token.Codec) *AuthService {
	return &AuthService{
		parentRepo:    parentRepo,
		familyService: familyService,
		notifications: notifications,
		codec:         codec,
	}
}

// SignUpNewFamily registers a parent and creates a fresh family for them
func (s *AuthService) SignUpNewFamily(email, password, name, phone, gender string) (string, *models.Parent, error) {
	parent, err := s.registerParent(email, password, name, phone, gender)
	if err != nil {
		return "", nil, err
	}

	family, err := s.familyService.CreateFamily()
	if err != nil {
		return "", nil, fmt.Errorf("failed to create family: %w", err)
	}

	if err := s.familyService.AddParent(family.ID, parent.ID); err != nil {
		return "", nil, fmt.Errorf("failed to add parent to new family: %w", err)
	}
	parent.FamilyID = uuid.NullUUID{UUID: family.ID, Valid: true}

	signed, err := s.codec.Issue(parent.ID, &family.ID)
	if err != nil {
		return "", nil, err
	}
	return signed, parent, nil
}

// SignUpExistingFamily registers a parent into an existing family.
// Current members are notified about the new joiner before membership
// changes, so the joiner does not receive their own join notification.
func (s *AuthService) SignUpExistingFamily(email, password, name, phone, gender string, familyID uuid.UUID) (string, *models.Parent, error) {
	if _, err := s.familyService.GetFamily(familyID); err != nil {
		return "", nil, err
	}

	parent, err := s.registerParent(email, password, name, phone, gender)
	if err != nil {
		return "", nil, err
	}

	if err := s.notifications.NotifyFamily(familyID, "new parent joined the family!", models.NotificationGeneral); err != nil {
		log.Printf("failed to notify family %s about new member: %v", familyID, err)
	}

	if err := s.familyService.AddParent(familyID, parent.ID); err != nil {
		return "", nil, err
	}
	parent.FamilyID = uuid.NullUUID{UUID: familyID, Valid: true}

	signed, err := s.codec.Issue(parent.ID, &familyID)
	if err != nil {
		return "", nil, err
	}
	return signed, parent, nil
}

// Login authenticates a parent and issues a token reflecting their
// current family membership
func (s *AuthService) Login(email, password string) (string, *models.Parent, error) {
	parent, err := s.parentRepo.GetParentByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if parent == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(password, parent.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(parent.ID, parent.CurrentFamily())
	if err != nil {
		return "", nil, err
	}
	return signed, parent, nil
}

// registerParent validates input and creates the account
func (s *AuthService) registerParent(email, password, name, phone, gender string) (*models.Parent, error) {
	email = strings.TrimSpace(email)
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := utils.ValidateName(name); err != nil {
		return nil, err
	}

	existing, err := s.parentRepo.GetParentByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.parentRepo.CreateParent(email, hash, strings.TrimSpace(name), phone, gender)
}
