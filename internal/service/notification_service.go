package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"kidic/internal/models"
	"kidic/internal/repository"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationType = errors.New("invalid notification type")
)

// Pusher delivers a payload to a recipient's live connections, if any
type Pusher interface {
	SendToUser(parentID int64, payload interface{})
}

// NotificationStore persists notification rows. Satisfied by
// *repository.NotificationRepository.
type NotificationStore interface {
	CreateNotification(parentID int64, content string, ntype models.NotificationType) (*models.Notification, error)
	GetNotificationByID(id int64) (*models.Notification, error)
	MarkRead(id int64) error
	GetParentNotifications(parentID int64) ([]models.Notification, error)
	GetUnreadNotifications(parentID int64) ([]models.Notification, error)
}

// NotificationService fans notifications out to recipients. Every
// recipient gets their own row so read state never leaks between
// members of the same family.
type NotificationService struct {
	notificationRepo NotificationStore
	parentRepo       *repository.ParentRepository
	familyRepo       *repository.FamilyRepository
	pusher           Pusher
}

// NewNotificationService creates a new notification service. The pusher
// may be nil, in which case notifications are persisted only.
func NewNotificationService(notificationRepo NotificationStore, parentRepo *repository.ParentRepository, familyRepo *repository.FamilyRepository, pusher Pusher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		parentRepo:       parentRepo,
		familyRepo:       familyRepo,
		pusher:           pusher,
	}
}

// NotifyFamily delivers a notification to every current member of a
// family. A failure for one recipient does not stop delivery to the
// rest.
func (s *NotificationService) NotifyFamily(familyID uuid.UUID, content string, ntype models.NotificationType) error {
	if !models.ValidNotificationType(ntype) {
		return ErrInvalidNotificationType
	}

	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return err
	}
	if family == nil {
		return ErrFamilyNotFound
	}

	parents, err := s.familyRepo.GetFamilyParents(familyID)
	if err != nil {
		return fmt.Errorf("failed to resolve family members: %w", err)
	}

	for _, parent := range parents {
		if err := s.deliverOne(parent.ID, content, ntype); err != nil {
			log.Printf("failed to deliver notification to parent %d: %v", parent.ID, err)
		}
	}

	return nil
}

// BroadcastAll delivers a notification to every registered parent
func (s *NotificationService) BroadcastAll(content string, ntype models.NotificationType) error {
	if !models.ValidNotificationType(ntype) {
		return ErrInvalidNotificationType
	}

	parents, err := s.parentRepo.GetAllParents()
	if err != nil {
		return fmt.Errorf("failed to list parents: %w", err)
	}

	for _, parent := range parents {
		if err := s.deliverOne(parent.ID, content, ntype); err != nil {
			log.Printf("failed to deliver notification to parent %d: %v", parent.ID, err)
		}
	}

	return nil
}

// deliverOne persists the recipient's row, then pushes it to their live
// connections. Persist comes first so a push failure never loses the
// notification.
func (s *NotificationService) deliverOne(parentID int64, content string, ntype models.NotificationType) error {
	notification, err := s.notificationRepo.CreateNotification(parentID, content, ntype)
	if err != nil {
		return err
	}

	if s.pusher != nil {
		s.pusher.SendToUser(parentID, notification)
	}

	return nil
}

// MarkRead flips a recipient's notification to read. Marking an
// already-read notification is a no-op; the flag never goes back to
// unread. A row owned by a different recipient looks the same as a
// missing one.
func (s *NotificationService) MarkRead(parentID, notificationID int64) error {
	notification, err := s.notificationRepo.GetNotificationByID(notificationID)
	if err != nil {
		return err
	}
	if notification == nil || notification.ParentID != parentID {
		return ErrNotificationNotFound
	}
	if notification.IsRead {
		return nil
	}
	return s.notificationRepo.MarkRead(notificationID)
}

// ListForRecipient lists all of a recipient's notifications, most
// recent first
func (s *NotificationService) ListForRecipient(parentID int64) ([]models.Notification, error) {
	return s.notificationRepo.GetParentNotifications(parentID)
}

// ListUnread lists a recipient's unread notifications, most recent
// first
func (s *NotificationService) ListUnread(parentID int64) ([]models.Notification, error) {
	return s.notificationRepo.GetUnreadNotifications(parentID)
}
