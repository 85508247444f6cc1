package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kidic/internal/database"
	"kidic/internal/models"
)

// NotificationRepository handles database operations for notification rows
type NotificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = "id, parent_id, type, content, is_read, created_at"

// CreateNotification persists a new unread notification for one recipient
func (r *NotificationRepository) CreateNotification(parentID int64, content string, ntype models.NotificationType) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (parent_id, type, content)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, parentID, string(ntype), content)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return &models.Notification{
		ID:        id,
		ParentID:  parentID,
		Type:      ntype,
		Content:   content,
		IsRead:    false,
		CreatedAt: time.Now(),
	}, nil
}

// GetNotificationByID retrieves a notification by ID, returning nil when absent
func (r *NotificationRepository) GetNotificationByID(id int64) (*models.Notification, error) {
	query := "SELECT " + notificationColumns + " FROM notifications WHERE id = ?"
	n := &models.Notification{}
	err := r.db.QueryRow(query, id).Scan(
		&n.ID,
		&n.ParentID,
		&n.Type,
		&n.Content,
		&n.IsRead,
		&n.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// MarkRead flips a notification's read flag to true. The flag is
// monotonic; rows are never flipped back.
func (r *NotificationRepository) MarkRead(id int64) error {
	query := "UPDATE notifications SET is_read = ? WHERE id = ?"
	_, err := r.db.Exec(query, true, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// GetParentNotifications retrieves all notifications for a recipient,
// most recent first
func (r *NotificationRepository) GetParentNotifications(parentID int64) ([]models.Notification, error) {
	query := "SELECT " + notificationColumns + ` FROM notifications
		WHERE parent_id = ?
		ORDER BY created_at DESC, id DESC`
	return r.queryNotifications(query, parentID)
}

// GetUnreadNotifications retrieves a recipient's unread notifications,
// most recent first
func (r *NotificationRepository) GetUnreadNotifications(parentID int64) ([]models.Notification, error) {
	query := "SELECT " + notificationColumns + ` FROM notifications
		WHERE parent_id = ? AND is_read = ?
		ORDER BY created_at DESC, id DESC`
	return r.queryNotifications(query, parentID, false)
}

func (r *NotificationRepository) queryNotifications(query string, args ...interface{}) ([]models.Notification, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID,
			&n.ParentID,
			&n.Type,
			&n.Content,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
