package models

import "time"

// NotificationType classifies a notification for client display and filtering
type NotificationType string

const (
	NotificationMedical     NotificationType = "MEDICAL"
	NotificationEducational NotificationType = "EDUCATIONAL"
	NotificationMeal        NotificationType = "MEAL"
	NotificationGrowth      NotificationType = "GROWTH"
	NotificationGeneral     NotificationType = "GENERAL"
	NotificationUrgent      NotificationType = "URGENT"
	NotificationInfo        NotificationType = "INFO"
)

// ValidNotificationType reports whether t is a known notification type
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationMedical, NotificationEducational, NotificationMeal,
		NotificationGrowth, NotificationGeneral, NotificationUrgent, NotificationInfo:
		return true
	}
	return false
}

// Notification is a single per-recipient notification row. Family-wide
// events are expanded into one row per member at creation time, so the
// read flag stays a single boolean per row.
type Notification struct {
	ID        int64            `json:"id"`
	ParentID  int64            `json:"parent_id"`
	Type      NotificationType `json:"type"`
	Content   string           `json:"content"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
