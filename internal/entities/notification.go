package entities

import "time"

type NotificationType string

const (
	NotificationTypeBorrowing NotificationType = "borrowing"
	NotificationTypeOverdue   NotificationType = "overdue"
	NotificationTypeSystem    NotificationType = "system"
)

// Notification is an inbox entry delivered to a user.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"index;not null" json:"user_id"`
	EventID   string           `gorm:"uniqueIndex;size:36" json:"event_id"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"size:20;not null" json:"type"`
	Metadata  string           `gorm:"type:text" json:"metadata,omitempty"` // JSON payload of the lifecycle event
	IsRead    bool             `gorm:"index;not null;default:false" json:"is_read"`
	CreatedAt time.Time        `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
