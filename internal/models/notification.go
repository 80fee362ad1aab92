package model

import "time"

// Notification is a downstream projection of a lifecycle event. It is
// advisory only; the job, bid and progress-update rows stay authoritative.
type Notification struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	UserID    string         `gorm:"size:36;index;not null" json:"user_id"`
	EventType string         `gorm:"type:varchar(40);not null" json:"event_type"`
	Payload   map[string]any `gorm:"serializer:json" json:"payload"`
	Read      bool           `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `gorm:"index" json:"expires_at"`
}
