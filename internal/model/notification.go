package model

import "time"

// ── Types de notification ──

const (
	NotificationInterventionStatus = "intervention_status"
	NotificationSlotProposed       = "time_slot_proposed"
	NotificationSlotConfirmed      = "time_slot_confirmed"
	NotificationQuoteRequested     = "quote_requested"
	NotificationAssignment         = "assignment"
)

// Notification message utilisateur — table notifications
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Type           string    `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string    `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool      `gorm:"not null;default:false"                         json:"is_read"`
	RelatedType    *string   `gorm:"type:varchar(20)"                               json:"related_type,omitempty"` // intervention | time_slot | quote
	RelatedID      *string   `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName nom de la table
func (Notification) TableName() string { return "notifications" }
