package model

import "time"

// TimeSlot créneau candidat pour une intervention — table time_slots
// Status : pending | requested | selected | rejected | cancelled
// Les trois drapeaux selected_by_* sont un cache dérivé des réponses
// (recalculés par le moteur de consensus, jamais source de vérité)
type TimeSlot struct {
	TimeSlotID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_slot_id"`
	InterventionID     string     `gorm:"type:uuid;not null"                             json:"intervention_id"`
	SlotDate           time.Time  `gorm:"type:date;not null"                             json:"slot_date"`
	StartTime          string     `gorm:"type:time;not null"                             json:"start_time"` // "09:00" ou "09:00:00"
	EndTime            string     `gorm:"type:time;not null"                             json:"end_time"`
	Status             string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ProposedBy         string     `gorm:"type:uuid;not null"                             json:"proposed_by"`
	SelectedByManager  bool       `gorm:"not null;default:false"                         json:"selected_by_manager"`
	SelectedByProvider bool       `gorm:"not null;default:false"                         json:"selected_by_provider"`
	SelectedByTenant   bool       `gorm:"not null;default:false"                         json:"selected_by_tenant"`
	CancelledBy        *string    `gorm:"type:uuid"                                      json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	BaseModel

	// Associations
	Responses []TimeSlotResponse `gorm:"foreignKey:TimeSlotID" json:"responses,omitempty"`
}

// TableName nom de la table
func (TimeSlot) TableName() string { return "time_slots" }

// TimeSlotResponse position d'un participant sur un créneau — table time_slot_responses
// Unicité garantie sur (time_slot_id, user_id) : toujours en upsert
type TimeSlotResponse struct {
	TimeSlotID string    `gorm:"type:uuid;primaryKey"                        json:"time_slot_id"`
	UserID     string    `gorm:"type:uuid;primaryKey"                        json:"user_id"`
	UserRole   string    `gorm:"type:varchar(20);not null"                   json:"user_role"` // gestionnaire | prestataire | locataire
	Response   string    `gorm:"type:varchar(10);not null;default:'pending'" json:"response"`  // pending | accepted | rejected
	Notes      string    `gorm:"type:text"                                   json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"updated_at"`
}

// TableName nom de la table
func (TimeSlotResponse) TableName() string { return "time_slot_responses" }
