package model

import "time"

// InterventionAssignment rattachement d'un utilisateur à une intervention
// — table intervention_assignments
// Indépendant de l'appartenance d'équipe ; consommé par le moteur de
// consensus pour l'éligibilité aux réponses de créneaux
type InterventionAssignment struct {
	InterventionID string    `gorm:"type:uuid;primaryKey"               json:"intervention_id"`
	UserID         string    `gorm:"type:uuid;primaryKey"               json:"user_id"`
	Role           string    `gorm:"type:varchar(20);not null"          json:"role"` // prestataire | locataire
	AssignedBy     *string   `gorm:"type:uuid"                          json:"assigned_by,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName nom de la table
func (InterventionAssignment) TableName() string { return "intervention_assignments" }
