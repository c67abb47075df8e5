package model

// Team équipe de gestion — table teams
type Team struct {
	TeamID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name   string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel
}

// TableName nom de la table
func (Team) TableName() string { return "teams" }
