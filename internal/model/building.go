package model

// Building immeuble — table buildings
type Building struct {
	BuildingID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"building_id"`
	TeamID     string `gorm:"type:uuid;not null"                             json:"team_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Address    string `gorm:"type:varchar(255);not null"                     json:"address"`
	PostalCode string `gorm:"type:varchar(10)"                               json:"postal_code,omitempty"`
	City       string `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	BaseModel

	// Associations
	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
	Lots []Lot `gorm:"foreignKey:BuildingID"               json:"lots,omitempty"`
}

// TableName nom de la table
func (Building) TableName() string { return "buildings" }
