package model

// ── Catégories de lot ──

const (
	LotCategoryAppartement = "appartement"
	LotCategoryMaison      = "maison"
	LotCategoryGarage      = "garage"
	LotCategoryLocal       = "local_commercial"
	LotCategoryParking     = "parking"
)

// Lot lot locatif — table lots
type Lot struct {
	LotID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"lot_id"`
	BuildingID string  `gorm:"type:uuid;not null"                              json:"building_id"`
	Reference  string  `gorm:"type:varchar(50);not null"                       json:"reference"`
	Floor      *int    `gorm:"type:smallint"                                   json:"floor,omitempty"`
	Category   string  `gorm:"type:varchar(30);not null;default:'appartement'" json:"category"`
	TenantID   *string `gorm:"type:uuid"                                       json:"tenant_id,omitempty"` // locataire occupant
	BaseModel

	// Associations
	Building *Building `gorm:"foreignKey:BuildingID;references:BuildingID" json:"building,omitempty"`
	Tenant   *User     `gorm:"foreignKey:TenantID;references:UserID"       json:"tenant,omitempty"`
}

// TableName nom de la table
func (Lot) TableName() string { return "lots" }
