package dto

// ── Module immeubles ──

// CreateBuildingRequest création d'un immeuble
type CreateBuildingRequest struct {
	Name       string `json:"name"        binding:"required,min=2,max=100"`
	Address    string `json:"address"     binding:"required,max=255"`
	PostalCode string `json:"postal_code" binding:"omitempty,max=10"`
	City       string `json:"city"        binding:"omitempty,max=100"`
}

// UpdateBuildingRequest mise à jour d'un immeuble
type UpdateBuildingRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Address    *string `json:"address"     binding:"omitempty,max=255"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=10"`
	City       *string `json:"city"        binding:"omitempty,max=100"`
}

// BuildingResponse informations immeuble
type BuildingResponse struct {
	ID         string        `json:"id"`
	TeamID     string        `json:"team_id"`
	Name       string        `json:"name"`
	Address    string        `json:"address"`
	PostalCode string        `json:"postal_code,omitempty"`
	City       string        `json:"city,omitempty"`
	Lots       []LotResponse `json:"lots,omitempty"`
	CreatedAt  string        `json:"created_at"`
}

// ── Module lots ──

// CreateLotRequest création d'un lot
type CreateLotRequest struct {
	BuildingID string  `json:"building_id" binding:"required,uuid"`
	Reference  string  `json:"reference"   binding:"required,max=50"`
	Floor      *int    `json:"floor"`
	Category   string  `json:"category"    binding:"omitempty,oneof=appartement maison garage local_commercial parking"`
	TenantID   *string `json:"tenant_id"   binding:"omitempty,uuid"`
}

// UpdateLotRequest mise à jour d'un lot
type UpdateLotRequest struct {
	Reference *string `json:"reference" binding:"omitempty,max=50"`
	Floor     *int    `json:"floor"`
	Category  *string `json:"category"  binding:"omitempty,oneof=appartement maison garage local_commercial parking"`
	TenantID  *string `json:"tenant_id" binding:"omitempty,uuid"`
}

// LotResponse informations lot
type LotResponse struct {
	ID         string         `json:"id"`
	BuildingID string         `json:"building_id"`
	Reference  string         `json:"reference"`
	Floor      *int           `json:"floor,omitempty"`
	Category   string         `json:"category"`
	TenantID   *string        `json:"tenant_id,omitempty"`
	Tenant     *UserResponse  `json:"tenant,omitempty"`
	Building   *BuildingBrief `json:"building,omitempty"`
}

// BuildingBrief informations immeuble abrégées
type BuildingBrief struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
