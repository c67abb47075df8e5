package model

import "time"

// ── Catégories d'intervention ──

const (
	InterventionTypePlomberie     = "plomberie"
	InterventionTypeElectricite   = "electricite"
	InterventionTypeMenuiserie    = "menuiserie"
	InterventionTypePeinture      = "peinture"
	InterventionTypeChauffage     = "chauffage"
	InterventionTypeClimatisation = "climatisation"
	InterventionTypeSerrurerie    = "serrurerie"
	InterventionTypeVitrerie      = "vitrerie"
	InterventionTypeNettoyage     = "nettoyage"
	InterventionTypeJardinage     = "jardinage"
	InterventionTypeAutre         = "autre"
)

// ── Niveaux d'urgence ──

const (
	UrgencyBasse   = "basse"
	UrgencyNormale = "normale"
	UrgencyHaute   = "haute"
	UrgencyUrgente = "urgente"
)

// ── Modes de planification ──

const (
	SchedulingDirect   = "direct"   // un créneau unique fixé par le gestionnaire
	SchedulingSlots    = "slots"    // plusieurs créneaux proposés aux parties
	SchedulingFlexible = "flexible" // coordination autonome, sans créneaux
)

// MaxProviderGuidanceLen longueur maximale des consignes prestataire
const MaxProviderGuidanceLen = 5000

// Intervention demande de travaux — table interventions
// Status : l'un des 11 statuts du cycle de vie (voir internal/workflow)
type Intervention struct {
	InterventionID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"intervention_id"`
	TeamID             string     `gorm:"type:uuid;not null"                             json:"team_id"`
	LotID              *string    `gorm:"type:uuid"                                      json:"lot_id,omitempty"`
	BuildingID         *string    `gorm:"type:uuid"                                      json:"building_id,omitempty"`
	Title              string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description        string     `gorm:"type:text;not null"                             json:"description"`
	Type               string     `gorm:"type:varchar(30);not null;default:'autre'"      json:"type"`
	Urgency            string     `gorm:"type:varchar(10);not null;default:'normale'"    json:"urgency"`
	Status             string     `gorm:"type:varchar(30);not null;default:'requested'"  json:"status"`
	SchedulingMethod   string     `gorm:"type:varchar(10);not null;default:'slots'"      json:"scheduling_method"`
	RequestedBy        string     `gorm:"type:uuid;not null"                             json:"requested_by"`
	ScheduledDate      *time.Time `json:"scheduled_date,omitempty"`
	EstimatedCost      *float64   `gorm:"type:numeric(12,2)"                             json:"estimated_cost,omitempty"`
	FinalCost          *float64   `gorm:"type:numeric(12,2)"                             json:"final_cost,omitempty"`
	ProviderGuidance   string     `gorm:"type:varchar(5000)"                             json:"provider_guidance,omitempty"`
	ProviderReport     string     `gorm:"type:text"                                      json:"provider_report,omitempty"`
	TenantSatisfaction *int       `gorm:"type:smallint"                                  json:"tenant_satisfaction,omitempty"` // 1-5
	RejectionReason    string     `gorm:"type:text"                                      json:"rejection_reason,omitempty"`
	CancellationReason string     `gorm:"type:text"                                      json:"cancellation_reason,omitempty"`
	CancelledBy        *string    `gorm:"type:uuid"                                      json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	BaseModel

	// Associations
	Lot      *Lot      `gorm:"foreignKey:LotID;references:LotID"                json:"lot,omitempty"`
	Building *Building `gorm:"foreignKey:BuildingID;references:BuildingID"      json:"building,omitempty"`
	Tenant   *User     `gorm:"foreignKey:RequestedBy;references:UserID"         json:"tenant,omitempty"`
	Slots    []TimeSlot `gorm:"foreignKey:InterventionID"                       json:"slots,omitempty"`
}

// TableName nom de la table
func (Intervention) TableName() string { return "interventions" }
