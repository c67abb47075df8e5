package dto

// ── Module interventions : requêtes du cycle de vie ──

// CreateInterventionRequest dépôt d'une demande d'intervention
type CreateInterventionRequest struct {
	Title       string  `json:"title"       binding:"required,min=3,max=200"`
	Description string  `json:"description" binding:"required"`
	Type        string  `json:"type"        binding:"required,oneof=plomberie electricite menuiserie peinture chauffage climatisation serrurerie vitrerie nettoyage jardinage autre"`
	Urgency     string  `json:"urgency"     binding:"omitempty,oneof=basse normale haute urgente"`
	LotID       *string `json:"lot_id"      binding:"omitempty,uuid"`
	BuildingID  *string `json:"building_id" binding:"omitempty,uuid"`
	// TenantID renseigné quand un gestionnaire dépose pour le compte d'un locataire
	TenantID *string `json:"tenant_id" binding:"omitempty,uuid"`
}

// RejectInterventionRequest rejet d'une demande (motif obligatoire)
type RejectInterventionRequest struct {
	Reason string `json:"reason" binding:"required,min=10"`
}

// CancelInterventionRequest annulation (motif obligatoire ≥10 caractères)
type CancelInterventionRequest struct {
	Reason string `json:"reason" binding:"required,min=10"`
}

// RequestQuoteRequest demande de devis aux prestataires rattachés
type RequestQuoteRequest struct {
	ProviderIDs []string `json:"provider_ids" binding:"omitempty,dive,uuid"`
	Deadline    *string  `json:"deadline"     binding:"omitempty"`
}

// SlotInput créneau candidat à la programmation
type SlotInput struct {
	SlotDate  string `json:"slot_date"  binding:"required"` // "2026-03-14"
	StartTime string `json:"start_time" binding:"required"` // "09:00"
	EndTime   string `json:"end_time"   binding:"required"`
}

// ProgramInterventionRequest programmation des créneaux
// Mode direct : exactement un créneau ; propose : plusieurs ; organize : aucun
type ProgramInterventionRequest struct {
	Mode             string      `json:"mode"              binding:"required,oneof=direct propose organize"`
	Slots            []SlotInput `json:"slots"             binding:"omitempty,dive"`
	ProviderGuidance string      `json:"provider_guidance" binding:"omitempty,max=5000"`
}

// CompleteInterventionRequest clôture par le prestataire (rapport facultatif)
type CompleteInterventionRequest struct {
	Report string `json:"report" binding:"omitempty"`
}

// ValidateInterventionRequest validation par le locataire (satisfaction 1-5 facultative)
type ValidateInterventionRequest struct {
	Satisfaction *int   `json:"satisfaction" binding:"omitempty,min=1,max=5"`
	Comment      string `json:"comment"      binding:"omitempty"`
}

// FinalizeInterventionRequest finalisation gestionnaire (coût final ≥0 facultatif)
type FinalizeInterventionRequest struct {
	FinalCost *float64 `json:"final_cost" binding:"omitempty,min=0"`
}

// AssignUserRequest rattachement d'un utilisateur à l'intervention
type AssignUserRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role"    binding:"required,oneof=prestataire locataire"`
}

// InterventionListRequest paramètres de liste
type InterventionListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty"`
	LotID  string `form:"lot_id" binding:"omitempty,uuid"`
}

// ── Réponses ──

// InterventionResponse informations intervention
type InterventionResponse struct {
	ID                 string         `json:"id"`
	TeamID             string         `json:"team_id"`
	LotID              *string        `json:"lot_id,omitempty"`
	BuildingID         *string        `json:"building_id,omitempty"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Type               string         `json:"type"`
	Urgency            string         `json:"urgency"`
	Status             string         `json:"status"`
	SchedulingMethod   string         `json:"scheduling_method"`
	RequestedBy        string         `json:"requested_by"`
	ScheduledDate      *string        `json:"scheduled_date,omitempty"`
	EstimatedCost      *float64       `json:"estimated_cost,omitempty"`
	FinalCost          *float64       `json:"final_cost,omitempty"`
	ProviderGuidance   string         `json:"provider_guidance,omitempty"`
	ProviderReport     string         `json:"provider_report,omitempty"`
	TenantSatisfaction *int           `json:"tenant_satisfaction,omitempty"`
	RejectionReason    string         `json:"rejection_reason,omitempty"`
	CancellationReason string         `json:"cancellation_reason,omitempty"`
	Lot                *LotResponse   `json:"lot,omitempty"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
}

// AssignmentResponse rattachement utilisateur/intervention
type AssignmentResponse struct {
	UserID string        `json:"user_id"`
	Role   string        `json:"role"`
	User   *UserResponse `json:"user,omitempty"`
}

// ActivityLogResponse entrée du journal d'activité
type ActivityLogResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt string                 `json:"created_at"`
}
