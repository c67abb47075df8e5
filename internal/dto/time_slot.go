package dto

// ── Module créneaux ──

// RejectSlotRequest rejet d'un créneau (motif obligatoire)
type RejectSlotRequest struct {
	Reason string `json:"reason" binding:"required,min=1"`
}

// TimeSlotDTO informations créneau
type TimeSlotDTO struct {
	ID                 string            `json:"id"`
	InterventionID     string            `json:"intervention_id"`
	SlotDate           string            `json:"slot_date"`
	StartTime          string            `json:"start_time"`
	EndTime            string            `json:"end_time"`
	Status             string            `json:"status"`
	ProposedBy         string            `json:"proposed_by"`
	SelectedByManager  bool              `json:"selected_by_manager"`
	SelectedByProvider bool              `json:"selected_by_provider"`
	SelectedByTenant   bool              `json:"selected_by_tenant"`
	Responses          []SlotResponseDTO `json:"responses,omitempty"`
}

// SlotResponseDTO position d'un participant
type SlotResponseDTO struct {
	UserID    string `json:"user_id"`
	UserRole  string `json:"user_role"`
	Response  string `json:"response"`
	Notes     string `json:"notes,omitempty"`
	UpdatedAt string `json:"updated_at"`
}
