package model

import "time"

// ── Actions du journal d'activité ──

const (
	ActionInterventionCreated   = "intervention_created"
	ActionInterventionApproved  = "intervention_approved"
	ActionInterventionRejected  = "intervention_rejected"
	ActionQuoteRequested        = "quote_requested"
	ActionQuoteSubmitted        = "quote_submitted"
	ActionQuoteAccepted         = "quote_accepted"
	ActionQuoteRejected         = "quote_rejected"
	ActionPlanningStarted       = "planning_started"
	ActionInterventionProgram   = "intervention_programmed"
	ActionSlotChosenByManager   = "time_slot_chosen_by_manager"
	ActionSlotAutoConfirmed     = "time_slot_auto_confirmed"
	ActionSlotAccepted          = "time_slot_accepted"
	ActionSlotRejected          = "time_slot_rejected"
	ActionSlotWithdrawn         = "time_slot_response_withdrawn"
	ActionSlotCancelled         = "time_slot_cancelled"
	ActionInterventionStarted   = "intervention_started"
	ActionCompletedByProvider   = "intervention_completed_by_provider"
	ActionValidatedByTenant     = "intervention_validated_by_tenant"
	ActionFinalizedByManager    = "intervention_finalized_by_manager"
	ActionInterventionCancelled = "intervention_cancelled"
	ActionUserAssigned          = "user_assigned"
	ActionUserUnassigned        = "user_unassigned"
)

// ActivityLog entrée du journal d'activité — table activity_logs
// Append-only : jamais mise à jour ni supprimée
type ActivityLog struct {
	ActivityLogID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_log_id"`
	InterventionID string    `gorm:"type:uuid;not null"                             json:"intervention_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Action         string    `gorm:"type:varchar(50);not null"                      json:"action"`
	Details        JSONMap   `gorm:"type:jsonb"                                     json:"details,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName nom de la table
func (ActivityLog) TableName() string { return "activity_logs" }
