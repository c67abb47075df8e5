package model

// ── Statuts de devis ──

const (
	QuoteStatusPending   = "pending" // demandé, pas encore transmis au prestataire
	QuoteStatusSent      = "sent"    // transmis, en attente de soumission
	QuoteStatusAccepted  = "accepted"
	QuoteStatusRejected  = "rejected"
	QuoteStatusCancelled = "cancelled"
)

// Quote devis prestataire — table quotes
type Quote struct {
	QuoteID        string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"quote_id"`
	InterventionID string   `gorm:"type:uuid;not null"                             json:"intervention_id"`
	ProviderID     string   `gorm:"type:uuid;not null"                             json:"provider_id"`
	Status         string   `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Amount         *float64 `gorm:"type:numeric(12,2)"                             json:"amount,omitempty"`
	Description    string   `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel

	// Associations
	Provider *User `gorm:"foreignKey:ProviderID;references:UserID" json:"provider,omitempty"`
}

// TableName nom de la table
func (Quote) TableName() string { return "quotes" }

// IsActiveQuoteStatus vrai si le devis est encore en attente de résolution
func IsActiveQuoteStatus(status string) bool {
	return status == QuoteStatusPending || status == QuoteStatusSent
}
