package dto

// ── Module devis ──

// SubmitQuoteRequest soumission d'un devis par le prestataire
type SubmitQuoteRequest struct {
	Amount      float64 `json:"amount"      binding:"required,min=0"`
	Description string  `json:"description" binding:"omitempty"`
}

// QuoteResponse informations devis
type QuoteResponse struct {
	ID             string        `json:"id"`
	InterventionID string        `json:"intervention_id"`
	ProviderID     string        `json:"provider_id"`
	Provider       *UserResponse `json:"provider,omitempty"`
	Status         string        `json:"status"`
	Amount         *float64      `json:"amount,omitempty"`
	Description    string        `json:"description,omitempty"`
	CreatedAt      string        `json:"created_at"`
}
