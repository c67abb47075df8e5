package dto

// ── Module équipes ──

// CreateTeamRequest création d'une équipe
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateTeamRequest mise à jour d'une équipe
type UpdateTeamRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// TeamResponse informations équipe
type TeamResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
