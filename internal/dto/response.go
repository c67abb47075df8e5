package dto

// ── Module authentification ──

// TokenResponse paire de tokens
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // validité du token d'accès (secondes)
	User         UserResponse `json:"user"`
}

// ── Module utilisateurs ──

// UserResponse informations utilisateur (sans champs sensibles)
type UserResponse struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	Team     *TeamBrief `json:"team,omitempty"`
	Phone    string     `json:"phone,omitempty"`
	IsActive bool       `json:"is_active"`
}

// TeamBrief informations d'équipe abrégées
type TeamBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── Pagination ──

// PaginationRequest paramètres de pagination communs
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage numéro de page (avec défaut)
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize taille de page (avec défaut)
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset calcul de l'offset
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
