package dto

// CreateUserRequest création d'un utilisateur
type CreateUserRequest struct {
	Name     string  `json:"name"     binding:"required,min=2,max=100"`
	Email    string  `json:"email"    binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Role     string  `json:"role"     binding:"required,oneof=admin gestionnaire prestataire locataire"`
	TeamID   *string `json:"team_id"  binding:"omitempty,uuid"`
	Phone    string  `json:"phone"    binding:"omitempty,max=30"`
}

// UpdateUserRequest mise à jour d'un utilisateur
type UpdateUserRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone"     binding:"omitempty,max=30"`
	IsActive *bool   `json:"is_active"`
}

// AssignRoleRequest réassignation de rôle (admin)
type AssignRoleRequest struct {
	Role   string  `json:"role"    binding:"required,oneof=admin gestionnaire prestataire locataire"`
	TeamID *string `json:"team_id" binding:"omitempty,uuid"`
}

// ResetPasswordRequest réinitialisation de mot de passe par un admin
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserListRequest paramètres de liste des utilisateurs
type UserListRequest struct {
	PaginationRequest
	Role string `form:"role" binding:"omitempty,oneof=admin gestionnaire prestataire locataire"`
}
