package model

// ── Rôles applicatifs ──

const (
	RoleAdmin        = "admin"
	RoleGestionnaire = "gestionnaire" // gère les équipes, approuve et planifie
	RolePrestataire  = "prestataire"  // exécute les travaux
	RoleLocataire    = "locataire"    // demande et valide les travaux
)

// IsManagerRole vrai pour les rôles autorisés aux opérations de gestion
func IsManagerRole(role string) bool {
	return role == RoleAdmin || role == RoleGestionnaire
}

// User utilisateur — table users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'locataire'"  json:"role"`
	TeamID       *string `gorm:"type:uuid"                                      json:"team_id,omitempty"` // NULL pour locataires/prestataires hors équipe
	Phone        string  `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// Associations
	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TableName nom de la table
func (User) TableName() string { return "users" }
