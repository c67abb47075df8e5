package service

import (
	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
	"github.com/aumugisha-umu/seido-sub006/pkg/jwt"
	"github.com/aumugisha-umu/seido-sub006/pkg/push"
	"github.com/aumugisha-umu/seido-sub006/pkg/redis"
)

// ════════════════════════════════════════════════════════════
// Agrégat des services métier
// ════════════════════════════════════════════════════════════

// Actor identifie l'utilisateur authentifié qui exécute une opération.
// Les champs proviennent des claims JWT, jamais du corps de la requête.
type Actor struct {
	UserID string
	Role   string
	TeamID string
}

// IsManager indique si l'acteur porte un rôle de gestion (gestionnaire ou admin).
func (a *Actor) IsManager() bool {
	return model.IsManagerRole(a.Role)
}

// Service regroupe tous les services métier de l'application.
type Service struct {
	Auth         AuthService
	User         UserService
	Team         TeamService
	Building     BuildingService
	Lot          LotService
	Intervention InterventionService
	Scheduling   SchedulingService
	Quote        QuoteService
	Notification NotificationService
	Export       ExportService
}

// NewService construit l'agrégat avec toutes les dépendances câblées.
func NewService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, notifier *push.Notifier, logger *zap.Logger) *Service {
	notification := NewNotificationService(repo, notifier, logger)
	dispatcher := NewDispatcher(notification, rdb, logger)

	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Team:         NewTeamService(repo, logger),
		Building:     NewBuildingService(repo, logger),
		Lot:          NewLotService(repo, logger),
		Intervention: NewInterventionService(repo, dispatcher, logger),
		Scheduling:   NewSchedulingService(repo, dispatcher, logger),
		Quote:        NewQuoteService(repo, dispatcher, logger),
		Notification: notification,
		Export:       NewExportService(repo, logger),
	}
}
