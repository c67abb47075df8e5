package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/pkg/redis"
)

// ════════════════════════════════════════════════════════════
// Événements post-commit
// ════════════════════════════════════════════════════════════
//
// Les effets de bord (notifications, invalidation de cache) sont émis
// APRÈS la persistance de la transition. Un échec de diffusion ne
// remet jamais en cause l'opération métier : on journalise et on continue.

// Event décrit un effet de bord à diffuser après une opération réussie.
type Event struct {
	Type        string
	Title       string
	Content     string
	Recipients  []string
	TeamID      string
	RelatedType string
	RelatedID   string
}

// Dispatcher diffuse les événements en best-effort.
type Dispatcher struct {
	notifications NotificationService
	rdb           *redis.Client
	logger        *zap.Logger
}

func NewDispatcher(notifications NotificationService, rdb *redis.Client, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		rdb:           rdb,
		logger:        logger,
	}
}

// Dispatch notifie chaque destinataire puis invalide les vues en cache.
// Aucune erreur n'est remontée à l'appelant.
func (d *Dispatcher) Dispatch(ctx context.Context, events []Event) {
	if d == nil {
		return
	}
	for _, ev := range events {
		if len(ev.Recipients) > 0 {
			if err := d.notifications.Notify(ctx, ev.Recipients, ev.Type, ev.Title, ev.Content, ev.RelatedType, ev.RelatedID); err != nil {
				d.logger.Warn("échec de diffusion de notification",
					zap.String("type", ev.Type),
					zap.String("related_id", ev.RelatedID),
					zap.Error(err))
			}
		}
		if d.rdb != nil && ev.TeamID != "" {
			if err := d.rdb.InvalidateInterventionViews(ctx, ev.TeamID, ev.RelatedID); err != nil {
				d.logger.Warn("échec d'invalidation du cache de vues",
					zap.String("team_id", ev.TeamID),
					zap.Error(err))
			}
		}
	}
}
