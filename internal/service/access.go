package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
)

// ════════════════════════════════════════════════════════════
// Contrôles d'accès par intervention
// ════════════════════════════════════════════════════════════
//
// Partagés entre services : la même règle doit répondre partout
// à "qui peut voir / agir sur cette intervention ?".

// ErrPermissionDenied l'acteur n'a pas les droits pour cette opération
var ErrPermissionDenied = errors.New("opération non autorisée pour ce rôle")

// canManage vrai si l'acteur gère l'intervention :
// admin (toutes équipes) ou gestionnaire de l'équipe propriétaire.
func canManage(actor *Actor, itv *model.Intervention) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	return actor.Role == model.RoleGestionnaire && actor.TeamID == itv.TeamID
}

// isAssigned vrai si l'utilisateur est rattaché à l'intervention.
func isAssigned(ctx context.Context, repo *repository.Repository, interventionID, userID string) (bool, error) {
	_, err := repo.Assignment.Get(ctx, interventionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// isParty vrai si l'acteur est une partie prenante de l'intervention :
// gestion de l'équipe, demandeur, ou utilisateur rattaché.
// C'est le périmètre des opérations de consultation et d'annulation.
func isParty(ctx context.Context, repo *repository.Repository, actor *Actor, itv *model.Intervention) (bool, error) {
	if canManage(actor, itv) {
		return true, nil
	}
	if itv.RequestedBy == actor.UserID {
		return true, nil
	}
	return isAssigned(ctx, repo, itv.InterventionID, actor.UserID)
}

// participantIDs destinataires de notification d'une intervention :
// demandeur et utilisateurs rattachés, dédupliqués, sans l'acteur courant.
func participantIDs(ctx context.Context, repo *repository.Repository, itv *model.Intervention, exclude string) ([]string, error) {
	seen := map[string]bool{exclude: true}
	var ids []string

	if !seen[itv.RequestedBy] {
		seen[itv.RequestedBy] = true
		ids = append(ids, itv.RequestedBy)
	}

	assignments, err := repo.Assignment.ListByIntervention(ctx, itv.InterventionID)
	if err != nil {
		return ids, err
	}
	for _, a := range assignments {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			ids = append(ids, a.UserID)
		}
	}
	return ids, nil
}

// teamManagerIDs gestionnaires actifs de l'équipe (pour notifier les dépôts).
func teamManagerIDs(ctx context.Context, repo *repository.Repository, teamID string) ([]string, error) {
	users, err := repo.User.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, u := range users {
		if model.IsManagerRole(u.Role) && u.IsActive {
			ids = append(ids, u.UserID)
		}
	}
	return ids, nil
}
