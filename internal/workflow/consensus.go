package workflow

import "github.com/aumugisha-umu/seido-sub006/internal/model"

// ── Statuts de créneau ──

const (
	SlotStatusPending   = "pending"
	SlotStatusRequested = "requested"
	SlotStatusSelected  = "selected"
	SlotStatusRejected  = "rejected"
	SlotStatusCancelled = "cancelled"
)

// ── Réponses de participant ──

const (
	ResponsePending  = "pending"
	ResponseAccepted = "accepted"
	ResponseRejected = "rejected"
)

// AllResponded vrai si aucune réponse n'est en attente.
// Un ensemble vide compte comme "tous ont répondu" : l'éligibilité
// échouera de toute façon faute d'acceptations.
func AllResponded(responses []model.TimeSlotResponse) bool {
	for _, r := range responses {
		if r.Response == ResponsePending {
			return false
		}
	}
	return true
}

// EligibleForFinalization règle d'éligibilité à la finalisation :
// au moins un locataire ET le prestataire ont accepté.
// Prédicat unique partagé par l'auto-confirmation et le choix manuel
// du gestionnaire, pour éviter toute divergence de règle métier.
func EligibleForFinalization(responses []model.TimeSlotResponse) bool {
	var tenantAccepted, providerAccepted bool
	for _, r := range responses {
		if r.Response != ResponseAccepted {
			continue
		}
		switch r.UserRole {
		case model.RoleLocataire:
			tenantAccepted = true
		case model.RolePrestataire:
			providerAccepted = true
		}
	}
	return tenantAccepted && providerAccepted
}

// EligibleForAutoConfirm condition complète de l'auto-confirmation :
// tous ont répondu ET l'éligibilité de finalisation est atteinte.
// Le statut de l'intervention (planning) est vérifié par l'appelant.
func EligibleForAutoConfirm(responses []model.TimeSlotResponse) bool {
	return AllResponded(responses) && EligibleForFinalization(responses)
}

// SelectionFlags drapeaux dérivés selected_by_* calculés depuis les réponses.
// Les colonnes correspondantes du créneau ne sont qu'un cache de ces valeurs.
func SelectionFlags(responses []model.TimeSlotResponse) (manager, provider, tenant bool) {
	for _, r := range responses {
		if r.Response != ResponseAccepted {
			continue
		}
		switch r.UserRole {
		case model.RoleGestionnaire, model.RoleAdmin:
			manager = true
		case model.RolePrestataire:
			provider = true
		case model.RoleLocataire:
			tenant = true
		}
	}
	return manager, provider, tenant
}
