package workflow

import "fmt"

// Statuts du cycle de vie d'une intervention.
const (
	StatusRequested        = "requested"
	StatusRejected         = "rejected"
	StatusApproved         = "approved"
	StatusQuoteRequested   = "quote_requested"
	StatusPlanning         = "planning"
	StatusScheduled        = "scheduled"
	StatusInProgress       = "in_progress"
	StatusClosedByProvider = "closed_by_provider"
	StatusClosedByTenant   = "closed_by_tenant"
	StatusClosedByManager  = "closed_by_manager"
	StatusCancelled        = "cancelled"
)

// MinCancelReasonLen longueur minimale du motif d'annulation ou de rejet
const MinCancelReasonLen = 10

// transitions graphe des transitions légales.
// "cancelled" est atteignable depuis tout statut non terminal.
var transitions = map[string][]string{
	StatusRequested:        {StatusApproved, StatusRejected, StatusCancelled},
	StatusRejected:         {},
	StatusApproved:         {StatusQuoteRequested, StatusPlanning, StatusCancelled},
	StatusQuoteRequested:   {StatusPlanning, StatusCancelled},
	StatusPlanning:         {StatusScheduled, StatusCancelled},
	StatusScheduled:        {StatusInProgress, StatusCancelled},
	StatusInProgress:       {StatusClosedByProvider, StatusCancelled},
	StatusClosedByProvider: {StatusClosedByTenant, StatusCancelled},
	StatusClosedByTenant:   {StatusClosedByManager, StatusCancelled},
	StatusClosedByManager:  {},
	StatusCancelled:        {},
}

// TransitionError transition illégale entre deux statuts
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition de statut illégale: %s → %s", e.From, e.To)
}

// IsValidStatus vrai si le statut fait partie des 11 valeurs définies
func IsValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal vrai pour les statuts sans transition sortante
func IsTerminal(s string) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition vrai si la transition from → to est légale
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition valide une transition ; retourne *TransitionError si illégale.
// Fonction pure : la persistance du nouveau statut reste à la charge de l'appelant.
func Transition(from, to string) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// Statuses liste des 11 statuts (ordre du cycle de vie nominal)
func Statuses() []string {
	return []string{
		StatusRequested,
		StatusRejected,
		StatusApproved,
		StatusQuoteRequested,
		StatusPlanning,
		StatusScheduled,
		StatusInProgress,
		StatusClosedByProvider,
		StatusClosedByTenant,
		StatusClosedByManager,
		StatusCancelled,
	}
}
