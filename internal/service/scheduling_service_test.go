package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/workflow"
)

// slotIDs retourne les identifiants des créneaux de l'intervention
func (env *testEnv) slotIDs(t *testing.T, interventionID string) []string {
	t.Helper()
	slots, err := env.schedSvc.ListSlots(context.Background(), interventionID, env.manager)
	if err != nil {
		t.Fatalf("liste des créneaux: %v", err)
	}
	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	return ids
}

func (env *testEnv) slotStatus(t *testing.T, slotID string) string {
	t.Helper()
	slot, err := env.repos.slots.GetByID(context.Background(), slotID)
	if err != nil {
		t.Fatalf("relecture créneau: %v", err)
	}
	return slot.Status
}

// ════════════════════════════════════════════════════════════
// Auto-confirmation
// ════════════════════════════════════════════════════════════

func TestAutoConfirmationQuandToutesLesPartiesAcceptent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)
	winner, loser := ids[0], ids[1]

	// première acceptation : pas encore de prestataire favorable
	if _, err := env.schedSvc.Accept(ctx, winner, env.tenant); err != nil {
		t.Fatalf("acceptation locataire: %v", err)
	}
	if got := env.status(t, id); got != workflow.StatusPlanning {
		t.Fatalf("statut après acceptation partielle = %s, attendu planning", got)
	}

	// seconde acceptation : consensus atteint, finalisation automatique
	if _, err := env.schedSvc.Accept(ctx, winner, env.provider); err != nil {
		t.Fatalf("acceptation prestataire: %v", err)
	}

	if got := env.status(t, id); got != workflow.StatusScheduled {
		t.Errorf("statut = %s, attendu scheduled", got)
	}
	if got := env.slotStatus(t, winner); got != workflow.SlotStatusSelected {
		t.Errorf("créneau retenu = %s, attendu selected", got)
	}
	if got := env.slotStatus(t, loser); got != workflow.SlotStatusRejected {
		t.Errorf("créneau frère = %s, attendu rejected", got)
	}

	itv, _ := env.repos.interventions.GetByID(ctx, id)
	if itv.ScheduledDate == nil {
		t.Fatal("date de rendez-vous absente après finalisation")
	}
	if !env.repos.activity.hasAction(id, model.ActionSlotAutoConfirmed) {
		t.Error("journal: time_slot_auto_confirmed absent")
	}
	if env.repos.activity.hasAction(id, model.ActionSlotChosenByManager) {
		t.Error("journal: time_slot_chosen_by_manager ne doit pas apparaître en auto-confirmation")
	}
}

func TestPasDAutoConfirmationSurRejet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}
	if _, err := env.schedSvc.Reject(ctx, ids[0], &dto.RejectSlotRequest{
		Reason: "Indisponible ce jour-là",
	}, env.provider); err != nil {
		t.Fatalf("rejet: %v", err)
	}

	if got := env.status(t, id); got != workflow.StatusPlanning {
		t.Errorf("statut = %s, attendu planning (pas de consensus)", got)
	}
	if got := env.slotStatus(t, ids[0]); got == workflow.SlotStatusSelected {
		t.Error("le créneau ne doit pas être retenu après un rejet")
	}
}

// Les drapeaux selected_by_* doivent refléter les réponses acceptées
func TestDrapeauxDeSelectionSynchronises(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}

	slot, _ := env.repos.slots.GetByID(ctx, ids[0])
	if !slot.SelectedByTenant {
		t.Error("selected_by_tenant devrait être vrai")
	}
	if slot.SelectedByProvider || slot.SelectedByManager {
		t.Error("les drapeaux prestataire/gestionnaire devraient rester faux")
	}
}

// ════════════════════════════════════════════════════════════
// Choix manuel du gestionnaire
// ════════════════════════════════════════════════════════════

func TestChoixManuelSansAttendreLeConsensus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	// seule une acceptation partielle existe : le gestionnaire tranche
	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}
	slot, err := env.schedSvc.ChooseAsManager(ctx, ids[0], env.manager)
	if err != nil {
		t.Fatalf("choix gestionnaire: %v", err)
	}

	if slot.Status != workflow.SlotStatusSelected {
		t.Errorf("créneau = %s, attendu selected", slot.Status)
	}
	if got := env.status(t, id); got != workflow.StatusScheduled {
		t.Errorf("statut = %s, attendu scheduled", got)
	}
	if !env.repos.activity.hasAction(id, model.ActionSlotChosenByManager) {
		t.Error("journal: time_slot_chosen_by_manager absent")
	}
}

func TestChoixManuelParPrestataireRefuse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if _, err := env.schedSvc.ChooseAsManager(ctx, ids[0], env.provider); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("err = %v, attendu ErrPermissionDenied", err)
	}
}

func TestChoixManuelHorsPlanificationRefuse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	// finalise via le consensus, puis tente un second choix sur le frère
	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}
	if _, err := env.schedSvc.Accept(ctx, ids[0], env.provider); err != nil {
		t.Fatalf("acceptation: %v", err)
	}

	_, err := env.schedSvc.ChooseAsManager(ctx, ids[1], env.manager)
	if !errors.Is(err, ErrTimeSlotResolved) && !errors.Is(err, ErrPlanningClosed) {
		t.Errorf("err = %v, attendu ErrTimeSlotResolved ou ErrPlanningClosed", err)
	}
}

// La finalisation est idempotente : un créneau déjà retenu refuse
// toute nouvelle réponse ou sélection
func TestFinalisationIdempotente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}
	if _, err := env.schedSvc.Accept(ctx, ids[0], env.provider); err != nil {
		t.Fatalf("acceptation: %v", err)
	}

	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); !errors.Is(err, ErrTimeSlotResolved) {
		t.Errorf("accept sur créneau retenu: err = %v, attendu ErrTimeSlotResolved", err)
	}
	if _, err := env.schedSvc.ChooseAsManager(ctx, ids[0], env.manager); !errors.Is(err, ErrTimeSlotResolved) {
		t.Errorf("choix sur créneau retenu: err = %v, attendu ErrTimeSlotResolved", err)
	}
}

// ════════════════════════════════════════════════════════════
// Réponses : retrait, propre créneau, annulation
// ════════════════════════════════════════════════════════════

func TestReponseSurSonPropreCreneauRefusee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	// les créneaux ont été proposés par le gestionnaire
	if _, err := env.schedSvc.Accept(ctx, ids[0], env.manager); !errors.Is(err, ErrOwnSlotResponse) {
		t.Errorf("err = %v, attendu ErrOwnSlotResponse", err)
	}
}

func TestWithdrawRemetLaReponseEnAttente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}
	if _, err := env.schedSvc.Withdraw(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("retrait: %v", err)
	}

	resp, err := env.repos.responses.Get(ctx, ids[0], env.tenant.UserID)
	if err != nil {
		t.Fatalf("relecture réponse: %v", err)
	}
	if resp.Response != workflow.ResponsePending {
		t.Errorf("réponse = %s, attendu pending", resp.Response)
	}

	// le drapeau dérivé doit suivre
	slot, _ := env.repos.slots.GetByID(ctx, ids[0])
	if slot.SelectedByTenant {
		t.Error("selected_by_tenant devrait être redescendu après le retrait")
	}
}

func TestWithdrawSansReponsePrealable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if _, err := env.schedSvc.Withdraw(ctx, ids[0], env.tenant); !errors.Is(err, ErrResponseNotFound) {
		t.Errorf("err = %v, attendu ErrResponseNotFound", err)
	}
}

// L'unicité (créneau, utilisateur) : répondre deux fois écrase la
// réponse précédente au lieu d'en créer une seconde
func TestReponseEcraseLaPrecedente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if _, err := env.schedSvc.Reject(ctx, ids[0], &dto.RejectSlotRequest{Reason: "Conflit d'agenda"}, env.tenant); err != nil {
		t.Fatalf("rejet: %v", err)
	}
	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}

	responses, err := env.repos.responses.ListBySlot(ctx, ids[0])
	if err != nil {
		t.Fatalf("liste des réponses: %v", err)
	}
	count := 0
	for _, r := range responses {
		if r.UserID == env.tenant.UserID {
			count++
			if r.Response != workflow.ResponseAccepted {
				t.Errorf("réponse = %s, attendu accepted", r.Response)
			}
		}
	}
	if count != 1 {
		t.Errorf("réponses du locataire = %d, attendu 1 (upsert)", count)
	}
}

func TestCancelSlotParLeProposeur(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if err := env.schedSvc.CancelSlot(ctx, ids[0], env.manager); err != nil {
		t.Fatalf("annulation du créneau: %v", err)
	}
	if got := env.slotStatus(t, ids[0]); got != workflow.SlotStatusCancelled {
		t.Errorf("créneau = %s, attendu cancelled", got)
	}

	// plus aucune réponse possible sur un créneau annulé
	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); !errors.Is(err, ErrTimeSlotCancelled) {
		t.Errorf("err = %v, attendu ErrTimeSlotCancelled", err)
	}
}

func TestCancelSlotRefuseSurCreneauRetenu(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if _, err := env.schedSvc.Accept(ctx, ids[0], env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}
	if _, err := env.schedSvc.Accept(ctx, ids[0], env.provider); err != nil {
		t.Fatalf("acceptation: %v", err)
	}

	if err := env.schedSvc.CancelSlot(ctx, ids[0], env.manager); !errors.Is(err, ErrTimeSlotResolved) {
		t.Errorf("err = %v, attendu ErrTimeSlotResolved", err)
	}
}

func TestCancelSlotParTiersRefuse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)
	ids := env.slotIDs(t, id)

	if err := env.schedSvc.CancelSlot(ctx, ids[0], env.tenant); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("err = %v, attendu ErrPermissionDenied", err)
	}
}
