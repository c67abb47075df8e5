package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/workflow"
)

// ════════════════════════════════════════════════════════════
// Environnement de test partagé
// ════════════════════════════════════════════════════════════

type testEnv struct {
	repos      *testRepos
	itvSvc     InterventionService
	schedSvc   SchedulingService
	quoteSvc   QuoteService
	manager    *Actor
	tenant     *Actor
	provider   *Actor
	teamID     string
	lotID      string
	buildingID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	repos := newTestRepos()
	logger := zap.NewNop()

	team := &model.Team{Name: "Agence Bruxelles"}
	if err := repos.teams.Create(ctx, team); err != nil {
		t.Fatalf("création équipe: %v", err)
	}

	manager := &model.User{Name: "Gaëlle", Email: "gaelle@seido.test", Role: model.RoleGestionnaire, TeamID: &team.TeamID, IsActive: true}
	tenant := &model.User{Name: "Louis", Email: "louis@seido.test", Role: model.RoleLocataire, IsActive: true}
	provider := &model.User{Name: "Pavel", Email: "pavel@seido.test", Role: model.RolePrestataire, IsActive: true}
	for _, u := range []*model.User{manager, tenant, provider} {
		if err := repos.users.Create(ctx, u); err != nil {
			t.Fatalf("création utilisateur: %v", err)
		}
	}

	building := &model.Building{TeamID: team.TeamID, Name: "Résidence Louise", Address: "12 avenue Louise"}
	if err := repos.buildings.Create(ctx, building); err != nil {
		t.Fatalf("création immeuble: %v", err)
	}
	lot := &model.Lot{BuildingID: building.BuildingID, Reference: "A-101", Category: model.LotCategoryAppartement, TenantID: &tenant.UserID}
	if err := repos.lots.Create(ctx, lot); err != nil {
		t.Fatalf("création lot: %v", err)
	}

	notification := NewNotificationService(repos.repo, nil, logger)
	dispatcher := NewDispatcher(notification, nil, logger)

	return &testEnv{
		repos:      repos,
		itvSvc:     NewInterventionService(repos.repo, dispatcher, logger),
		schedSvc:   NewSchedulingService(repos.repo, dispatcher, logger),
		quoteSvc:   NewQuoteService(repos.repo, dispatcher, logger),
		manager:    &Actor{UserID: manager.UserID, Role: model.RoleGestionnaire, TeamID: team.TeamID},
		tenant:     &Actor{UserID: tenant.UserID, Role: model.RoleLocataire},
		provider:   &Actor{UserID: provider.UserID, Role: model.RolePrestataire},
		teamID:     team.TeamID,
		lotID:      lot.LotID,
		buildingID: building.BuildingID,
	}
}

// createIntervention dépose une demande par le locataire sur son lot
func (env *testEnv) createIntervention(t *testing.T) string {
	t.Helper()
	resp, err := env.itvSvc.Create(context.Background(), &dto.CreateInterventionRequest{
		Title:       "Fuite sous l'évier",
		Description: "L'eau goutte en continu dans le meuble de cuisine",
		Type:        model.InterventionTypePlomberie,
		Urgency:     model.UrgencyHaute,
		LotID:       &env.lotID,
	}, env.tenant)
	if err != nil {
		t.Fatalf("dépôt de la demande: %v", err)
	}
	return resp.ID
}

// toPlanning amène l'intervention en planification avec deux créneaux,
// prestataire rattaché
func (env *testEnv) toPlanning(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	id := env.createIntervention(t)

	if _, err := env.itvSvc.Approve(ctx, id, env.manager); err != nil {
		t.Fatalf("approbation: %v", err)
	}
	if err := env.itvSvc.AssignUser(ctx, id, &dto.AssignUserRequest{
		UserID: env.provider.UserID,
		Role:   model.RolePrestataire,
	}, env.manager); err != nil {
		t.Fatalf("rattachement prestataire: %v", err)
	}
	if _, err := env.itvSvc.Program(ctx, id, &dto.ProgramInterventionRequest{
		Mode: "propose",
		Slots: []dto.SlotInput{
			{SlotDate: "2026-09-14", StartTime: "09:00", EndTime: "11:00"},
			{SlotDate: "2026-09-15", StartTime: "14:00", EndTime: "16:00"},
		},
	}, env.manager); err != nil {
		t.Fatalf("programmation: %v", err)
	}
	return id
}

func (env *testEnv) status(t *testing.T, id string) string {
	t.Helper()
	itv, err := env.repos.interventions.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("relecture intervention: %v", err)
	}
	return itv.Status
}

// ════════════════════════════════════════════════════════════
// Dépôt
// ════════════════════════════════════════════════════════════

func TestCreateParLocataireDeriveLEquipeDuLot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createIntervention(t)
	itv, err := env.repos.interventions.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("relecture: %v", err)
	}

	if itv.Status != workflow.StatusRequested {
		t.Errorf("statut initial = %s, attendu requested", itv.Status)
	}
	if itv.TeamID != env.teamID {
		t.Errorf("équipe = %s, attendu celle de l'immeuble %s", itv.TeamID, env.teamID)
	}
	if itv.BuildingID == nil || *itv.BuildingID != env.buildingID {
		t.Error("l'immeuble du lot n'a pas été reporté sur l'intervention")
	}

	// le demandeur locataire doit être rattaché d'office
	if _, err := env.repos.assignments.Get(ctx, id, env.tenant.UserID); err != nil {
		t.Error("le locataire demandeur n'est pas rattaché à l'intervention")
	}
	if !env.repos.activity.hasAction(id, model.ActionInterventionCreated) {
		t.Error("journal: intervention_created absent")
	}
}

func TestCreateLocataireSansLotRefuse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.itvSvc.Create(context.Background(), &dto.CreateInterventionRequest{
		Title:       "Porte qui grince",
		Description: "La porte d'entrée grince fortement",
		Type:        model.InterventionTypeMenuiserie,
	}, env.tenant)
	if !errors.Is(err, ErrLotRequired) {
		t.Errorf("err = %v, attendu ErrLotRequired", err)
	}
}

func TestCreateParPrestataireRefuse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.itvSvc.Create(context.Background(), &dto.CreateInterventionRequest{
		Title:       "Demande illégitime",
		Description: "Un prestataire ne dépose pas de demande",
		Type:        model.InterventionTypeAutre,
	}, env.provider)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("err = %v, attendu ErrPermissionDenied", err)
	}
}

// ════════════════════════════════════════════════════════════
// Transitions de gestion
// ════════════════════════════════════════════════════════════

func TestApproveParGestionnaire(t *testing.T) {
	env := newTestEnv(t)
	id := env.createIntervention(t)

	resp, err := env.itvSvc.Approve(context.Background(), id, env.manager)
	if err != nil {
		t.Fatalf("approbation: %v", err)
	}
	if resp.Status != workflow.StatusApproved {
		t.Errorf("statut = %s, attendu approved", resp.Status)
	}
}

func TestApproveParLocataireRefuse(t *testing.T) {
	env := newTestEnv(t)
	id := env.createIntervention(t)

	if _, err := env.itvSvc.Approve(context.Background(), id, env.tenant); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("err = %v, attendu ErrPermissionDenied", err)
	}
}

func TestApproveDeuxFoisEstIllegal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createIntervention(t)

	if _, err := env.itvSvc.Approve(ctx, id, env.manager); err != nil {
		t.Fatalf("première approbation: %v", err)
	}

	_, err := env.itvSvc.Approve(ctx, id, env.manager)
	var terr *workflow.TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, attendu TransitionError", err)
	}
	if terr.From != workflow.StatusApproved {
		t.Errorf("From = %s, attendu approved", terr.From)
	}
}

func TestRejectExigeUnMotif(t *testing.T) {
	env := newTestEnv(t)
	id := env.createIntervention(t)

	_, err := env.itvSvc.Reject(context.Background(), id, &dto.RejectInterventionRequest{Reason: "trop bref"}, env.manager)
	if !errors.Is(err, ErrReasonTooShort) {
		t.Errorf("err = %v, attendu ErrReasonTooShort", err)
	}
}

func TestRejectConserveLeMotif(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createIntervention(t)

	reason := "Travaux déjà couverts par le contrat d'entretien annuel"
	resp, err := env.itvSvc.Reject(ctx, id, &dto.RejectInterventionRequest{Reason: reason}, env.manager)
	if err != nil {
		t.Fatalf("rejet: %v", err)
	}
	if resp.Status != workflow.StatusRejected {
		t.Errorf("statut = %s, attendu rejected", resp.Status)
	}
	if resp.RejectionReason != reason {
		t.Errorf("motif = %q, attendu %q", resp.RejectionReason, reason)
	}
}

// ════════════════════════════════════════════════════════════
// Programmation
// ════════════════════════════════════════════════════════════

func TestProgramModeDirectExigeUnSeulCreneau(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createIntervention(t)
	if _, err := env.itvSvc.Approve(ctx, id, env.manager); err != nil {
		t.Fatalf("approbation: %v", err)
	}

	_, err := env.itvSvc.Program(ctx, id, &dto.ProgramInterventionRequest{
		Mode: "direct",
		Slots: []dto.SlotInput{
			{SlotDate: "2026-09-14", StartTime: "09:00", EndTime: "11:00"},
			{SlotDate: "2026-09-15", StartTime: "09:00", EndTime: "11:00"},
		},
	}, env.manager)
	if !errors.Is(err, ErrSlotCountMismatch) {
		t.Errorf("err = %v, attendu ErrSlotCountMismatch", err)
	}
}

func TestProgramRejetteCreneauInverse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createIntervention(t)
	if _, err := env.itvSvc.Approve(ctx, id, env.manager); err != nil {
		t.Fatalf("approbation: %v", err)
	}

	_, err := env.itvSvc.Program(ctx, id, &dto.ProgramInterventionRequest{
		Mode:  "direct",
		Slots: []dto.SlotInput{{SlotDate: "2026-09-14", StartTime: "11:00", EndTime: "09:00"}},
	}, env.manager)
	if !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("err = %v, attendu ErrInvalidSlot", err)
	}
}

func TestProgramModeOrganizeSansCreneaux(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createIntervention(t)
	if _, err := env.itvSvc.Approve(ctx, id, env.manager); err != nil {
		t.Fatalf("approbation: %v", err)
	}

	resp, err := env.itvSvc.Program(ctx, id, &dto.ProgramInterventionRequest{Mode: "organize"}, env.manager)
	if err != nil {
		t.Fatalf("programmation organize: %v", err)
	}
	if resp.Status != workflow.StatusPlanning {
		t.Errorf("statut = %s, attendu planning", resp.Status)
	}
	if resp.SchedulingMethod != model.SchedulingFlexible {
		t.Errorf("méthode = %s, attendu flexible", resp.SchedulingMethod)
	}
}

// La rétention devis : tant que des devis restent actifs, programmer des
// créneaux n'avance pas le statut au-delà de quote_requested.
func TestProgramRetentionTantQueDevisActifs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createIntervention(t)
	if _, err := env.itvSvc.Approve(ctx, id, env.manager); err != nil {
		t.Fatalf("approbation: %v", err)
	}
	if _, err := env.itvSvc.RequestQuote(ctx, id, &dto.RequestQuoteRequest{
		ProviderIDs: []string{env.provider.UserID},
	}, env.manager); err != nil {
		t.Fatalf("demande de devis: %v", err)
	}

	resp, err := env.itvSvc.Program(ctx, id, &dto.ProgramInterventionRequest{
		Mode:  "propose",
		Slots: []dto.SlotInput{{SlotDate: "2026-09-14", StartTime: "09:00", EndTime: "11:00"}},
	}, env.manager)
	if err != nil {
		t.Fatalf("programmation: %v", err)
	}
	if resp.Status != workflow.StatusQuoteRequested {
		t.Errorf("statut = %s, attendu quote_requested (devis actifs)", resp.Status)
	}

	// résolution du devis : soumission puis rejet
	quotes, err := env.repos.quotes.ListByIntervention(ctx, id)
	if err != nil || len(quotes) != 1 {
		t.Fatalf("devis attendus: %v (%d)", err, len(quotes))
	}
	if _, err := env.quoteSvc.Submit(ctx, quotes[0].QuoteID, &dto.SubmitQuoteRequest{Amount: 480}, env.provider); err != nil {
		t.Fatalf("soumission devis: %v", err)
	}
	if _, err := env.quoteSvc.Reject(ctx, quotes[0].QuoteID, env.manager); err != nil {
		t.Fatalf("rejet devis: %v", err)
	}

	resp, err = env.itvSvc.Program(ctx, id, &dto.ProgramInterventionRequest{
		Mode:  "propose",
		Slots: []dto.SlotInput{{SlotDate: "2026-09-14", StartTime: "09:00", EndTime: "11:00"}},
	}, env.manager)
	if err != nil {
		t.Fatalf("reprogrammation: %v", err)
	}
	if resp.Status != workflow.StatusPlanning {
		t.Errorf("statut = %s, attendu planning (plus de devis actifs)", resp.Status)
	}
}

// ════════════════════════════════════════════════════════════
// Annulation
// ════════════════════════════════════════════════════════════

func TestCancelDepuisStatutNonTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)

	resp, err := env.itvSvc.Cancel(ctx, id, &dto.CancelInterventionRequest{
		Reason: "Le locataire a résolu le problème lui-même",
	}, env.tenant)
	if err != nil {
		t.Fatalf("annulation: %v", err)
	}
	if resp.Status != workflow.StatusCancelled {
		t.Errorf("statut = %s, attendu cancelled", resp.Status)
	}
	if resp.CancellationReason == "" {
		t.Error("motif d'annulation absent")
	}
}

func TestCancelRefuseSurStatutTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createIntervention(t)
	if _, err := env.itvSvc.Reject(ctx, id, &dto.RejectInterventionRequest{
		Reason: "Demande hors périmètre du bail",
	}, env.manager); err != nil {
		t.Fatalf("rejet: %v", err)
	}

	_, err := env.itvSvc.Cancel(ctx, id, &dto.CancelInterventionRequest{
		Reason: "Tentative d'annulation tardive",
	}, env.manager)
	var terr *workflow.TransitionError
	if !errors.As(err, &terr) {
		t.Errorf("err = %v, attendu TransitionError", err)
	}
}

func TestCancelParTiersRefuse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createIntervention(t)

	outsider := &Actor{UserID: "00000000-0000-0000-0000-000000000099", Role: model.RoleLocataire}
	_, err := env.itvSvc.Cancel(ctx, id, &dto.CancelInterventionRequest{
		Reason: "Je ne suis pas concerné par ce dossier",
	}, outsider)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("err = %v, attendu ErrPermissionDenied", err)
	}
}

// ════════════════════════════════════════════════════════════
// Cycle de vie complet
// ════════════════════════════════════════════════════════════

func TestCycleDeVieNominalJusquALaCloture(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)

	// consensus : locataire puis prestataire acceptent le même créneau
	slots, err := env.schedSvc.ListSlots(ctx, id, env.manager)
	if err != nil {
		t.Fatalf("liste des créneaux: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("créneaux = %d, attendu 2", len(slots))
	}
	target := slots[0].ID
	if _, err := env.schedSvc.Accept(ctx, target, env.tenant); err != nil {
		t.Fatalf("acceptation locataire: %v", err)
	}
	if _, err := env.schedSvc.Accept(ctx, target, env.provider); err != nil {
		t.Fatalf("acceptation prestataire: %v", err)
	}
	if got := env.status(t, id); got != workflow.StatusScheduled {
		t.Fatalf("statut après consensus = %s, attendu scheduled", got)
	}

	// exécution et clôture en trois temps
	if _, err := env.itvSvc.Start(ctx, id, env.provider); err != nil {
		t.Fatalf("démarrage: %v", err)
	}
	if _, err := env.itvSvc.CompleteByProvider(ctx, id, &dto.CompleteInterventionRequest{
		Report: "Siphon remplacé, joint refait",
	}, env.provider); err != nil {
		t.Fatalf("clôture prestataire: %v", err)
	}
	satisfaction := 5
	if _, err := env.itvSvc.ValidateByTenant(ctx, id, &dto.ValidateInterventionRequest{
		Satisfaction: &satisfaction,
	}, env.tenant); err != nil {
		t.Fatalf("validation locataire: %v", err)
	}
	finalCost := 320.0
	resp, err := env.itvSvc.FinalizeByManager(ctx, id, &dto.FinalizeInterventionRequest{
		FinalCost: &finalCost,
	}, env.manager)
	if err != nil {
		t.Fatalf("finalisation gestionnaire: %v", err)
	}

	if resp.Status != workflow.StatusClosedByManager {
		t.Errorf("statut final = %s, attendu closed_by_manager", resp.Status)
	}
	if resp.FinalCost == nil || *resp.FinalCost != finalCost {
		t.Error("coût final non conservé")
	}

	for _, action := range []string{
		model.ActionInterventionCreated,
		model.ActionInterventionApproved,
		model.ActionInterventionProgram,
		model.ActionSlotAutoConfirmed,
		model.ActionInterventionStarted,
		model.ActionCompletedByProvider,
		model.ActionValidatedByTenant,
		model.ActionFinalizedByManager,
	} {
		if !env.repos.activity.hasAction(id, action) {
			t.Errorf("journal: action %s absente du cycle de vie", action)
		}
	}
}

func TestStartParLocataireRefuse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.toPlanning(t)

	slots, _ := env.schedSvc.ListSlots(ctx, id, env.manager)
	if _, err := env.schedSvc.Accept(ctx, slots[0].ID, env.tenant); err != nil {
		t.Fatalf("acceptation: %v", err)
	}
	if _, err := env.schedSvc.Accept(ctx, slots[0].ID, env.provider); err != nil {
		t.Fatalf("acceptation: %v", err)
	}

	if _, err := env.itvSvc.Start(ctx, id, env.tenant); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("err = %v, attendu ErrPermissionDenied", err)
	}
}

// ════════════════════════════════════════════════════════════
// Listes par rôle
// ════════════════════════════════════════════════════════════

func TestListScopeeParRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createIntervention(t)

	// le gestionnaire voit l'intervention de son équipe
	items, total, err := env.itvSvc.List(ctx, &dto.InterventionListRequest{}, env.manager)
	if err != nil {
		t.Fatalf("liste gestionnaire: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("gestionnaire: total = %d, attendu 1", total)
	}

	// le demandeur voit sa demande
	items, _, err = env.itvSvc.List(ctx, &dto.InterventionListRequest{}, env.tenant)
	if err != nil {
		t.Fatalf("liste locataire: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("locataire: items = %d, attendu 1", len(items))
	}

	// un gestionnaire d'une autre équipe ne voit rien
	other := &Actor{UserID: "00000000-0000-0000-0000-000000000088", Role: model.RoleGestionnaire, TeamID: "autre-equipe"}
	items, _, err = env.itvSvc.List(ctx, &dto.InterventionListRequest{}, other)
	if err != nil {
		t.Fatalf("liste autre équipe: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("autre équipe: items = %d, attendu 0", len(items))
	}
}
