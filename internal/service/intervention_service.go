package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
	"github.com/aumugisha-umu/seido-sub006/internal/workflow"
)

var (
	ErrInterventionNotFound = errors.New("intervention introuvable")
	ErrLotRequired          = errors.New("un lot doit être précisé pour la demande")
	ErrReasonTooShort       = errors.New("le motif doit contenir au moins 10 caractères")
	ErrGuidanceTooLong      = errors.New("les consignes prestataire dépassent la longueur maximale")
	ErrSlotCountMismatch    = errors.New("nombre de créneaux incompatible avec le mode de programmation")
	ErrInvalidSlot          = errors.New("créneau invalide: date ou plage horaire incorrecte")
	ErrProvidersRequired    = errors.New("au moins un prestataire doit être désigné pour la demande de devis")
)

// InterventionService cycle de vie des interventions.
// Chaque opération d'état suit le même schéma : chargement, contrôle
// de droits, validation de la transition, écriture gardée par CAS sur
// le statut, journal d'activité, puis diffusion post-commit.
type InterventionService interface {
	Create(ctx context.Context, req *dto.CreateInterventionRequest, actor *Actor) (*dto.InterventionResponse, error)
	GetByID(ctx context.Context, id string, actor *Actor) (*dto.InterventionResponse, error)
	List(ctx context.Context, req *dto.InterventionListRequest, actor *Actor) ([]dto.InterventionResponse, int64, error)

	Approve(ctx context.Context, id string, actor *Actor) (*dto.InterventionResponse, error)
	Reject(ctx context.Context, id string, req *dto.RejectInterventionRequest, actor *Actor) (*dto.InterventionResponse, error)
	RequestQuote(ctx context.Context, id string, req *dto.RequestQuoteRequest, actor *Actor) (*dto.InterventionResponse, error)
	StartPlanning(ctx context.Context, id string, actor *Actor) (*dto.InterventionResponse, error)
	Program(ctx context.Context, id string, req *dto.ProgramInterventionRequest, actor *Actor) (*dto.InterventionResponse, error)
	Start(ctx context.Context, id string, actor *Actor) (*dto.InterventionResponse, error)
	CompleteByProvider(ctx context.Context, id string, req *dto.CompleteInterventionRequest, actor *Actor) (*dto.InterventionResponse, error)
	ValidateByTenant(ctx context.Context, id string, req *dto.ValidateInterventionRequest, actor *Actor) (*dto.InterventionResponse, error)
	FinalizeByManager(ctx context.Context, id string, req *dto.FinalizeInterventionRequest, actor *Actor) (*dto.InterventionResponse, error)
	Cancel(ctx context.Context, id string, req *dto.CancelInterventionRequest, actor *Actor) (*dto.InterventionResponse, error)

	AssignUser(ctx context.Context, id string, req *dto.AssignUserRequest, actor *Actor) error
	UnassignUser(ctx context.Context, id, userID string, actor *Actor) error
	ListAssignments(ctx context.Context, id string, actor *Actor) ([]dto.AssignmentResponse, error)
	ListActivity(ctx context.Context, id string, actor *Actor) ([]dto.ActivityLogResponse, error)
}

type interventionService struct {
	repo       *repository.Repository
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewInterventionService crée le service interventions
func NewInterventionService(repo *repository.Repository, dispatcher *Dispatcher, logger *zap.Logger) InterventionService {
	return &interventionService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// ────────────────────────────────────────────────────────────
// Dépôt et consultation
// ────────────────────────────────────────────────────────────

func (s *interventionService) Create(ctx context.Context, req *dto.CreateInterventionRequest, actor *Actor) (*dto.InterventionResponse, error) {
	if actor.Role == model.RolePrestataire {
		return nil, ErrPermissionDenied
	}

	requestedBy := actor.UserID
	teamID := actor.TeamID

	switch {
	case actor.IsManager():
		// dépôt pour le compte d'un locataire
		if req.TenantID != nil {
			requestedBy = *req.TenantID
		}
	default:
		// un locataire dépose obligatoirement sur un lot, qui porte l'équipe
		if req.LotID == nil {
			return nil, ErrLotRequired
		}
	}

	var buildingID *string
	if req.LotID != nil {
		lot, err := s.repo.Lot.GetByID(ctx, *req.LotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLotNotFound
			}
			return nil, err
		}
		buildingID = &lot.BuildingID
		if lot.Building != nil {
			teamID = lot.Building.TeamID
		}
	} else if req.BuildingID != nil {
		building, err := s.repo.Building.GetByID(ctx, *req.BuildingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBuildingNotFound
			}
			return nil, err
		}
		buildingID = &building.BuildingID
		teamID = building.TeamID
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = model.UrgencyNormale
	}

	itv := &model.Intervention{
		TeamID:           teamID,
		LotID:            req.LotID,
		BuildingID:       buildingID,
		Title:            req.Title,
		Description:      req.Description,
		Type:             req.Type,
		Urgency:          urgency,
		Status:           workflow.StatusRequested,
		SchedulingMethod: model.SchedulingSlots,
		RequestedBy:      requestedBy,
	}
	if err := s.repo.Intervention.Create(ctx, itv); err != nil {
		return nil, err
	}

	// le demandeur locataire est rattaché d'office : il doit pouvoir
	// répondre aux créneaux proposés plus tard
	if requester, err := s.repo.User.GetByID(ctx, requestedBy); err == nil && requester.Role == model.RoleLocataire {
		_ = s.repo.Assignment.Upsert(ctx, &model.InterventionAssignment{
			InterventionID: itv.InterventionID,
			UserID:         requestedBy,
			Role:           model.RoleLocataire,
			AssignedBy:     &actor.UserID,
		})
	}

	s.logActivity(ctx, itv.InterventionID, actor.UserID, model.ActionInterventionCreated, model.JSONMap{
		"type":    itv.Type,
		"urgency": itv.Urgency,
	})

	if managers, err := teamManagerIDs(ctx, s.repo, teamID); err == nil {
		s.dispatcher.Dispatch(ctx, []Event{{
			Type:        model.NotificationInterventionStatus,
			Title:       "Nouvelle demande d'intervention",
			Content:     itv.Title,
			Recipients:  withoutID(managers, actor.UserID),
			TeamID:      teamID,
			RelatedType: "intervention",
			RelatedID:   itv.InterventionID,
		}})
	}

	s.logger.Info("intervention créée",
		zap.String("intervention_id", itv.InterventionID),
		zap.String("team_id", teamID),
		zap.String("requested_by", requestedBy))

	return toInterventionResponse(itv), nil
}

func (s *interventionService) GetByID(ctx context.Context, id string, actor *Actor) (*dto.InterventionResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := isParty(ctx, s.repo, actor, itv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	return toInterventionResponse(itv), nil
}

// List vue filtrée par rôle : la gestion voit son équipe,
// locataires et prestataires uniquement leurs interventions.
func (s *interventionService) List(ctx context.Context, req *dto.InterventionListRequest, actor *Actor) ([]dto.InterventionResponse, int64, error) {
	filter := &repository.InterventionFilter{
		Status: req.Status,
		LotID:  req.LotID,
	}

	switch {
	case actor.Role == model.RoleAdmin:
		// non restreint
	case actor.Role == model.RoleGestionnaire:
		filter.TeamID = actor.TeamID
	case actor.Role == model.RoleLocataire:
		filter.RequestedBy = actor.UserID
	default:
		filter.AssignedTo = actor.UserID
	}

	interventions, total, err := s.repo.Intervention.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.InterventionResponse, 0, len(interventions))
	for i := range interventions {
		items = append(items, *toInterventionResponse(&interventions[i]))
	}
	return items, total, nil
}

// ────────────────────────────────────────────────────────────
// Transitions de gestion
// ────────────────────────────────────────────────────────────

func (s *interventionService) Approve(ctx context.Context, id string, actor *Actor) (*dto.InterventionResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, itv) {
		return nil, ErrPermissionDenied
	}

	from := itv.Status
	if err := workflow.Transition(from, workflow.StatusApproved); err != nil {
		return nil, err
	}

	itv.Status = workflow.StatusApproved
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionInterventionApproved, nil)
	s.notifyStatus(ctx, itv, actor.UserID, "Demande approuvée", itv.Title)

	return toInterventionResponse(itv), nil
}

func (s *interventionService) Reject(ctx context.Context, id string, req *dto.RejectInterventionRequest, actor *Actor) (*dto.InterventionResponse, error) {
	if len(strings.TrimSpace(req.Reason)) < workflow.MinCancelReasonLen {
		return nil, ErrReasonTooShort
	}

	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, itv) {
		return nil, ErrPermissionDenied
	}

	from := itv.Status
	if err := workflow.Transition(from, workflow.StatusRejected); err != nil {
		return nil, err
	}

	itv.Status = workflow.StatusRejected
	itv.RejectionReason = req.Reason
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionInterventionRejected, model.JSONMap{"reason": req.Reason})
	s.notifyStatus(ctx, itv, actor.UserID, "Demande rejetée", req.Reason)

	return toInterventionResponse(itv), nil
}

// RequestQuote passe en demande de devis et ouvre un devis par prestataire désigné.
// Les prestataires sont rattachés à l'intervention au passage.
func (s *interventionService) RequestQuote(ctx context.Context, id string, req *dto.RequestQuoteRequest, actor *Actor) (*dto.InterventionResponse, error) {
	if len(req.ProviderIDs) == 0 {
		return nil, ErrProvidersRequired
	}

	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, itv) {
		return nil, ErrPermissionDenied
	}

	from := itv.Status
	if from != workflow.StatusQuoteRequested {
		if err := workflow.Transition(from, workflow.StatusQuoteRequested); err != nil {
			return nil, err
		}
		itv.Status = workflow.StatusQuoteRequested
		itv.UpdatedBy = &actor.UserID
		if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
			return nil, err
		}
	}

	for _, providerID := range req.ProviderIDs {
		if err := s.repo.Assignment.Upsert(ctx, &model.InterventionAssignment{
			InterventionID: id,
			UserID:         providerID,
			Role:           model.RolePrestataire,
			AssignedBy:     &actor.UserID,
		}); err != nil {
			return nil, err
		}
		if err := s.repo.Quote.Create(ctx, &model.Quote{
			InterventionID: id,
			ProviderID:     providerID,
			Status:         model.QuoteStatusPending,
		}); err != nil {
			return nil, err
		}
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionQuoteRequested, model.JSONMap{
		"provider_count": len(req.ProviderIDs),
	})
	s.dispatcher.Dispatch(ctx, []Event{{
		Type:        model.NotificationQuoteRequested,
		Title:       "Demande de devis",
		Content:     itv.Title,
		Recipients:  req.ProviderIDs,
		TeamID:      itv.TeamID,
		RelatedType: "intervention",
		RelatedID:   id,
	}})

	return toInterventionResponse(itv), nil
}

func (s *interventionService) StartPlanning(ctx context.Context, id string, actor *Actor) (*dto.InterventionResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, itv) {
		return nil, ErrPermissionDenied
	}

	from := itv.Status
	if err := workflow.Transition(from, workflow.StatusPlanning); err != nil {
		return nil, err
	}

	itv.Status = workflow.StatusPlanning
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionPlanningStarted, nil)
	s.notifyStatus(ctx, itv, actor.UserID, "Planification ouverte", itv.Title)

	return toInterventionResponse(itv), nil
}

// Program programme les créneaux selon le mode choisi.
// Les créneaux non résolus existants sont remplacés.
// Cas particulier : tant que des devis restent actifs, l'intervention
// demeure en quote_requested même si des créneaux sont déjà proposés.
func (s *interventionService) Program(ctx context.Context, id string, req *dto.ProgramInterventionRequest, actor *Actor) (*dto.InterventionResponse, error) {
	if len(req.ProviderGuidance) > model.MaxProviderGuidanceLen {
		return nil, ErrGuidanceTooLong
	}
	switch req.Mode {
	case "direct":
		if len(req.Slots) != 1 {
			return nil, ErrSlotCountMismatch
		}
	case "propose":
		if len(req.Slots) == 0 {
			return nil, ErrSlotCountMismatch
		}
	case "organize":
		if len(req.Slots) != 0 {
			return nil, ErrSlotCountMismatch
		}
	}

	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, itv) {
		return nil, ErrPermissionDenied
	}

	from := itv.Status
	switch from {
	case workflow.StatusApproved, workflow.StatusQuoteRequested, workflow.StatusPlanning:
		// programmable
	default:
		return nil, &workflow.TransitionError{From: from, To: workflow.StatusPlanning}
	}

	slots, err := s.buildSlots(id, actor.UserID, req.Slots)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TimeSlot.DeleteByIntervention(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.TimeSlot.CreateBatch(ctx, slots); err != nil {
		return nil, err
	}

	target := workflow.StatusPlanning
	if from == workflow.StatusQuoteRequested {
		hasActive, err := s.repo.Quote.HasActive(ctx, id)
		if err != nil {
			return nil, err
		}
		if hasActive {
			// rétention devis : les créneaux sont en place mais le statut
			// n'avance pas tant que des devis restent à résoudre
			target = workflow.StatusQuoteRequested
		}
	}

	switch req.Mode {
	case "direct":
		itv.SchedulingMethod = model.SchedulingDirect
	case "propose":
		itv.SchedulingMethod = model.SchedulingSlots
	case "organize":
		itv.SchedulingMethod = model.SchedulingFlexible
	}
	itv.ProviderGuidance = req.ProviderGuidance
	itv.UpdatedBy = &actor.UserID
	if target != from {
		if err := workflow.Transition(from, target); err != nil {
			return nil, err
		}
	}
	itv.Status = target
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionInterventionProgram, model.JSONMap{
		"mode":       req.Mode,
		"slot_count": len(slots),
	})
	s.notifySlots(ctx, itv, actor.UserID, "Créneaux proposés", itv.Title)

	s.logger.Info("intervention programmée",
		zap.String("intervention_id", id),
		zap.String("mode", req.Mode),
		zap.Int("slots", len(slots)),
		zap.String("status", itv.Status))

	return toInterventionResponse(itv), nil
}

// ────────────────────────────────────────────────────────────
// Exécution et clôture en trois temps
// ────────────────────────────────────────────────────────────

func (s *interventionService) Start(ctx context.Context, id string, actor *Actor) (*dto.InterventionResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAssignedProvider(ctx, itv, actor); err != nil {
		return nil, err
	}

	from := itv.Status
	if err := workflow.Transition(from, workflow.StatusInProgress); err != nil {
		return nil, err
	}

	itv.Status = workflow.StatusInProgress
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionInterventionStarted, nil)
	s.notifyStatus(ctx, itv, actor.UserID, "Travaux démarrés", itv.Title)

	return toInterventionResponse(itv), nil
}

func (s *interventionService) CompleteByProvider(ctx context.Context, id string, req *dto.CompleteInterventionRequest, actor *Actor) (*dto.InterventionResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAssignedProvider(ctx, itv, actor); err != nil {
		return nil, err
	}

	from := itv.Status
	if err := workflow.Transition(from, workflow.StatusClosedByProvider); err != nil {
		return nil, err
	}

	itv.Status = workflow.StatusClosedByProvider
	itv.ProviderReport = req.Report
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionCompletedByProvider, nil)
	s.notifyStatus(ctx, itv, actor.UserID, "Travaux terminés", "En attente de validation du locataire")

	return toInterventionResponse(itv), nil
}

func (s *interventionService) ValidateByTenant(ctx context.Context, id string, req *dto.ValidateInterventionRequest, actor *Actor) (*dto.InterventionResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireTenant(ctx, itv, actor); err != nil {
		return nil, err
	}

	from := itv.Status
	if err := workflow.Transition(from, workflow.StatusClosedByTenant); err != nil {
		return nil, err
	}

	itv.Status = workflow.StatusClosedByTenant
	itv.TenantSatisfaction = req.Satisfaction
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	details := model.JSONMap{}
	if req.Satisfaction != nil {
		details["satisfaction"] = *req.Satisfaction
	}
	if req.Comment != "" {
		details["comment"] = req.Comment
	}
	s.logActivity(ctx, id, actor.UserID, model.ActionValidatedByTenant, details)
	s.notifyStatus(ctx, itv, actor.UserID, "Travaux validés par le locataire", "En attente de finalisation")

	return toInterventionResponse(itv), nil
}

func (s *interventionService) FinalizeByManager(ctx context.Context, id string, req *dto.FinalizeInterventionRequest, actor *Actor) (*dto.InterventionResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, itv) {
		return nil, ErrPermissionDenied
	}

	from := itv.Status
	if err := workflow.Transition(from, workflow.StatusClosedByManager); err != nil {
		return nil, err
	}

	itv.Status = workflow.StatusClosedByManager
	itv.FinalCost = req.FinalCost
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	details := model.JSONMap{}
	if req.FinalCost != nil {
		details["final_cost"] = *req.FinalCost
	}
	s.logActivity(ctx, id, actor.UserID, model.ActionFinalizedByManager, details)
	s.notifyStatus(ctx, itv, actor.UserID, "Intervention clôturée", itv.Title)

	return toInterventionResponse(itv), nil
}

// Cancel annulation : accessible à toute partie prenante, depuis
// n'importe quel statut non terminal, motif d'au moins 10 caractères.
func (s *interventionService) Cancel(ctx context.Context, id string, req *dto.CancelInterventionRequest, actor *Actor) (*dto.InterventionResponse, error) {
	if len(strings.TrimSpace(req.Reason)) < workflow.MinCancelReasonLen {
		return nil, ErrReasonTooShort
	}

	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := isParty(ctx, s.repo, actor, itv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	from := itv.Status
	if err := workflow.Transition(from, workflow.StatusCancelled); err != nil {
		return nil, err
	}

	now := time.Now()
	itv.Status = workflow.StatusCancelled
	itv.CancellationReason = req.Reason
	itv.CancelledBy = &actor.UserID
	itv.CancelledAt = &now
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, from); err != nil {
		return nil, err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionInterventionCancelled, model.JSONMap{
		"reason":      req.Reason,
		"from_status": from,
	})
	s.notifyStatus(ctx, itv, actor.UserID, "Intervention annulée", req.Reason)

	return toInterventionResponse(itv), nil
}

// ────────────────────────────────────────────────────────────
// Rattachements et journal
// ────────────────────────────────────────────────────────────

func (s *interventionService) AssignUser(ctx context.Context, id string, req *dto.AssignUserRequest, actor *Actor) error {
	itv, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, itv) {
		return ErrPermissionDenied
	}

	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.Assignment.Upsert(ctx, &model.InterventionAssignment{
		InterventionID: id,
		UserID:         req.UserID,
		Role:           req.Role,
		AssignedBy:     &actor.UserID,
	}); err != nil {
		return err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionUserAssigned, model.JSONMap{
		"user_id": req.UserID,
		"role":    req.Role,
	})
	s.dispatcher.Dispatch(ctx, []Event{{
		Type:        model.NotificationAssignment,
		Title:       "Vous êtes rattaché à une intervention",
		Content:     itv.Title,
		Recipients:  []string{req.UserID},
		TeamID:      itv.TeamID,
		RelatedType: "intervention",
		RelatedID:   id,
	}})
	return nil
}

func (s *interventionService) UnassignUser(ctx context.Context, id, userID string, actor *Actor) error {
	itv, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, itv) {
		return ErrPermissionDenied
	}

	if err := s.repo.Assignment.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logActivity(ctx, id, actor.UserID, model.ActionUserUnassigned, model.JSONMap{"user_id": userID})
	return nil
}

func (s *interventionService) ListAssignments(ctx context.Context, id string, actor *Actor) ([]dto.AssignmentResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := isParty(ctx, s.repo, actor, itv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	assignments, err := s.repo.Assignment.ListByIntervention(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		item := dto.AssignmentResponse{UserID: a.UserID, Role: a.Role}
		if a.User != nil {
			item.User = toUserResponse(a.User)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *interventionService) ListActivity(ctx context.Context, id string, actor *Actor) ([]dto.ActivityLogResponse, error) {
	itv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := isParty(ctx, s.repo, actor, itv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	entries, err := s.repo.ActivityLog.ListByIntervention(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ActivityLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, *toActivityLogResponse(&entries[i]))
	}
	return items, nil
}

// ────────────────────────────────────────────────────────────
// Aides internes
// ────────────────────────────────────────────────────────────

func (s *interventionService) load(ctx context.Context, id string) (*model.Intervention, error) {
	itv, err := s.repo.Intervention.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterventionNotFound
		}
		return nil, err
	}
	return itv, nil
}

func (s *interventionService) requireAssignedProvider(ctx context.Context, itv *model.Intervention, actor *Actor) error {
	if actor.Role != model.RolePrestataire {
		return ErrPermissionDenied
	}
	assigned, err := isAssigned(ctx, s.repo, itv.InterventionID, actor.UserID)
	if err != nil {
		return err
	}
	if !assigned {
		return ErrPermissionDenied
	}
	return nil
}

func (s *interventionService) requireTenant(ctx context.Context, itv *model.Intervention, actor *Actor) error {
	if actor.Role != model.RoleLocataire {
		return ErrPermissionDenied
	}
	if itv.RequestedBy == actor.UserID {
		return nil
	}
	assigned, err := isAssigned(ctx, s.repo, itv.InterventionID, actor.UserID)
	if err != nil {
		return err
	}
	if !assigned {
		return ErrPermissionDenied
	}
	return nil
}

// buildSlots valide et matérialise les créneaux demandés
func (s *interventionService) buildSlots(interventionID, proposedBy string, inputs []dto.SlotInput) ([]model.TimeSlot, error) {
	slots := make([]model.TimeSlot, 0, len(inputs))
	for _, in := range inputs {
		slotDate, err := time.Parse("2006-01-02", in.SlotDate)
		if err != nil {
			return nil, ErrInvalidSlot
		}
		start, err := workflow.NormalizeStartTime(in.StartTime)
		if err != nil {
			return nil, ErrInvalidSlot
		}
		end, err := workflow.NormalizeStartTime(in.EndTime)
		if err != nil {
			return nil, ErrInvalidSlot
		}
		// les heures normalisées HH:MM:SS se comparent lexicalement
		if end <= start {
			return nil, ErrInvalidSlot
		}
		slots = append(slots, model.TimeSlot{
			InterventionID: interventionID,
			SlotDate:       slotDate,
			StartTime:      start,
			EndTime:        end,
			Status:         workflow.SlotStatusPending,
			ProposedBy:     proposedBy,
		})
	}
	return slots, nil
}

// logActivity journalise en best-effort : une entrée manquée ne doit
// pas faire échouer l'opération déjà persistée
func (s *interventionService) logActivity(ctx context.Context, interventionID, userID, action string, details model.JSONMap) {
	entry := &model.ActivityLog{
		InterventionID: interventionID,
		UserID:         userID,
		Action:         action,
		Details:        details,
	}
	if err := s.repo.ActivityLog.Append(ctx, entry); err != nil {
		s.logger.Warn("échec d'écriture du journal d'activité",
			zap.String("intervention_id", interventionID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func (s *interventionService) notifyStatus(ctx context.Context, itv *model.Intervention, actorID, title, content string) {
	recipients, err := participantIDs(ctx, s.repo, itv, actorID)
	if err != nil {
		s.logger.Warn("destinataires de notification indisponibles", zap.Error(err))
	}
	s.dispatcher.Dispatch(ctx, []Event{{
		Type:        model.NotificationInterventionStatus,
		Title:       title,
		Content:     content,
		Recipients:  recipients,
		TeamID:      itv.TeamID,
		RelatedType: "intervention",
		RelatedID:   itv.InterventionID,
	}})
}

func (s *interventionService) notifySlots(ctx context.Context, itv *model.Intervention, actorID, title, content string) {
	recipients, err := participantIDs(ctx, s.repo, itv, actorID)
	if err != nil {
		s.logger.Warn("destinataires de notification indisponibles", zap.Error(err))
	}
	s.dispatcher.Dispatch(ctx, []Event{{
		Type:        model.NotificationSlotProposed,
		Title:       title,
		Content:     content,
		Recipients:  recipients,
		TeamID:      itv.TeamID,
		RelatedType: "intervention",
		RelatedID:   itv.InterventionID,
	}})
}

func withoutID(ids []string, exclude string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}
