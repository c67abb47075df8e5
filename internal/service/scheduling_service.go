package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
	"github.com/aumugisha-umu/seido-sub006/internal/workflow"
	pkgerrors "github.com/aumugisha-umu/seido-sub006/pkg/errors"
)

var (
	ErrTimeSlotNotFound  = errors.New("créneau introuvable")
	ErrTimeSlotCancelled = errors.New("ce créneau a été annulé")
	ErrTimeSlotResolved  = errors.New("ce créneau est déjà résolu")
	ErrOwnSlotResponse   = errors.New("impossible de répondre à son propre créneau")
	ErrResponseNotFound  = errors.New("aucune réponse à retirer pour ce créneau")
	ErrPlanningClosed    = errors.New("l'intervention n'est plus en phase de planification")
)

// SchedulingService moteur de consensus sur les créneaux.
// Règle d'éligibilité unique : un créneau est finalisable quand au moins
// un locataire ET le prestataire l'ont accepté ; l'auto-confirmation
// exige en plus que toutes les parties aient répondu.
type SchedulingService interface {
	ListSlots(ctx context.Context, interventionID string, actor *Actor) ([]dto.TimeSlotDTO, error)
	Accept(ctx context.Context, slotID string, actor *Actor) (*dto.TimeSlotDTO, error)
	Reject(ctx context.Context, slotID string, req *dto.RejectSlotRequest, actor *Actor) (*dto.TimeSlotDTO, error)
	Withdraw(ctx context.Context, slotID string, actor *Actor) (*dto.TimeSlotDTO, error)
	CancelSlot(ctx context.Context, slotID string, actor *Actor) error
	// ChooseAsManager court-circuite le consensus : le gestionnaire impose
	// un créneau sans attendre que toutes les parties aient répondu
	ChooseAsManager(ctx context.Context, slotID string, actor *Actor) (*dto.TimeSlotDTO, error)
}

type schedulingService struct {
	repo       *repository.Repository
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewSchedulingService crée le service de planification
func NewSchedulingService(repo *repository.Repository, dispatcher *Dispatcher, logger *zap.Logger) SchedulingService {
	return &schedulingService{repo: repo, dispatcher: dispatcher, logger: logger}
}

func (s *schedulingService) ListSlots(ctx context.Context, interventionID string, actor *Actor) ([]dto.TimeSlotDTO, error) {
	itv, err := s.loadIntervention(ctx, interventionID)
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

	slots, err := s.repo.TimeSlot.ListByIntervention(ctx, interventionID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TimeSlotDTO, 0, len(slots))
	for i := range slots {
		items = append(items, *toTimeSlotDTO(&slots[i]))
	}
	return items, nil
}

// Accept enregistre l'acceptation puis tente l'auto-confirmation :
// si toutes les parties ont répondu et que l'éligibilité est atteinte,
// le créneau est finalisé sans intervention du gestionnaire.
func (s *schedulingService) Accept(ctx context.Context, slotID string, actor *Actor) (*dto.TimeSlotDTO, error) {
	slot, itv, err := s.loadForResponse(ctx, slotID, actor)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TimeSlotResponse.Upsert(ctx, &model.TimeSlotResponse{
		TimeSlotID: slotID,
		UserID:     actor.UserID,
		UserRole:   actor.Role,
		Response:   workflow.ResponseAccepted,
	}); err != nil {
		return nil, err
	}

	responses, err := s.repo.TimeSlotResponse.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	s.syncFlags(ctx, slotID, responses)

	s.logActivity(ctx, itv.InterventionID, actor.UserID, model.ActionSlotAccepted, model.JSONMap{
		"time_slot_id": slotID,
	})

	if itv.Status == workflow.StatusPlanning && workflow.EligibleForAutoConfirm(responses) {
		if err := s.finalizeSlot(ctx, itv, slot, responses, true, actor.UserID); err != nil {
			if errors.Is(err, pkgerrors.ErrOptimisticLock) {
				// une finalisation concurrente a gagné la course : bénin,
				// le créneau retenu est déjà en place
				s.logger.Info("finalisation concurrente détectée, ignorée",
					zap.String("time_slot_id", slotID))
			} else {
				s.logger.Error("échec de l'auto-confirmation",
					zap.String("time_slot_id", slotID),
					zap.Error(err))
			}
		}
	}

	return s.reload(ctx, slotID)
}

func (s *schedulingService) Reject(ctx context.Context, slotID string, req *dto.RejectSlotRequest, actor *Actor) (*dto.TimeSlotDTO, error) {
	_, itv, err := s.loadForResponse(ctx, slotID, actor)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TimeSlotResponse.Upsert(ctx, &model.TimeSlotResponse{
		TimeSlotID: slotID,
		UserID:     actor.UserID,
		UserRole:   actor.Role,
		Response:   workflow.ResponseRejected,
		Notes:      req.Reason,
	}); err != nil {
		return nil, err
	}

	responses, err := s.repo.TimeSlotResponse.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	s.syncFlags(ctx, slotID, responses)

	s.logActivity(ctx, itv.InterventionID, actor.UserID, model.ActionSlotRejected, model.JSONMap{
		"time_slot_id": slotID,
		"reason":       req.Reason,
	})

	return s.reload(ctx, slotID)
}

// Withdraw remet la réponse de l'acteur à "pending" : le créneau
// redevient indécis pour lui, sans effacer l'historique des autres.
func (s *schedulingService) Withdraw(ctx context.Context, slotID string, actor *Actor) (*dto.TimeSlotDTO, error) {
	_, itv, err := s.loadForResponse(ctx, slotID, actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.TimeSlotResponse.Get(ctx, slotID, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}

	if err := s.repo.TimeSlotResponse.Upsert(ctx, &model.TimeSlotResponse{
		TimeSlotID: slotID,
		UserID:     actor.UserID,
		UserRole:   actor.Role,
		Response:   workflow.ResponsePending,
	}); err != nil {
		return nil, err
	}

	responses, err := s.repo.TimeSlotResponse.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	s.syncFlags(ctx, slotID, responses)

	s.logActivity(ctx, itv.InterventionID, actor.UserID, model.ActionSlotWithdrawn, model.JSONMap{
		"time_slot_id": slotID,
	})

	return s.reload(ctx, slotID)
}

// CancelSlot retire un créneau de la consultation. Refusé sur un créneau
// déjà retenu : la planification arrêtée ne se défait pas par ce biais.
func (s *schedulingService) CancelSlot(ctx context.Context, slotID string, actor *Actor) error {
	slot, err := s.loadSlot(ctx, slotID)
	if err != nil {
		return err
	}
	itv, err := s.loadIntervention(ctx, slot.InterventionID)
	if err != nil {
		return err
	}

	if slot.ProposedBy != actor.UserID && !canManage(actor, itv) {
		return ErrPermissionDenied
	}
	switch slot.Status {
	case workflow.SlotStatusCancelled:
		return ErrTimeSlotCancelled
	case workflow.SlotStatusSelected:
		return ErrTimeSlotResolved
	}

	if err := s.repo.TimeSlot.Cancel(ctx, slotID, actor.UserID); err != nil {
		return err
	}

	s.logActivity(ctx, itv.InterventionID, actor.UserID, model.ActionSlotCancelled, model.JSONMap{
		"time_slot_id": slotID,
	})
	return nil
}

func (s *schedulingService) ChooseAsManager(ctx context.Context, slotID string, actor *Actor) (*dto.TimeSlotDTO, error) {
	slot, err := s.loadSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	itv, err := s.loadIntervention(ctx, slot.InterventionID)
	if err != nil {
		return nil, err
	}

	if !canManage(actor, itv) {
		return nil, ErrPermissionDenied
	}
	switch slot.Status {
	case workflow.SlotStatusCancelled:
		return nil, ErrTimeSlotCancelled
	case workflow.SlotStatusSelected:
		return nil, ErrTimeSlotResolved
	}
	if itv.Status != workflow.StatusPlanning {
		return nil, ErrPlanningClosed
	}

	responses, err := s.repo.TimeSlotResponse.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if err := s.finalizeSlot(ctx, itv, slot, responses, false, actor.UserID); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrTimeSlotResolved
		}
		return nil, err
	}

	return s.reload(ctx, slotID)
}

// ────────────────────────────────────────────────────────────
// Finalisation
// ────────────────────────────────────────────────────────────

// finalizeSlot séquence partagée entre auto-confirmation et choix manuel :
// marquage gardé du créneau retenu, rejet des créneaux frères, calcul de
// la date de rendez-vous, transition planning → scheduled, journal, diffusion.
func (s *schedulingService) finalizeSlot(ctx context.Context, itv *model.Intervention, slot *model.TimeSlot, responses []model.TimeSlotResponse, auto bool, actorID string) error {
	manager, provider, tenant := workflow.SelectionFlags(responses)

	if err := s.repo.TimeSlot.MarkSelected(ctx, slot.TimeSlotID, model.TimeSlot{
		SelectedByManager:  manager,
		SelectedByProvider: provider,
		SelectedByTenant:   tenant,
	}); err != nil {
		return err
	}

	if err := s.repo.TimeSlot.RejectOthers(ctx, itv.InterventionID, slot.TimeSlotID); err != nil {
		// le créneau retenu est en place ; les frères restants seront
		// ignorés de toute façon hors de la phase de planification
		s.logger.Warn("échec du rejet des créneaux frères",
			zap.String("intervention_id", itv.InterventionID),
			zap.Error(err))
	}

	when, err := workflow.ScheduledDate(slot.SlotDate, slot.StartTime)
	if err != nil {
		return err
	}

	itv.Status = workflow.StatusScheduled
	itv.ScheduledDate = &when
	if err := s.repo.Intervention.UpdateWithStatusGuard(ctx, itv, workflow.StatusPlanning); err != nil {
		return err
	}

	action := model.ActionSlotChosenByManager
	if auto {
		action = model.ActionSlotAutoConfirmed
	}
	s.logActivity(ctx, itv.InterventionID, actorID, action, model.JSONMap{
		"time_slot_id":   slot.TimeSlotID,
		"scheduled_date": when.Format("2006-01-02 15:04"),
	})

	recipients, rerr := participantIDs(ctx, s.repo, itv, actorID)
	if rerr != nil {
		s.logger.Warn("destinataires de notification indisponibles", zap.Error(rerr))
	}
	s.dispatcher.Dispatch(ctx, []Event{{
		Type:        model.NotificationSlotConfirmed,
		Title:       "Rendez-vous confirmé",
		Content:     itv.Title + " — " + when.Format("02/01/2006 à 15:04"),
		Recipients:  recipients,
		TeamID:      itv.TeamID,
		RelatedType: "time_slot",
		RelatedID:   slot.TimeSlotID,
	}})

	s.logger.Info("créneau finalisé",
		zap.String("intervention_id", itv.InterventionID),
		zap.String("time_slot_id", slot.TimeSlotID),
		zap.Bool("auto", auto))

	return nil
}

// ────────────────────────────────────────────────────────────
// Aides internes
// ────────────────────────────────────────────────────────────

func (s *schedulingService) loadSlot(ctx context.Context, slotID string) (*model.TimeSlot, error) {
	slot, err := s.repo.TimeSlot.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (s *schedulingService) loadIntervention(ctx context.Context, id string) (*model.Intervention, error) {
	itv, err := s.repo.Intervention.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterventionNotFound
		}
		return nil, err
	}
	return itv, nil
}

// loadForResponse préconditions communes aux réponses de créneau :
// créneau vivant, acteur partie prenante, jamais le proposeur lui-même.
func (s *schedulingService) loadForResponse(ctx context.Context, slotID string, actor *Actor) (*model.TimeSlot, *model.Intervention, error) {
	slot, err := s.loadSlot(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}
	switch slot.Status {
	case workflow.SlotStatusCancelled:
		return nil, nil, ErrTimeSlotCancelled
	case workflow.SlotStatusSelected:
		return nil, nil, ErrTimeSlotResolved
	}
	if slot.ProposedBy == actor.UserID {
		return nil, nil, ErrOwnSlotResponse
	}

	itv, err := s.loadIntervention(ctx, slot.InterventionID)
	if err != nil {
		return nil, nil, err
	}
	ok, err := isParty(ctx, s.repo, actor, itv)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrPermissionDenied
	}
	return slot, itv, nil
}

// syncFlags recalcule le cache selected_by_* depuis les réponses (best-effort)
func (s *schedulingService) syncFlags(ctx context.Context, slotID string, responses []model.TimeSlotResponse) {
	manager, provider, tenant := workflow.SelectionFlags(responses)
	if err := s.repo.TimeSlot.UpdateSelectionFlags(ctx, slotID, manager, provider, tenant); err != nil {
		s.logger.Warn("échec de synchronisation des drapeaux de sélection",
			zap.String("time_slot_id", slotID),
			zap.Error(err))
	}
}

func (s *schedulingService) reload(ctx context.Context, slotID string) (*dto.TimeSlotDTO, error) {
	slot, err := s.loadSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	return toTimeSlotDTO(slot), nil
}

func (s *schedulingService) logActivity(ctx context.Context, interventionID, userID, action string, details model.JSONMap) {
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
