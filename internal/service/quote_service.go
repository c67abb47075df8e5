package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
)

var (
	ErrQuoteNotFound     = errors.New("devis introuvable")
	ErrQuoteResolved     = errors.New("ce devis est déjà résolu")
	ErrQuoteNotSubmitted = errors.New("ce devis n'a pas encore été soumis")
)

// QuoteService cycle de vie des devis prestataire
type QuoteService interface {
	ListByIntervention(ctx context.Context, interventionID string, actor *Actor) ([]dto.QuoteResponse, error)
	// Submit soumission du montant par le prestataire titulaire
	Submit(ctx context.Context, quoteID string, req *dto.SubmitQuoteRequest, actor *Actor) (*dto.QuoteResponse, error)
	Accept(ctx context.Context, quoteID string, actor *Actor) (*dto.QuoteResponse, error)
	Reject(ctx context.Context, quoteID string, actor *Actor) (*dto.QuoteResponse, error)
}

type quoteService struct {
	repo       *repository.Repository
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewQuoteService crée le service devis
func NewQuoteService(repo *repository.Repository, dispatcher *Dispatcher, logger *zap.Logger) QuoteService {
	return &quoteService{repo: repo, dispatcher: dispatcher, logger: logger}
}

func (s *quoteService) ListByIntervention(ctx context.Context, interventionID string, actor *Actor) ([]dto.QuoteResponse, error) {
	itv, err := s.loadIntervention(ctx, interventionID)
	if err != nil {
		return nil, err
	}

	if !canManage(actor, itv) && actor.Role != model.RolePrestataire {
		return nil, ErrPermissionDenied
	}

	quotes, err := s.repo.Quote.ListByIntervention(ctx, interventionID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.QuoteResponse, 0, len(quotes))
	for i := range quotes {
		q := &quotes[i]
		// un prestataire ne voit que ses propres devis
		if actor.Role == model.RolePrestataire && q.ProviderID != actor.UserID {
			continue
		}
		items = append(items, *toQuoteResponse(q))
	}
	return items, nil
}

func (s *quoteService) Submit(ctx context.Context, quoteID string, req *dto.SubmitQuoteRequest, actor *Actor) (*dto.QuoteResponse, error) {
	quote, err := s.load(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RolePrestataire || quote.ProviderID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	if !model.IsActiveQuoteStatus(quote.Status) {
		return nil, ErrQuoteResolved
	}

	quote.Amount = &req.Amount
	quote.Description = req.Description
	quote.Status = model.QuoteStatusSent
	quote.UpdatedBy = &actor.UserID
	if err := s.repo.Quote.Update(ctx, quote); err != nil {
		return nil, err
	}

	itv, err := s.loadIntervention(ctx, quote.InterventionID)
	if err == nil {
		s.logActivity(ctx, itv.InterventionID, actor.UserID, model.ActionQuoteSubmitted, model.JSONMap{
			"quote_id": quoteID,
			"amount":   req.Amount,
		})
		if managers, merr := teamManagerIDs(ctx, s.repo, itv.TeamID); merr == nil {
			s.dispatcher.Dispatch(ctx, []Event{{
				Type:        model.NotificationQuoteRequested,
				Title:       "Devis soumis",
				Content:     itv.Title,
				Recipients:  managers,
				TeamID:      itv.TeamID,
				RelatedType: "quote",
				RelatedID:   quoteID,
			}})
		}
	}

	return toQuoteResponse(quote), nil
}

// Accept retient le devis et reporte son montant en coût estimé
// de l'intervention. Les autres devis actifs restent ouverts : c'est
// au gestionnaire de les rejeter explicitement.
func (s *quoteService) Accept(ctx context.Context, quoteID string, actor *Actor) (*dto.QuoteResponse, error) {
	quote, itv, err := s.loadForDecision(ctx, quoteID, actor)
	if err != nil {
		return nil, err
	}

	quote.Status = model.QuoteStatusAccepted
	quote.UpdatedBy = &actor.UserID
	if err := s.repo.Quote.Update(ctx, quote); err != nil {
		return nil, err
	}

	itv.EstimatedCost = quote.Amount
	itv.UpdatedBy = &actor.UserID
	if err := s.repo.Intervention.Update(ctx, itv); err != nil {
		return nil, err
	}

	s.logActivity(ctx, itv.InterventionID, actor.UserID, model.ActionQuoteAccepted, model.JSONMap{
		"quote_id": quoteID,
	})
	s.dispatcher.Dispatch(ctx, []Event{{
		Type:        model.NotificationQuoteRequested,
		Title:       "Devis accepté",
		Content:     itv.Title,
		Recipients:  []string{quote.ProviderID},
		TeamID:      itv.TeamID,
		RelatedType: "quote",
		RelatedID:   quoteID,
	}})

	return toQuoteResponse(quote), nil
}

func (s *quoteService) Reject(ctx context.Context, quoteID string, actor *Actor) (*dto.QuoteResponse, error) {
	quote, itv, err := s.loadForDecision(ctx, quoteID, actor)
	if err != nil {
		return nil, err
	}

	quote.Status = model.QuoteStatusRejected
	quote.UpdatedBy = &actor.UserID
	if err := s.repo.Quote.Update(ctx, quote); err != nil {
		return nil, err
	}

	s.logActivity(ctx, itv.InterventionID, actor.UserID, model.ActionQuoteRejected, model.JSONMap{
		"quote_id": quoteID,
	})
	s.dispatcher.Dispatch(ctx, []Event{{
		Type:        model.NotificationQuoteRequested,
		Title:       "Devis refusé",
		Content:     itv.Title,
		Recipients:  []string{quote.ProviderID},
		TeamID:      itv.TeamID,
		RelatedType: "quote",
		RelatedID:   quoteID,
	}})

	return toQuoteResponse(quote), nil
}

// ── Aides internes ──

func (s *quoteService) load(ctx context.Context, quoteID string) (*model.Quote, error) {
	quote, err := s.repo.Quote.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) loadIntervention(ctx context.Context, id string) (*model.Intervention, error) {
	itv, err := s.repo.Intervention.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterventionNotFound
		}
		return nil, err
	}
	return itv, nil
}

// loadForDecision préconditions des décisions gestionnaire :
// devis soumis (sent) et acteur gestionnaire de l'équipe
func (s *quoteService) loadForDecision(ctx context.Context, quoteID string, actor *Actor) (*model.Quote, *model.Intervention, error) {
	quote, err := s.load(ctx, quoteID)
	if err != nil {
		return nil, nil, err
	}
	itv, err := s.loadIntervention(ctx, quote.InterventionID)
	if err != nil {
		return nil, nil, err
	}
	if !canManage(actor, itv) {
		return nil, nil, ErrPermissionDenied
	}
	switch quote.Status {
	case model.QuoteStatusSent:
		// décidable
	case model.QuoteStatusPending:
		return nil, nil, ErrQuoteNotSubmitted
	default:
		return nil, nil, ErrQuoteResolved
	}
	return quote, itv, nil
}

func (s *quoteService) logActivity(ctx context.Context, interventionID, userID, action string, details model.JSONMap) {
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
