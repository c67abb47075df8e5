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

var ErrLotNotFound = errors.New("lot introuvable")

// LotService gestion des lots locatifs
type LotService interface {
	Create(ctx context.Context, req *dto.CreateLotRequest, actor *Actor) (*dto.LotResponse, error)
	GetByID(ctx context.Context, id string, actor *Actor) (*dto.LotResponse, error)
	ListByBuilding(ctx context.Context, buildingID string, actor *Actor) ([]dto.LotResponse, error)
	ListMine(ctx context.Context, actor *Actor) ([]dto.LotResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateLotRequest, actor *Actor) (*dto.LotResponse, error)
	Delete(ctx context.Context, id string, actor *Actor) error
}

type lotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLotService crée le service lots
func NewLotService(repo *repository.Repository, logger *zap.Logger) LotService {
	return &lotService{repo: repo, logger: logger}
}

// buildingTeam charge l'immeuble parent et retourne son équipe
func (s *lotService) buildingTeam(ctx context.Context, buildingID string) (string, error) {
	building, err := s.repo.Building.GetByID(ctx, buildingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBuildingNotFound
		}
		return "", err
	}
	return building.TeamID, nil
}

func (s *lotService) Create(ctx context.Context, req *dto.CreateLotRequest, actor *Actor) (*dto.LotResponse, error) {
	teamID, err := s.buildingTeam(ctx, req.BuildingID)
	if err != nil {
		return nil, err
	}
	if !canManageBuilding(actor, teamID) {
		return nil, ErrPermissionDenied
	}

	category := req.Category
	if category == "" {
		category = model.LotCategoryAppartement
	}

	lot := &model.Lot{
		BuildingID: req.BuildingID,
		Reference:  req.Reference,
		Floor:      req.Floor,
		Category:   category,
		TenantID:   req.TenantID,
	}
	if err := s.repo.Lot.Create(ctx, lot); err != nil {
		return nil, err
	}

	s.logger.Info("lot créé",
		zap.String("lot_id", lot.LotID),
		zap.String("building_id", lot.BuildingID))

	return toLotResponse(lot), nil
}

func (s *lotService) GetByID(ctx context.Context, id string, actor *Actor) (*dto.LotResponse, error) {
	lot, err := s.repo.Lot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}

	// le locataire occupant voit son propre lot
	if lot.TenantID != nil && *lot.TenantID == actor.UserID {
		return toLotResponse(lot), nil
	}
	if lot.Building == nil || !canManageBuilding(actor, lot.Building.TeamID) {
		return nil, ErrPermissionDenied
	}
	return toLotResponse(lot), nil
}

func (s *lotService) ListByBuilding(ctx context.Context, buildingID string, actor *Actor) ([]dto.LotResponse, error) {
	teamID, err := s.buildingTeam(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if !canManageBuilding(actor, teamID) {
		return nil, ErrPermissionDenied
	}

	lots, err := s.repo.Lot.ListByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LotResponse, 0, len(lots))
	for i := range lots {
		items = append(items, *toLotResponse(&lots[i]))
	}
	return items, nil
}

// ListMine lots occupés par le locataire connecté
func (s *lotService) ListMine(ctx context.Context, actor *Actor) ([]dto.LotResponse, error) {
	lots, err := s.repo.Lot.ListByTenant(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LotResponse, 0, len(lots))
	for i := range lots {
		items = append(items, *toLotResponse(&lots[i]))
	}
	return items, nil
}

func (s *lotService) Update(ctx context.Context, id string, req *dto.UpdateLotRequest, actor *Actor) (*dto.LotResponse, error) {
	lot, err := s.repo.Lot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	if lot.Building == nil || !canManageBuilding(actor, lot.Building.TeamID) {
		return nil, ErrPermissionDenied
	}

	if req.Reference != nil {
		lot.Reference = *req.Reference
	}
	if req.Floor != nil {
		lot.Floor = req.Floor
	}
	if req.Category != nil {
		lot.Category = *req.Category
	}
	if req.TenantID != nil {
		lot.TenantID = req.TenantID
	}

	if err := s.repo.Lot.Update(ctx, lot); err != nil {
		return nil, err
	}
	return toLotResponse(lot), nil
}

func (s *lotService) Delete(ctx context.Context, id string, actor *Actor) error {
	lot, err := s.repo.Lot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLotNotFound
		}
		return err
	}
	if lot.Building == nil || !canManageBuilding(actor, lot.Building.TeamID) {
		return ErrPermissionDenied
	}
	return s.repo.Lot.Delete(ctx, id)
}
