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

var ErrBuildingNotFound = errors.New("immeuble introuvable")

// BuildingService gestion du parc immobilier
type BuildingService interface {
	Create(ctx context.Context, req *dto.CreateBuildingRequest, actor *Actor) (*dto.BuildingResponse, error)
	GetByID(ctx context.Context, id string, actor *Actor) (*dto.BuildingResponse, error)
	List(ctx context.Context, actor *Actor) ([]dto.BuildingResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateBuildingRequest, actor *Actor) (*dto.BuildingResponse, error)
	Delete(ctx context.Context, id string, actor *Actor) error
}

type buildingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBuildingService crée le service immeubles
func NewBuildingService(repo *repository.Repository, logger *zap.Logger) BuildingService {
	return &buildingService{repo: repo, logger: logger}
}

// canManageBuilding même règle que pour les interventions : admin partout,
// gestionnaire sur le parc de sa propre équipe.
func canManageBuilding(actor *Actor, teamID string) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	return actor.Role == model.RoleGestionnaire && actor.TeamID == teamID
}

func (s *buildingService) Create(ctx context.Context, req *dto.CreateBuildingRequest, actor *Actor) (*dto.BuildingResponse, error) {
	if !actor.IsManager() || actor.TeamID == "" {
		return nil, ErrPermissionDenied
	}

	building := &model.Building{
		TeamID:     actor.TeamID,
		Name:       req.Name,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
	}
	if err := s.repo.Building.Create(ctx, building); err != nil {
		return nil, err
	}

	s.logger.Info("immeuble créé",
		zap.String("building_id", building.BuildingID),
		zap.String("team_id", building.TeamID))

	return toBuildingResponse(building), nil
}

func (s *buildingService) GetByID(ctx context.Context, id string, actor *Actor) (*dto.BuildingResponse, error) {
	building, err := s.repo.Building.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	if !canManageBuilding(actor, building.TeamID) {
		return nil, ErrPermissionDenied
	}
	return toBuildingResponse(building), nil
}

func (s *buildingService) List(ctx context.Context, actor *Actor) ([]dto.BuildingResponse, error) {
	if !actor.IsManager() || actor.TeamID == "" {
		return nil, ErrPermissionDenied
	}

	buildings, err := s.repo.Building.ListByTeam(ctx, actor.TeamID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BuildingResponse, 0, len(buildings))
	for i := range buildings {
		items = append(items, *toBuildingResponse(&buildings[i]))
	}
	return items, nil
}

func (s *buildingService) Update(ctx context.Context, id string, req *dto.UpdateBuildingRequest, actor *Actor) (*dto.BuildingResponse, error) {
	building, err := s.repo.Building.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	if !canManageBuilding(actor, building.TeamID) {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		building.Name = *req.Name
	}
	if req.Address != nil {
		building.Address = *req.Address
	}
	if req.PostalCode != nil {
		building.PostalCode = *req.PostalCode
	}
	if req.City != nil {
		building.City = *req.City
	}

	if err := s.repo.Building.Update(ctx, building); err != nil {
		return nil, err
	}
	return toBuildingResponse(building), nil
}

func (s *buildingService) Delete(ctx context.Context, id string, actor *Actor) error {
	building, err := s.repo.Building.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBuildingNotFound
		}
		return err
	}
	if !canManageBuilding(actor, building.TeamID) {
		return ErrPermissionDenied
	}

	if err := s.repo.Building.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("immeuble supprimé",
		zap.String("building_id", id),
		zap.String("deleted_by", actor.UserID))
	return nil
}
