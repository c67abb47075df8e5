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

var ErrTeamNotFound = errors.New("équipe introuvable")

// TeamService gestion des équipes
type TeamService interface {
	Create(ctx context.Context, req *dto.CreateTeamRequest, actor *Actor) (*dto.TeamResponse, error)
	GetByID(ctx context.Context, id string, actor *Actor) (*dto.TeamResponse, error)
	List(ctx context.Context, actor *Actor) ([]dto.TeamResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeamRequest, actor *Actor) (*dto.TeamResponse, error)
	ListMembers(ctx context.Context, id string, actor *Actor) ([]dto.UserResponse, error)
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService crée le service équipes
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

func (s *teamService) Create(ctx context.Context, req *dto.CreateTeamRequest, actor *Actor) (*dto.TeamResponse, error) {
	if actor.Role != model.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	team := &model.Team{Name: req.Name}
	if err := s.repo.Team.Create(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Info("équipe créée", zap.String("team_id", team.TeamID), zap.String("name", team.Name))
	return toTeamResponse(team), nil
}

func (s *teamService) GetByID(ctx context.Context, id string, actor *Actor) (*dto.TeamResponse, error) {
	if actor.Role != model.RoleAdmin && actor.TeamID != id {
		return nil, ErrPermissionDenied
	}

	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (s *teamService) List(ctx context.Context, actor *Actor) ([]dto.TeamResponse, error) {
	if actor.Role != model.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	teams, err := s.repo.Team.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, *toTeamResponse(&teams[i]))
	}
	return items, nil
}

func (s *teamService) Update(ctx context.Context, id string, req *dto.UpdateTeamRequest, actor *Actor) (*dto.TeamResponse, error) {
	if actor.Role != model.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if err := s.repo.Team.Update(ctx, team); err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (s *teamService) ListMembers(ctx context.Context, id string, actor *Actor) ([]dto.UserResponse, error) {
	if !actor.IsManager() {
		return nil, ErrPermissionDenied
	}
	if actor.Role != model.RoleAdmin && actor.TeamID != id {
		return nil, ErrPermissionDenied
	}

	users, err := s.repo.User.ListByTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *toUserResponse(&users[i]))
	}
	return items, nil
}
