package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
)

var (
	ErrUserNotFound = errors.New("utilisateur introuvable")
	ErrEmailTaken   = errors.New("cette adresse email est déjà utilisée")
)

// UserService gestion des comptes utilisateurs
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, actor *Actor) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, actor *Actor) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest, actor *Actor) ([]dto.UserResponse, int64, error)
	AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, actor *Actor) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, id string, req *dto.ResetPasswordRequest, actor *Actor) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService crée le service utilisateurs
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, actor *Actor) (*dto.UserResponse, error) {
	if !actor.IsManager() {
		return nil, ErrPermissionDenied
	}
	// seul un admin peut créer d'autres comptes de gestion
	if model.IsManagerRole(req.Role) && actor.Role != model.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	teamID := req.TeamID
	if teamID == nil && req.Role == model.RoleGestionnaire && actor.TeamID != "" {
		// un gestionnaire rattache par défaut à sa propre équipe
		teamID = &actor.TeamID
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		TeamID:       teamID,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("utilisateur créé",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role),
		zap.String("created_by", actor.UserID))

	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, actor *Actor) (*dto.UserResponse, error) {
	// chacun peut modifier son propre profil ; la gestion peut modifier tout le monde
	if id != actor.UserID && !actor.IsManager() {
		return nil, ErrPermissionDenied
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		// la désactivation de compte est réservée à la gestion
		if !actor.IsManager() {
			return nil, ErrPermissionDenied
		}
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, actor *Actor) (*dto.UserResponse, error) {
	if actor.Role != model.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = req.Role
	if req.TeamID != nil {
		user.TeamID = req.TeamID
	}
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("rôle réassigné",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role),
		zap.String("assigned_by", actor.UserID))

	return toUserResponse(user), nil
}

func (s *userService) ResetPassword(ctx context.Context, id string, req *dto.ResetPasswordRequest, actor *Actor) error {
	if actor.Role != model.RoleAdmin {
		return ErrPermissionDenied
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("mot de passe réinitialisé",
		zap.String("user_id", user.UserID),
		zap.String("reset_by", actor.UserID))

	return nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest, actor *Actor) ([]dto.UserResponse, int64, error) {
	if !actor.IsManager() {
		return nil, 0, ErrPermissionDenied
	}

	users, total, err := s.repo.User.List(ctx, req.Role, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *toUserResponse(&users[i]))
	}
	return items, total, nil
}
