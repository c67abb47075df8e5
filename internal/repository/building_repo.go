package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
)

// BuildingRepository accès aux données immeubles
type BuildingRepository interface {
	Create(ctx context.Context, building *model.Building) error
	GetByID(ctx context.Context, id string) (*model.Building, error)
	ListByTeam(ctx context.Context, teamID string) ([]model.Building, error)
	Update(ctx context.Context, building *model.Building) error
	Delete(ctx context.Context, id string) error
}

type buildingRepo struct {
	db *gorm.DB
}

// NewBuildingRepo crée une instance de BuildingRepository
func NewBuildingRepo(db *gorm.DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, building *model.Building) error {
	return r.db.WithContext(ctx).Create(building).Error
}

func (r *buildingRepo) GetByID(ctx context.Context, id string) (*model.Building, error) {
	var building model.Building
	err := r.db.WithContext(ctx).
		Preload("Lots").
		Where("building_id = ?", id).
		First(&building).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepo) ListByTeam(ctx context.Context, teamID string) ([]model.Building, error) {
	var buildings []model.Building
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name").
		Find(&buildings).Error
	return buildings, err
}

func (r *buildingRepo) Update(ctx context.Context, building *model.Building) error {
	return r.db.WithContext(ctx).Save(building).Error
}

func (r *buildingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("building_id = ?", id).
		Delete(&model.Building{}).Error
}
