package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
)

// LotRepository accès aux données lots
type LotRepository interface {
	Create(ctx context.Context, lot *model.Lot) error
	GetByID(ctx context.Context, id string) (*model.Lot, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]model.Lot, error)
	ListByTenant(ctx context.Context, tenantID string) ([]model.Lot, error)
	Update(ctx context.Context, lot *model.Lot) error
	Delete(ctx context.Context, id string) error
}

type lotRepo struct {
	db *gorm.DB
}

// NewLotRepo crée une instance de LotRepository
func NewLotRepo(db *gorm.DB) LotRepository {
	return &lotRepo{db: db}
}

func (r *lotRepo) Create(ctx context.Context, lot *model.Lot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

func (r *lotRepo) GetByID(ctx context.Context, id string) (*model.Lot, error) {
	var lot model.Lot
	err := r.db.WithContext(ctx).
		Preload("Building").
		Preload("Tenant").
		Where("lot_id = ?", id).
		First(&lot).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *lotRepo) ListByBuilding(ctx context.Context, buildingID string) ([]model.Lot, error) {
	var lots []model.Lot
	err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("reference").
		Find(&lots).Error
	return lots, err
}

func (r *lotRepo) ListByTenant(ctx context.Context, tenantID string) ([]model.Lot, error) {
	var lots []model.Lot
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("tenant_id = ?", tenantID).
		Find(&lots).Error
	return lots, err
}

func (r *lotRepo) Update(ctx context.Context, lot *model.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

func (r *lotRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("lot_id = ?", id).
		Delete(&model.Lot{}).Error
}
