package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
	pkgerrors "github.com/aumugisha-umu/seido-sub006/pkg/errors"
)

// InterventionFilter critères de liste des interventions
type InterventionFilter struct {
	TeamID      string
	Status      string
	LotID       string
	RequestedBy string
	AssignedTo  string // via intervention_assignments
}

// InterventionRepository accès aux données interventions
type InterventionRepository interface {
	Create(ctx context.Context, itv *model.Intervention) error
	GetByID(ctx context.Context, id string) (*model.Intervention, error)
	Update(ctx context.Context, itv *model.Intervention) error
	// UpdateWithStatusGuard écrit l'intervention seulement si son statut en base
	// vaut encore expectedStatus (compare-and-swap) ; retourne ErrOptimisticLock sinon.
	// C'est la protection contre deux transitions concurrentes sur la même intervention.
	UpdateWithStatusGuard(ctx context.Context, itv *model.Intervention, expectedStatus string) error
	List(ctx context.Context, filter *InterventionFilter, offset, limit int) ([]model.Intervention, int64, error)
}

type interventionRepo struct {
	db *gorm.DB
}

// NewInterventionRepo crée une instance de InterventionRepository
func NewInterventionRepo(db *gorm.DB) InterventionRepository {
	return &interventionRepo{db: db}
}

func (r *interventionRepo) Create(ctx context.Context, itv *model.Intervention) error {
	return r.db.WithContext(ctx).Create(itv).Error
}

func (r *interventionRepo) GetByID(ctx context.Context, id string) (*model.Intervention, error) {
	var itv model.Intervention
	err := r.db.WithContext(ctx).
		Preload("Lot").
		Preload("Building").
		Preload("Tenant").
		Where("intervention_id = ?", id).
		First(&itv).Error
	if err != nil {
		return nil, err
	}
	return &itv, nil
}

func (r *interventionRepo) Update(ctx context.Context, itv *model.Intervention) error {
	return r.db.WithContext(ctx).Save(itv).Error
}

func (r *interventionRepo) UpdateWithStatusGuard(ctx context.Context, itv *model.Intervention, expectedStatus string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Intervention{}).
		Where("intervention_id = ? AND status = ?", itv.InterventionID, expectedStatus).
		Select("*").
		Omit("intervention_id", "created_at", "created_by").
		Updates(itv)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *interventionRepo) List(ctx context.Context, filter *InterventionFilter, offset, limit int) ([]model.Intervention, int64, error) {
	var items []model.Intervention
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Intervention{})
	if filter != nil {
		if filter.TeamID != "" {
			db = db.Where("interventions.team_id = ?", filter.TeamID)
		}
		if filter.Status != "" {
			db = db.Where("interventions.status = ?", filter.Status)
		}
		if filter.LotID != "" {
			db = db.Where("interventions.lot_id = ?", filter.LotID)
		}
		if filter.RequestedBy != "" {
			db = db.Where("interventions.requested_by = ?", filter.RequestedBy)
		}
		if filter.AssignedTo != "" {
			db = db.Joins("JOIN intervention_assignments ia ON ia.intervention_id = interventions.intervention_id").
				Where("ia.user_id = ?", filter.AssignedTo)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Lot").
		Order("interventions.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
