package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
	pkgerrors "github.com/aumugisha-umu/seido-sub006/pkg/errors"
)

// TimeSlotRepository accès aux données créneaux
type TimeSlotRepository interface {
	CreateBatch(ctx context.Context, slots []model.TimeSlot) error
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	ListByIntervention(ctx context.Context, interventionID string) ([]model.TimeSlot, error)
	Update(ctx context.Context, slot *model.TimeSlot) error
	// MarkSelected passe le créneau à "selected" seulement s'il ne l'est pas déjà
	// et n'est pas annulé (garantie d'idempotence de la finalisation).
	MarkSelected(ctx context.Context, slotID string, flags model.TimeSlot) error
	// RejectOthers rejette les créneaux frères pending/requested de l'intervention.
	// Portée stricte : intervention + filtre de statut explicite.
	RejectOthers(ctx context.Context, interventionID, winnerID string) error
	Cancel(ctx context.Context, slotID, cancelledBy string) error
	// DeleteByIntervention retire les créneaux non résolus avant reprogrammation
	DeleteByIntervention(ctx context.Context, interventionID string) error
	UpdateSelectionFlags(ctx context.Context, slotID string, manager, provider, tenant bool) error
}

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo crée une instance de TimeSlotRepository
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) CreateBatch(ctx context.Context, slots []model.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&slots).Error
}

func (r *timeSlotRepo) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := r.db.WithContext(ctx).
		Preload("Responses").
		Where("time_slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepo) ListByIntervention(ctx context.Context, interventionID string) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Preload("Responses").
		Where("intervention_id = ?", interventionID).
		Order("slot_date, start_time").
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) Update(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *timeSlotRepo) MarkSelected(ctx context.Context, slotID string, flags model.TimeSlot) error {
	res := r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Where("time_slot_id = ? AND status NOT IN ?", slotID, []string{"selected", "cancelled"}).
		Updates(map[string]interface{}{
			"status":               "selected",
			"selected_by_manager":  flags.SelectedByManager,
			"selected_by_provider": flags.SelectedByProvider,
			"selected_by_tenant":   flags.SelectedByTenant,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *timeSlotRepo) RejectOthers(ctx context.Context, interventionID, winnerID string) error {
	return r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Where("intervention_id = ? AND time_slot_id <> ? AND status IN ?",
			interventionID, winnerID, []string{"pending", "requested"}).
		Update("status", "rejected").Error
}

func (r *timeSlotRepo) Cancel(ctx context.Context, slotID, cancelledBy string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Where("time_slot_id = ?", slotID).
		Updates(map[string]interface{}{
			"status":       "cancelled",
			"cancelled_by": cancelledBy,
			"cancelled_at": now,
		}).Error
}

func (r *timeSlotRepo) DeleteByIntervention(ctx context.Context, interventionID string) error {
	// Les réponses liées partent d'abord (pas de cascade en schéma)
	err := r.db.WithContext(ctx).
		Where("time_slot_id IN (?)",
			r.db.Model(&model.TimeSlot{}).
				Select("time_slot_id").
				Where("intervention_id = ? AND status IN ?", interventionID, []string{"pending", "requested", "rejected"}),
		).
		Delete(&model.TimeSlotResponse{}).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("intervention_id = ? AND status IN ?", interventionID, []string{"pending", "requested", "rejected"}).
		Delete(&model.TimeSlot{}).Error
}

func (r *timeSlotRepo) UpdateSelectionFlags(ctx context.Context, slotID string, manager, provider, tenant bool) error {
	return r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Where("time_slot_id = ?", slotID).
		Updates(map[string]interface{}{
			"selected_by_manager":  manager,
			"selected_by_provider": provider,
			"selected_by_tenant":   tenant,
		}).Error
}
