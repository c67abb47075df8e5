package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
)

// TimeSlotResponseRepository accès aux réponses de créneaux
type TimeSlotResponseRepository interface {
	// Upsert insère ou met à jour la réponse (clé time_slot_id + user_id).
	// L'unicité par paire (créneau, utilisateur) est garantie par la clé primaire.
	Upsert(ctx context.Context, resp *model.TimeSlotResponse) error
	Get(ctx context.Context, slotID, userID string) (*model.TimeSlotResponse, error)
	ListBySlot(ctx context.Context, slotID string) ([]model.TimeSlotResponse, error)
}

type timeSlotResponseRepo struct {
	db *gorm.DB
}

// NewTimeSlotResponseRepo crée une instance de TimeSlotResponseRepository
func NewTimeSlotResponseRepo(db *gorm.DB) TimeSlotResponseRepository {
	return &timeSlotResponseRepo{db: db}
}

func (r *timeSlotResponseRepo) Upsert(ctx context.Context, resp *model.TimeSlotResponse) error {
	resp.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "time_slot_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_role", "response", "notes", "updated_at",
			}),
		}).
		Create(resp).Error
}

func (r *timeSlotResponseRepo) Get(ctx context.Context, slotID, userID string) (*model.TimeSlotResponse, error) {
	var resp model.TimeSlotResponse
	err := r.db.WithContext(ctx).
		Where("time_slot_id = ? AND user_id = ?", slotID, userID).
		First(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *timeSlotResponseRepo) ListBySlot(ctx context.Context, slotID string) ([]model.TimeSlotResponse, error) {
	var responses []model.TimeSlotResponse
	err := r.db.WithContext(ctx).
		Where("time_slot_id = ?", slotID).
		Find(&responses).Error
	return responses, err
}
