package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
)

// ActivityLogRepository journal d'activité — insertion et lecture uniquement,
// jamais de mise à jour ni de suppression
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *model.ActivityLog) error
	ListByIntervention(ctx context.Context, interventionID string) ([]model.ActivityLog, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo crée une instance de ActivityLogRepository
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Append(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepo) ListByIntervention(ctx context.Context, interventionID string) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).
		Where("intervention_id = ?", interventionID).
		Order("created_at").
		Find(&entries).Error
	return entries, err
}
