package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
)

// AssignmentRepository accès aux rattachements intervention/utilisateur
type AssignmentRepository interface {
	Upsert(ctx context.Context, assignment *model.InterventionAssignment) error
	Delete(ctx context.Context, interventionID, userID string) error
	Get(ctx context.Context, interventionID, userID string) (*model.InterventionAssignment, error)
	ListByIntervention(ctx context.Context, interventionID string) ([]model.InterventionAssignment, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo crée une instance de AssignmentRepository
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Upsert(ctx context.Context, assignment *model.InterventionAssignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "intervention_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "assigned_by"}),
		}).
		Create(assignment).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, interventionID, userID string) error {
	return r.db.WithContext(ctx).
		Where("intervention_id = ? AND user_id = ?", interventionID, userID).
		Delete(&model.InterventionAssignment{}).Error
}

func (r *assignmentRepo) Get(ctx context.Context, interventionID, userID string) (*model.InterventionAssignment, error) {
	var assignment model.InterventionAssignment
	err := r.db.WithContext(ctx).
		Where("intervention_id = ? AND user_id = ?", interventionID, userID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByIntervention(ctx context.Context, interventionID string) ([]model.InterventionAssignment, error) {
	var assignments []model.InterventionAssignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("intervention_id = ?", interventionID).
		Find(&assignments).Error
	return assignments, err
}
