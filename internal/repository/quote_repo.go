package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
)

// QuoteRepository accès aux données devis
type QuoteRepository interface {
	Create(ctx context.Context, quote *model.Quote) error
	GetByID(ctx context.Context, id string) (*model.Quote, error)
	ListByIntervention(ctx context.Context, interventionID string) ([]model.Quote, error)
	Update(ctx context.Context, quote *model.Quote) error
	// HasActive vrai si des demandes de devis pending/sent subsistent pour l'intervention
	HasActive(ctx context.Context, interventionID string) (bool, error)
}

type quoteRepo struct {
	db *gorm.DB
}

// NewQuoteRepo crée une instance de QuoteRepository
func NewQuoteRepo(db *gorm.DB) QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, quote *model.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepo) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.WithContext(ctx).
		Preload("Provider").
		Where("quote_id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepo) ListByIntervention(ctx context.Context, interventionID string) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.WithContext(ctx).
		Preload("Provider").
		Where("intervention_id = ?", interventionID).
		Order("created_at").
		Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepo) Update(ctx context.Context, quote *model.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *quoteRepo) HasActive(ctx context.Context, interventionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Quote{}).
		Where("intervention_id = ? AND status IN ?", interventionID, []string{"pending", "sent"}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
