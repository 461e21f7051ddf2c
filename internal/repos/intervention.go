package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type InterventionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rec *types.InterventionRecommendation) (*types.InterventionRecommendation, error)
	ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.InterventionRecommendation, error)
}

type interventionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInterventionRepo(db *gorm.DB, baseLog *logger.Logger) InterventionRepo {
	return &interventionRepo{db: db, log: baseLog.With("repo", "InterventionRepo")}
}

func (r *interventionRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.InterventionRecommendation) (*types.InterventionRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *interventionRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.InterventionRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.InterventionRecommendation
	if ownerID == uuid.Nil || petID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ? AND created_at >= ?", petID, ownerID, since).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
