package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type BehaviorPredictionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, prediction *types.BehaviorPrediction) (*types.BehaviorPrediction, error)
	ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.BehaviorPrediction, error)
}

type behaviorPredictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBehaviorPredictionRepo(db *gorm.DB, baseLog *logger.Logger) BehaviorPredictionRepo {
	return &behaviorPredictionRepo{db: db, log: baseLog.With("repo", "BehaviorPredictionRepo")}
}

func (r *behaviorPredictionRepo) Create(ctx context.Context, tx *gorm.DB, prediction *types.BehaviorPrediction) (*types.BehaviorPrediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(prediction).Error; err != nil {
		return nil, err
	}
	return prediction, nil
}

func (r *behaviorPredictionRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.BehaviorPrediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.BehaviorPrediction
	if ownerID == uuid.Nil || petID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ? AND prediction_date >= ?", petID, ownerID, since).
		Order("prediction_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
