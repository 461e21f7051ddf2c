package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type WellnessScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, score *types.WellnessScore) (*types.WellnessScore, error)
	ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.WellnessScore, error)
}

type wellnessScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWellnessScoreRepo(db *gorm.DB, baseLog *logger.Logger) WellnessScoreRepo {
	return &wellnessScoreRepo{db: db, log: baseLog.With("repo", "WellnessScoreRepo")}
}

func (r *wellnessScoreRepo) Create(ctx context.Context, tx *gorm.DB, score *types.WellnessScore) (*types.WellnessScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(score).Error; err != nil {
		return nil, err
	}
	return score, nil
}

func (r *wellnessScoreRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.WellnessScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.WellnessScore
	if ownerID == uuid.Nil || petID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ? AND score_date >= ?", petID, ownerID, since).
		Order("score_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
