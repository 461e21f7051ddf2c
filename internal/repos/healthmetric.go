package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type HealthMetricRepo interface {
	Create(ctx context.Context, tx *gorm.DB, metric *types.HealthMetric) (*types.HealthMetric, error)
	ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.HealthMetric, error)
}

type healthMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHealthMetricRepo(db *gorm.DB, baseLog *logger.Logger) HealthMetricRepo {
	return &healthMetricRepo{db: db, log: baseLog.With("repo", "HealthMetricRepo")}
}

func (r *healthMetricRepo) Create(ctx context.Context, tx *gorm.DB, metric *types.HealthMetric) (*types.HealthMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(metric).Error; err != nil {
		return nil, err
	}
	return metric, nil
}

func (r *healthMetricRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.HealthMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.HealthMetric
	if ownerID == uuid.Nil || petID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ? AND recorded_at >= ?", petID, ownerID, since).
		Order("recorded_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
