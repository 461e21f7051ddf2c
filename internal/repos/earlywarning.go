package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type EarlyWarningRepo interface {
	Create(ctx context.Context, tx *gorm.DB, warning *types.EarlyWarning) (*types.EarlyWarning, error)
	ListActive(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, now time.Time) ([]*types.EarlyWarning, error)
}

type earlyWarningRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEarlyWarningRepo(db *gorm.DB, baseLog *logger.Logger) EarlyWarningRepo {
	return &earlyWarningRepo{db: db, log: baseLog.With("repo", "EarlyWarningRepo")}
}

func (r *earlyWarningRepo) Create(ctx context.Context, tx *gorm.DB, warning *types.EarlyWarning) (*types.EarlyWarning, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(warning).Error; err != nil {
		return nil, err
	}
	return warning, nil
}

// ListActive returns unexpired warnings, newest first.
func (r *earlyWarningRepo) ListActive(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, now time.Time) ([]*types.EarlyWarning, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.EarlyWarning
	if ownerID == uuid.Nil || petID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ? AND expires_at > ?", petID, ownerID, now).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
