package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type ActivityLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.ActivityLog) (*types.ActivityLog, error)
	ListRecent(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time, limit int) ([]*types.ActivityLog, error)
}

type activityLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityLogRepo(db *gorm.DB, baseLog *logger.Logger) ActivityLogRepo {
	return &activityLogRepo{db: db, log: baseLog.With("repo", "ActivityLogRepo")}
}

func (r *activityLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.ActivityLog) (*types.ActivityLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListRecent caps the result set; activity entries are contextual signal only.
func (r *activityLogRepo) ListRecent(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time, limit int) ([]*types.ActivityLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ActivityLog
	if ownerID == uuid.Nil || petID == uuid.Nil {
		return results, nil
	}
	q := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ? AND created_at >= ?", petID, ownerID, since).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
