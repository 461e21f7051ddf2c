package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type DiaryEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.DiaryEntry) (*types.DiaryEntry, error)
	ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.DiaryEntry, error)
}

type diaryEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiaryEntryRepo(db *gorm.DB, baseLog *logger.Logger) DiaryEntryRepo {
	return &diaryEntryRepo{db: db, log: baseLog.With("repo", "DiaryEntryRepo")}
}

func (r *diaryEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.DiaryEntry) (*types.DiaryEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListSince returns entries on or after the cutoff, newest first, scoped to
// the (owner, pet) pair.
func (r *diaryEntryRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.DiaryEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.DiaryEntry
	if ownerID == uuid.Nil || petID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("pet_id = ? AND owner_id = ? AND entry_date >= ?", petID, ownerID, since).
		Order("entry_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
