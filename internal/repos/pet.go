package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	pkgerrors "github.com/pawsense/pawsense-backend/internal/pkg/errors"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type PetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pet *types.Pet) (*types.Pet, error)
	GetByID(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID) (*types.Pet, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Pet, error)
}

type petRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPetRepo(db *gorm.DB, baseLog *logger.Logger) PetRepo {
	return &petRepo{db: db, log: baseLog.With("repo", "PetRepo")}
}

func (r *petRepo) Create(ctx context.Context, tx *gorm.DB, pet *types.Pet) (*types.Pet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(pet).Error; err != nil {
		return nil, err
	}
	return pet, nil
}

// GetByID is owner-scoped on purpose: a pet id belonging to another owner
// behaves exactly like a missing pet.
func (r *petRepo) GetByID(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID) (*types.Pet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var pet types.Pet
	err := transaction.WithContext(ctx).
		Where("id = ? AND owner_id = ?", petID, ownerID).
		First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &pet, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Pet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Pet
	if ownerID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
