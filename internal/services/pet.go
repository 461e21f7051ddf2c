package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	pkgerrors "github.com/pawsense/pawsense-backend/internal/pkg/errors"
	"github.com/pawsense/pawsense-backend/internal/repos"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type CreatePetInput struct {
	OwnerID          uuid.UUID
	Name             string
	Species          string
	Breed            string
	AgeMonths        int
	WeightKg         float64
	HealthConditions string
}

type PetService interface {
	Create(ctx context.Context, input CreatePetInput) (*types.Pet, error)
	Get(ctx context.Context, ownerID, petID uuid.UUID) (*types.Pet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Pet, error)
}

type petService struct {
	db   *gorm.DB
	log  *logger.Logger
	pets repos.PetRepo
}

func NewPetService(db *gorm.DB, baseLog *logger.Logger, pets repos.PetRepo) PetService {
	return &petService{
		db:   db,
		log:  baseLog.With("service", "PetService"),
		pets: pets,
	}
}

func (s *petService) Create(ctx context.Context, input CreatePetInput) (*types.Pet, error) {
	if input.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner id required", pkgerrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: pet name required", pkgerrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Species) == "" {
		return nil, fmt.Errorf("%w: species required", pkgerrors.ErrInvalidArgument)
	}

	pet := &types.Pet{
		OwnerID:          input.OwnerID,
		Name:             strings.TrimSpace(input.Name),
		Species:          strings.TrimSpace(input.Species),
		Breed:            strings.TrimSpace(input.Breed),
		AgeMonths:        input.AgeMonths,
		WeightKg:         input.WeightKg,
		HealthConditions: strings.TrimSpace(input.HealthConditions),
	}
	return s.pets.Create(ctx, nil, pet)
}

func (s *petService) Get(ctx context.Context, ownerID, petID uuid.UUID) (*types.Pet, error) {
	return s.pets.GetByID(ctx, nil, ownerID, petID)
}

func (s *petService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Pet, error) {
	return s.pets.ListByOwner(ctx, nil, ownerID)
}
