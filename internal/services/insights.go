package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	pkgerrors "github.com/pawsense/pawsense-backend/internal/pkg/errors"
	"github.com/pawsense/pawsense-backend/internal/repos"
	"github.com/pawsense/pawsense-backend/internal/types"
)

// PetInsights is the read model for consumers of the derived records: the
// latest risk assessment, unexpired warnings and the last week of
// predictions and interventions.
type PetInsights struct {
	RiskAssessment *types.RiskAssessment               `json:"risk_assessment,omitempty"`
	Warnings       []*types.EarlyWarning               `json:"warnings"`
	Predictions    []*types.BehaviorPrediction         `json:"predictions"`
	Interventions  []*types.InterventionRecommendation `json:"interventions"`
}

type InsightsService interface {
	GetPetInsights(ctx context.Context, ownerID, petID uuid.UUID) (*PetInsights, error)
}

type insightsService struct {
	db            *gorm.DB
	log           *logger.Logger
	pets          repos.PetRepo
	predictions   repos.BehaviorPredictionRepo
	warnings      repos.EarlyWarningRepo
	interventions repos.InterventionRepo
	assessments   repos.RiskAssessmentRepo
}

func NewInsightsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	pets repos.PetRepo,
	predictions repos.BehaviorPredictionRepo,
	warnings repos.EarlyWarningRepo,
	interventions repos.InterventionRepo,
	assessments repos.RiskAssessmentRepo,
) InsightsService {
	return &insightsService{
		db:            db,
		log:           baseLog.With("service", "InsightsService"),
		pets:          pets,
		predictions:   predictions,
		warnings:      warnings,
		interventions: interventions,
		assessments:   assessments,
	}
}

func (s *insightsService) GetPetInsights(ctx context.Context, ownerID, petID uuid.UUID) (*PetInsights, error) {
	if _, err := s.pets.GetByID(ctx, nil, ownerID, petID); err != nil {
		return nil, err
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	out := &PetInsights{
		Warnings:      []*types.EarlyWarning{},
		Predictions:   []*types.BehaviorPrediction{},
		Interventions: []*types.InterventionRecommendation{},
	}

	assessment, err := s.assessments.GetLatest(ctx, nil, ownerID, petID)
	if err != nil && !errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, err
	}
	out.RiskAssessment = assessment

	warnings, err := s.warnings.ListActive(ctx, nil, ownerID, petID, now)
	if err != nil {
		return nil, err
	}
	out.Warnings = warnings

	predictions, err := s.predictions.ListSince(ctx, nil, ownerID, petID, weekAgo)
	if err != nil {
		return nil, err
	}
	out.Predictions = predictions

	interventions, err := s.interventions.ListSince(ctx, nil, ownerID, petID, weekAgo)
	if err != nil {
		return nil, err
	}
	out.Interventions = interventions

	return out, nil
}
