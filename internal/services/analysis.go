package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/repos"
)

// AnalysisService runs the predictive pipeline: collect the recent
// observation windows, synthesize one inference call, normalize the response
// and persist the derived records. One invocation is one sequential pass;
// there is no background execution and no retained state between runs.
type AnalysisService interface {
	GeneratePredictiveAnalysis(ctx context.Context, ownerID, petID uuid.UUID) (*AnalysisOutcome, error)
}

type analysisService struct {
	log           *logger.Logger
	pets          repos.PetRepo
	diary         repos.DiaryEntryRepo
	metrics       repos.HealthMetricRepo
	wellness      repos.WellnessScoreRepo
	activity      repos.ActivityLogRepo
	predictions   repos.BehaviorPredictionRepo
	warnings      repos.EarlyWarningRepo
	interventions repos.InterventionRepo
	assessments   repos.RiskAssessmentRepo
	ai            AIClient
	runLock       RunLock

	now func() time.Time
}

func NewAnalysisService(
	baseLog *logger.Logger,
	pets repos.PetRepo,
	diary repos.DiaryEntryRepo,
	metrics repos.HealthMetricRepo,
	wellness repos.WellnessScoreRepo,
	activity repos.ActivityLogRepo,
	predictions repos.BehaviorPredictionRepo,
	warnings repos.EarlyWarningRepo,
	interventions repos.InterventionRepo,
	assessments repos.RiskAssessmentRepo,
	ai AIClient,
	runLock RunLock,
) AnalysisService {
	return &analysisService{
		log:           baseLog.With("service", "AnalysisService"),
		pets:          pets,
		diary:         diary,
		metrics:       metrics,
		wellness:      wellness,
		activity:      activity,
		predictions:   predictions,
		warnings:      warnings,
		interventions: interventions,
		assessments:   assessments,
		ai:            ai,
		runLock:       runLock,
		now:           time.Now,
	}
}

func (s *analysisService) GeneratePredictiveAnalysis(ctx context.Context, ownerID, petID uuid.UUID) (*AnalysisOutcome, error) {
	now := s.now()
	log := s.log.With("owner_id", ownerID.String(), "pet_id", petID.String())

	if s.runLock != nil {
		release, acquired, err := s.runLock.Acquire(ctx, ownerID, petID, now)
		if err != nil {
			// The guard is best-effort; a broken lock backend must not
			// take the pipeline down with it.
			log.Warn("Run lock unavailable, continuing unguarded", "error", err)
		} else if !acquired {
			log.Info("Analysis already in progress, skipping run")
			return &AnalysisOutcome{
				Generated: false,
				Message:   "an analysis for this pet is already in progress",
			}, nil
		} else {
			defer release()
		}
	}

	bundle, err := s.collect(ctx, ownerID, petID, now)
	if err != nil {
		return nil, fmt.Errorf("collect observations: %w", err)
	}

	if bundle.InsufficientData() {
		log.Info("Insufficient data for analysis, skipping inference")
		return &AnalysisOutcome{
			Generated: false,
			Message:   "insufficient data: add diary entries or health metrics before requesting an analysis",
		}, nil
	}

	prompt := buildAnalysisPrompt(bundle)
	log.Debug("Requesting synthesis",
		"diary_entries", len(bundle.Diary),
		"health_metrics", len(bundle.Metrics),
		"wellness_scores", len(bundle.Wellness),
		"activity_entries", len(bundle.Activity),
		"prompt_bytes", len(prompt),
	)

	raw, err := s.ai.Complete(ctx, analysisSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("inference call: %w", err)
	}

	result := normalizeSynthesis(raw, log)

	counts, err := s.persistDerivedRecords(ctx, ownerID, petID, bundle, result, now)
	if err != nil {
		return nil, err
	}

	log.Info("Predictive analysis complete",
		"predictions", counts.Predictions,
		"warnings", counts.Warnings,
		"interventions", counts.Interventions,
		"risk_score", counts.RiskScore,
	)
	return &AnalysisOutcome{
		Generated:     true,
		Predictions:   counts.Predictions,
		Warnings:      counts.Warnings,
		Interventions: counts.Interventions,
		RiskScore:     counts.RiskScore,
	}, nil
}
