package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	pkgerrors "github.com/pawsense/pawsense-backend/internal/pkg/errors"
	"github.com/pawsense/pawsense-backend/internal/repos"
	"github.com/pawsense/pawsense-backend/internal/types"
)

type CreateDiaryEntryInput struct {
	MoodScore    int
	Note         string
	BehaviorTags []string
	EntryDate    time.Time
}

type CreateHealthMetricInput struct {
	MetricType string
	Value      float64
	Unit       string
	RecordedAt time.Time
}

type CreateWellnessScoreInput struct {
	Score     int
	Factors   map[string]float64
	ScoreDate time.Time
}

// ObservationService owns the pipeline's input tables: diary entries, health
// metrics, wellness scores and the activity log. Every write appends an
// activity entry so the analysis prompt sees recent actions as signal.
type ObservationService interface {
	AddDiaryEntry(ctx context.Context, ownerID, petID uuid.UUID, input CreateDiaryEntryInput) (*types.DiaryEntry, error)
	ListDiaryEntries(ctx context.Context, ownerID, petID uuid.UUID, since time.Time) ([]*types.DiaryEntry, error)
	AddHealthMetric(ctx context.Context, ownerID, petID uuid.UUID, input CreateHealthMetricInput) (*types.HealthMetric, error)
	ListHealthMetrics(ctx context.Context, ownerID, petID uuid.UUID, since time.Time) ([]*types.HealthMetric, error)
	AddWellnessScore(ctx context.Context, ownerID, petID uuid.UUID, input CreateWellnessScoreInput) (*types.WellnessScore, error)
	ListWellnessScores(ctx context.Context, ownerID, petID uuid.UUID, since time.Time) ([]*types.WellnessScore, error)
	RecordActivity(ctx context.Context, ownerID, petID uuid.UUID, action string, detail map[string]any) (*types.ActivityLog, error)
}

type observationService struct {
	db       *gorm.DB
	log      *logger.Logger
	pets     repos.PetRepo
	diary    repos.DiaryEntryRepo
	metrics  repos.HealthMetricRepo
	wellness repos.WellnessScoreRepo
	activity repos.ActivityLogRepo
}

func NewObservationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	pets repos.PetRepo,
	diary repos.DiaryEntryRepo,
	metrics repos.HealthMetricRepo,
	wellness repos.WellnessScoreRepo,
	activity repos.ActivityLogRepo,
) ObservationService {
	return &observationService{
		db:       db,
		log:      baseLog.With("service", "ObservationService"),
		pets:     pets,
		diary:    diary,
		metrics:  metrics,
		wellness: wellness,
		activity: activity,
	}
}

// requirePet confirms the (owner, pet) pair before any write, so an
// observation can never be attached to another owner's pet.
func (s *observationService) requirePet(ctx context.Context, ownerID, petID uuid.UUID) error {
	if _, err := s.pets.GetByID(ctx, nil, ownerID, petID); err != nil {
		return err
	}
	return nil
}

func (s *observationService) AddDiaryEntry(ctx context.Context, ownerID, petID uuid.UUID, input CreateDiaryEntryInput) (*types.DiaryEntry, error) {
	if input.MoodScore < 1 || input.MoodScore > 10 {
		return nil, fmt.Errorf("%w: mood score must be between 1 and 10", pkgerrors.ErrInvalidArgument)
	}
	if err := s.requirePet(ctx, ownerID, petID); err != nil {
		return nil, err
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}
	tags, err := json.Marshal(input.BehaviorTags)
	if err != nil {
		return nil, fmt.Errorf("encode behavior tags: %w", err)
	}

	entry := &types.DiaryEntry{
		PetID:        petID,
		OwnerID:      ownerID,
		MoodScore:    input.MoodScore,
		Note:         input.Note,
		BehaviorTags: datatypes.JSON(tags),
		EntryDate:    entryDate,
	}
	created, err := s.diary.Create(ctx, nil, entry)
	if err != nil {
		return nil, err
	}
	s.appendActivity(ctx, ownerID, petID, "diary_entry_added", map[string]any{"mood_score": input.MoodScore})
	return created, nil
}

func (s *observationService) ListDiaryEntries(ctx context.Context, ownerID, petID uuid.UUID, since time.Time) ([]*types.DiaryEntry, error) {
	return s.diary.ListSince(ctx, nil, ownerID, petID, since)
}

func (s *observationService) AddHealthMetric(ctx context.Context, ownerID, petID uuid.UUID, input CreateHealthMetricInput) (*types.HealthMetric, error) {
	if strings.TrimSpace(input.MetricType) == "" {
		return nil, fmt.Errorf("%w: metric type required", pkgerrors.ErrInvalidArgument)
	}
	if err := s.requirePet(ctx, ownerID, petID); err != nil {
		return nil, err
	}

	recordedAt := input.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	metric := &types.HealthMetric{
		PetID:      petID,
		OwnerID:    ownerID,
		MetricType: strings.TrimSpace(input.MetricType),
		Value:      input.Value,
		Unit:       strings.TrimSpace(input.Unit),
		RecordedAt: recordedAt,
	}
	created, err := s.metrics.Create(ctx, nil, metric)
	if err != nil {
		return nil, err
	}
	s.appendActivity(ctx, ownerID, petID, "health_metric_recorded", map[string]any{"metric_type": metric.MetricType})
	return created, nil
}

func (s *observationService) ListHealthMetrics(ctx context.Context, ownerID, petID uuid.UUID, since time.Time) ([]*types.HealthMetric, error) {
	return s.metrics.ListSince(ctx, nil, ownerID, petID, since)
}

func (s *observationService) AddWellnessScore(ctx context.Context, ownerID, petID uuid.UUID, input CreateWellnessScoreInput) (*types.WellnessScore, error) {
	if input.Score < 0 || input.Score > 100 {
		return nil, fmt.Errorf("%w: wellness score must be between 0 and 100", pkgerrors.ErrInvalidArgument)
	}
	if err := s.requirePet(ctx, ownerID, petID); err != nil {
		return nil, err
	}

	scoreDate := input.ScoreDate
	if scoreDate.IsZero() {
		scoreDate = time.Now()
	}
	factors, err := json.Marshal(input.Factors)
	if err != nil {
		return nil, fmt.Errorf("encode factors: %w", err)
	}
	score := &types.WellnessScore{
		PetID:     petID,
		OwnerID:   ownerID,
		Score:     input.Score,
		Factors:   datatypes.JSON(factors),
		ScoreDate: scoreDate,
	}
	created, err := s.wellness.Create(ctx, nil, score)
	if err != nil {
		return nil, err
	}
	s.appendActivity(ctx, ownerID, petID, "wellness_score_recorded", map[string]any{"score": input.Score})
	return created, nil
}

func (s *observationService) ListWellnessScores(ctx context.Context, ownerID, petID uuid.UUID, since time.Time) ([]*types.WellnessScore, error) {
	return s.wellness.ListSince(ctx, nil, ownerID, petID, since)
}

func (s *observationService) RecordActivity(ctx context.Context, ownerID, petID uuid.UUID, action string, detail map[string]any) (*types.ActivityLog, error) {
	if strings.TrimSpace(action) == "" {
		return nil, fmt.Errorf("%w: action required", pkgerrors.ErrInvalidArgument)
	}
	if err := s.requirePet(ctx, ownerID, petID); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("encode detail: %w", err)
	}
	return s.activity.Create(ctx, nil, &types.ActivityLog{
		PetID:   petID,
		OwnerID: ownerID,
		Action:  strings.TrimSpace(action),
		Detail:  datatypes.JSON(raw),
	})
}

// appendActivity is fire-and-forget context signal; failures are logged only.
func (s *observationService) appendActivity(ctx context.Context, ownerID, petID uuid.UUID, action string, detail map[string]any) {
	raw, err := json.Marshal(detail)
	if err != nil {
		return
	}
	if _, err := s.activity.Create(ctx, nil, &types.ActivityLog{
		PetID:   petID,
		OwnerID: ownerID,
		Action:  action,
		Detail:  datatypes.JSON(raw),
	}); err != nil {
		s.log.Warn("Failed to append activity entry", "action", action, "error", err)
	}
}
