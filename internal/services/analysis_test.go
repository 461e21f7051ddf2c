package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

// ---- fakes ----

type fakePetRepo struct {
	pet *types.Pet
	err error
}

func (f *fakePetRepo) Create(ctx context.Context, tx *gorm.DB, pet *types.Pet) (*types.Pet, error) {
	return pet, nil
}
func (f *fakePetRepo) GetByID(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID) (*types.Pet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pet, nil
}
func (f *fakePetRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Pet, error) {
	return nil, nil
}

type fakeDiaryRepo struct {
	entries  []*types.DiaryEntry
	err      error
	gotOwner uuid.UUID
	gotPet   uuid.UUID
	gotSince time.Time
}

func (f *fakeDiaryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.DiaryEntry) (*types.DiaryEntry, error) {
	return entry, nil
}
func (f *fakeDiaryRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.DiaryEntry, error) {
	f.gotOwner, f.gotPet, f.gotSince = ownerID, petID, since
	return f.entries, f.err
}

type fakeMetricRepo struct {
	metrics []*types.HealthMetric
	err     error
}

func (f *fakeMetricRepo) Create(ctx context.Context, tx *gorm.DB, metric *types.HealthMetric) (*types.HealthMetric, error) {
	return metric, nil
}
func (f *fakeMetricRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.HealthMetric, error) {
	return f.metrics, f.err
}

type fakeWellnessRepo struct {
	scores []*types.WellnessScore
}

func (f *fakeWellnessRepo) Create(ctx context.Context, tx *gorm.DB, score *types.WellnessScore) (*types.WellnessScore, error) {
	return score, nil
}
func (f *fakeWellnessRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.WellnessScore, error) {
	return f.scores, nil
}

type fakeActivityRepo struct {
	entries  []*types.ActivityLog
	gotLimit int
}

func (f *fakeActivityRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.ActivityLog) (*types.ActivityLog, error) {
	return entry, nil
}
func (f *fakeActivityRepo) ListRecent(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time, limit int) ([]*types.ActivityLog, error) {
	f.gotLimit = limit
	return f.entries, nil
}

type fakePredictionRepo struct {
	created []*types.BehaviorPrediction
}

func (f *fakePredictionRepo) Create(ctx context.Context, tx *gorm.DB, p *types.BehaviorPrediction) (*types.BehaviorPrediction, error) {
	f.created = append(f.created, p)
	return p, nil
}
func (f *fakePredictionRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.BehaviorPrediction, error) {
	return f.created, nil
}

type fakeWarningRepo struct {
	created []*types.EarlyWarning
}

func (f *fakeWarningRepo) Create(ctx context.Context, tx *gorm.DB, w *types.EarlyWarning) (*types.EarlyWarning, error) {
	f.created = append(f.created, w)
	return w, nil
}
func (f *fakeWarningRepo) ListActive(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, now time.Time) ([]*types.EarlyWarning, error) {
	return f.created, nil
}

type fakeInterventionRepo struct {
	created   []*types.InterventionRecommendation
	failOnNth int // 1-based; 0 means never fail
	calls     int
}

func (f *fakeInterventionRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.InterventionRecommendation) (*types.InterventionRecommendation, error) {
	f.calls++
	if f.failOnNth != 0 && f.calls == f.failOnNth {
		return nil, fmt.Errorf("constraint violation")
	}
	f.created = append(f.created, rec)
	return rec, nil
}
func (f *fakeInterventionRepo) ListSince(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, since time.Time) ([]*types.InterventionRecommendation, error) {
	return f.created, nil
}

type fakeAssessmentRepo struct {
	upserted []*types.RiskAssessment
	err      error
}

func (f *fakeAssessmentRepo) Upsert(ctx context.Context, tx *gorm.DB, a *types.RiskAssessment) (*types.RiskAssessment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.upserted = append(f.upserted, a)
	return a, nil
}
func (f *fakeAssessmentRepo) GetByDate(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID, date time.Time) (*types.RiskAssessment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAssessmentRepo) GetLatest(ctx context.Context, tx *gorm.DB, ownerID, petID uuid.UUID) (*types.RiskAssessment, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeAIClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return f.response, f.err
}

type fakeRunLock struct {
	busy     bool
	released bool
}

func (f *fakeRunLock) Acquire(ctx context.Context, ownerID, petID uuid.UUID, day time.Time) (func(), bool, error) {
	if f.busy {
		return nil, false, nil
	}
	return func() { f.released = true }, true, nil
}

// ---- helpers ----

type analysisFixture struct {
	svc           *analysisService
	pets          *fakePetRepo
	diary         *fakeDiaryRepo
	metrics       *fakeMetricRepo
	wellness      *fakeWellnessRepo
	activity      *fakeActivityRepo
	predictions   *fakePredictionRepo
	warnings      *fakeWarningRepo
	interventions *fakeInterventionRepo
	assessments   *fakeAssessmentRepo
	ai            *fakeAIClient

	ownerID uuid.UUID
	petID   uuid.UUID
	now     time.Time
}

func newAnalysisFixture(t *testing.T) *analysisFixture {
	t.Helper()
	ownerID := uuid.New()
	petID := uuid.New()
	now := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)

	f := &analysisFixture{
		pets: &fakePetRepo{pet: &types.Pet{
			ID: petID, OwnerID: ownerID, Name: "Rex", Species: "dog",
		}},
		diary: &fakeDiaryRepo{entries: []*types.DiaryEntry{
			{MoodScore: 4, EntryDate: now.AddDate(0, 0, -1), BehaviorTags: datatypes.JSON([]byte(`["anxious"]`))},
		}},
		metrics:       &fakeMetricRepo{},
		wellness:      &fakeWellnessRepo{},
		activity:      &fakeActivityRepo{},
		predictions:   &fakePredictionRepo{},
		warnings:      &fakeWarningRepo{},
		interventions: &fakeInterventionRepo{},
		assessments:   &fakeAssessmentRepo{},
		ai:            &fakeAIClient{response: validSynthesisJSON},
		ownerID:       ownerID,
		petID:         petID,
		now:           now,
	}

	svc := NewAnalysisService(
		logger.NewNop(),
		f.pets, f.diary, f.metrics, f.wellness, f.activity,
		f.predictions, f.warnings, f.interventions, f.assessments,
		f.ai, nil,
	).(*analysisService)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

const validSynthesisJSON = `{
	"patterns": [{"pattern": "anxious mornings", "confidence": 0.75, "factors": ["low mood"]}],
	"health_trend": "declining",
	"risk_factors": [
		{"category": "behavioral", "severity": "medium", "description": "anxiety"},
		{"category": "physical", "severity": "low", "description": "weight drift"}
	],
	"predicted_behaviors": [
		{"behavior": "hiding", "likelihood": 0.7, "timeframe": "3 days", "description": "withdrawal"},
		{"behavior": "reduced appetite", "likelihood": 0.5, "timeframe": "7 days", "description": "eating less"}
	],
	"early_warnings": [
		{"type": "anxiety", "severity": "medium", "message": "signs of stress", "suggested_actions": ["extra play"]}
	],
	"interventions": [
		{"type": "enrichment", "priority": "high", "reasoning": "boredom", "success_probability": 0.6, "estimated_cost": 25.0, "expected_outcomes": {"timeline": "2 weeks"}},
		{"type": "vet_visit", "priority": "medium", "reasoning": "rule out pain", "success_probability": 0.8, "estimated_cost": null, "expected_outcomes": {}},
		{"type": "routine_change", "priority": "low", "reasoning": "stability", "success_probability": 0.5, "estimated_cost": null, "expected_outcomes": {}}
	],
	"overall_risk_score": 68,
	"confidence_level": 0.8
}`

// ---- tests ----

func TestGeneratePredictiveAnalysisSuccess(t *testing.T) {
	f := newAnalysisFixture(t)

	outcome, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Generated {
		t.Fatalf("expected generated outcome, got %+v", outcome)
	}
	if outcome.Predictions != 2 || outcome.Warnings != 1 || outcome.Interventions != 3 {
		t.Fatalf("unexpected counts: %+v", outcome)
	}
	if outcome.RiskScore != 68 {
		t.Fatalf("risk score=%d, want 68", outcome.RiskScore)
	}

	if len(f.assessments.upserted) != 1 {
		t.Fatalf("expected exactly one risk assessment upsert, got %d", len(f.assessments.upserted))
	}
	assessment := f.assessments.upserted[0]
	if assessment.TrendDirection != "increasing" {
		t.Fatalf("trend_direction=%q, want increasing (declining health)", assessment.TrendDirection)
	}
	if !assessment.AssessmentDate.Equal(f.now.Truncate(24 * time.Hour)) {
		t.Fatalf("assessment_date=%v, want run date", assessment.AssessmentDate)
	}
}

func TestGeneratePredictiveAnalysisScoping(t *testing.T) {
	f := newAnalysisFixture(t)

	if _, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.diary.gotOwner != f.ownerID || f.diary.gotPet != f.petID {
		t.Fatalf("diary read not scoped: got (%s, %s)", f.diary.gotOwner, f.diary.gotPet)
	}
	for _, p := range f.predictions.created {
		if p.OwnerID != f.ownerID || p.PetID != f.petID {
			t.Fatalf("prediction row not scoped: %+v", p)
		}
	}
	for _, w := range f.warnings.created {
		if w.OwnerID != f.ownerID || w.PetID != f.petID {
			t.Fatalf("warning row not scoped: %+v", w)
		}
	}
	for _, iv := range f.interventions.created {
		if iv.OwnerID != f.ownerID || iv.PetID != f.petID {
			t.Fatalf("intervention row not scoped: %+v", iv)
		}
	}
	for _, a := range f.assessments.upserted {
		if a.OwnerID != f.ownerID || a.PetID != f.petID {
			t.Fatalf("assessment row not scoped: %+v", a)
		}
	}
}

func TestGeneratePredictiveAnalysisCollectWindows(t *testing.T) {
	f := newAnalysisFixture(t)

	if _, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSince := f.now.AddDate(0, 0, -observationWindowDays)
	if !f.diary.gotSince.Equal(wantSince) {
		t.Fatalf("diary window since=%v, want %v", f.diary.gotSince, wantSince)
	}
	if f.activity.gotLimit != activityLimit {
		t.Fatalf("activity limit=%d, want %d", f.activity.gotLimit, activityLimit)
	}
}

func TestGeneratePredictiveAnalysisInsufficientData(t *testing.T) {
	f := newAnalysisFixture(t)
	f.diary.entries = nil
	f.metrics.metrics = nil
	// wellness alone does not make a run viable
	f.wellness.scores = []*types.WellnessScore{{Score: 80, ScoreDate: f.now}}

	outcome, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Generated {
		t.Fatalf("expected short-circuit, got %+v", outcome)
	}
	if !strings.Contains(outcome.Message, "insufficient data") {
		t.Fatalf("message should mention insufficient data: %q", outcome.Message)
	}
	if f.ai.calls != 0 {
		t.Fatalf("inference must not be called on short-circuit")
	}
	if len(f.predictions.created)+len(f.warnings.created)+len(f.interventions.created)+len(f.assessments.upserted) != 0 {
		t.Fatalf("no derived records may be written on short-circuit")
	}
}

func TestGeneratePredictiveAnalysisMalformedInference(t *testing.T) {
	f := newAnalysisFixture(t)
	f.ai.response = "sorry, the dog ate my JSON"

	outcome, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Generated {
		t.Fatalf("fallback run should still complete: %+v", outcome)
	}
	if outcome.Predictions != 0 || outcome.Warnings != 0 || outcome.Interventions != 0 {
		t.Fatalf("fallback lists are empty, counts must be zero: %+v", outcome)
	}
	if outcome.RiskScore != fallbackRiskScore {
		t.Fatalf("risk score=%d, want fallback %d", outcome.RiskScore, fallbackRiskScore)
	}

	if len(f.assessments.upserted) != 1 {
		t.Fatalf("fallback run must still upsert the assessment")
	}
	if f.assessments.upserted[0].TrendDirection != "stable" {
		t.Fatalf("fallback trend_direction=%q, want stable", f.assessments.upserted[0].TrendDirection)
	}
}

func TestGeneratePredictiveAnalysisPartialWriteResilience(t *testing.T) {
	f := newAnalysisFixture(t)
	f.interventions.failOnNth = 2

	outcome, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Interventions != 2 {
		t.Fatalf("interventions=%d, want 2 of 3 after one failed insert", outcome.Interventions)
	}
	// the sibling record kinds are untouched by the failure
	if outcome.Predictions != 2 || outcome.Warnings != 1 {
		t.Fatalf("sibling counts changed: %+v", outcome)
	}
	if len(f.assessments.upserted) != 1 {
		t.Fatalf("assessment must still be upserted")
	}
}

func TestGeneratePredictiveAnalysisCollectionFailureIsFatal(t *testing.T) {
	f := newAnalysisFixture(t)
	f.diary.err = errors.New("connection refused")

	_, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID)
	if err == nil {
		t.Fatalf("expected fatal error on collection failure")
	}
	if f.ai.calls != 0 {
		t.Fatalf("inference must not run after collection failure")
	}
}

func TestGeneratePredictiveAnalysisInferenceFailureIsFatal(t *testing.T) {
	f := newAnalysisFixture(t)
	f.ai.err = errors.New("openai http 500: upstream exploded")
	f.ai.response = ""

	_, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID)
	if err == nil {
		t.Fatalf("expected fatal error on inference failure")
	}
	if len(f.assessments.upserted) != 0 {
		t.Fatalf("no writes may happen after inference failure")
	}
}

func TestGeneratePredictiveAnalysisUpsertFailureIsFatal(t *testing.T) {
	f := newAnalysisFixture(t)
	f.assessments.err = errors.New("unique index missing")

	_, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID)
	if err == nil {
		t.Fatalf("risk assessment upsert failure must fail the run")
	}
	// append-only writes before the upsert are not rolled back
	if len(f.predictions.created) == 0 {
		t.Fatalf("expected sibling writes to have happened before the upsert failed")
	}
}

func TestGeneratePredictiveAnalysisRunLockBusy(t *testing.T) {
	f := newAnalysisFixture(t)
	lock := &fakeRunLock{busy: true}
	f.svc.runLock = lock

	outcome, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Generated {
		t.Fatalf("busy lock should skip the run")
	}
	if f.ai.calls != 0 {
		t.Fatalf("inference must not run when the lock is busy")
	}
}

func TestGeneratePredictiveAnalysisRunLockReleased(t *testing.T) {
	f := newAnalysisFixture(t)
	lock := &fakeRunLock{}
	f.svc.runLock = lock

	if _, err := f.svc.GeneratePredictiveAnalysis(context.Background(), f.ownerID, f.petID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lock.released {
		t.Fatalf("lock must be released after the run")
	}
}

func TestTrendDirection(t *testing.T) {
	cases := map[string]string{
		"declining": "increasing",
		"improving": "decreasing",
		"stable":    "stable",
		"garbage":   "stable",
	}
	for in, want := range cases {
		if got := trendDirection(in); got != want {
			t.Fatalf("trendDirection(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestClampRiskScore(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{49.5, 50},
		{72.4, 72},
		{100, 100},
		{250, 100},
	}
	for _, tc := range cases {
		if got := clampRiskScore(tc.in); got != tc.want {
			t.Fatalf("clampRiskScore(%v)=%d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestCategorizeRiskFactors(t *testing.T) {
	got := categorizeRiskFactors([]RiskFactor{
		{Category: "behavioral"},
		{Category: "behavioral"},
		{Category: "physical"},
		{Category: "unknown_category"},
	})
	if got["behavioral"] != 2 || got["physical"] != 1 || got["environmental"] != 0 {
		t.Fatalf("unexpected categorization: %v", got)
	}
}
