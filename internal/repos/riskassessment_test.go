package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pawsense/pawsense-backend/internal/types"
)

func TestRiskAssessmentUpsertReplacesSameDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewRiskAssessmentRepo(db, testLogger())
	ctx := context.Background()

	ownerID := uuid.New()
	petID := uuid.New()
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	first := &types.RiskAssessment{
		PetID:            petID,
		OwnerID:          ownerID,
		AssessmentDate:   day,
		OverallRiskScore: 40,
		RiskCategories:   datatypes.JSON([]byte(`{"behavioral":1}`)),
		TrendDirection:   "stable",
	}
	if _, err := repo.Upsert(ctx, nil, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &types.RiskAssessment{
		PetID:            petID,
		OwnerID:          ownerID,
		AssessmentDate:   day,
		OverallRiskScore: 75,
		RiskCategories:   datatypes.JSON([]byte(`{"behavioral":3}`)),
		TrendDirection:   "increasing",
	}
	if _, err := repo.Upsert(ctx, nil, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := db.Model(&types.RiskAssessment{}).
		Where("pet_id = ? AND owner_id = ?", petID, ownerID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one assessment row, got %d", count)
	}

	got, err := repo.GetByDate(ctx, nil, ownerID, petID, day)
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got.OverallRiskScore != 75 {
		t.Fatalf("overall_risk_score=%d, want second run's 75", got.OverallRiskScore)
	}
	if got.TrendDirection != "increasing" {
		t.Fatalf("trend_direction=%q, want second run's increasing", got.TrendDirection)
	}
}

func TestRiskAssessmentDistinctDaysAccumulate(t *testing.T) {
	db := newTestDB(t)
	repo := NewRiskAssessmentRepo(db, testLogger())
	ctx := context.Background()

	ownerID := uuid.New()
	petID := uuid.New()
	day1 := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	for i, day := range []time.Time{day1, day2} {
		a := &types.RiskAssessment{
			PetID:            petID,
			OwnerID:          ownerID,
			AssessmentDate:   day,
			OverallRiskScore: 30 + i,
			TrendDirection:   "stable",
		}
		if _, err := repo.Upsert(ctx, nil, a); err != nil {
			t.Fatalf("upsert day %d: %v", i, err)
		}
	}

	var count int64
	if err := db.Model(&types.RiskAssessment{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two rows across two days, got %d", count)
	}
}

func TestRiskAssessmentGetLatest(t *testing.T) {
	db := newTestDB(t)
	repo := NewRiskAssessmentRepo(db, testLogger())
	ctx := context.Background()

	ownerID := uuid.New()
	petID := uuid.New()

	for i := 0; i < 3; i++ {
		a := &types.RiskAssessment{
			PetID:            petID,
			OwnerID:          ownerID,
			AssessmentDate:   time.Date(2026, 8, 20+i, 0, 0, 0, 0, time.UTC),
			OverallRiskScore: 10 * i,
			TrendDirection:   "stable",
		}
		if _, err := repo.Upsert(ctx, nil, a); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	got, err := repo.GetLatest(ctx, nil, ownerID, petID)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if got.OverallRiskScore != 20 {
		t.Fatalf("latest score=%d, want 20", got.OverallRiskScore)
	}
}

func TestRiskAssessmentScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewRiskAssessmentRepo(db, testLogger())
	ctx := context.Background()

	petID := uuid.New()
	ownerA := uuid.New()
	ownerB := uuid.New()
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	a := &types.RiskAssessment{
		PetID:            petID,
		OwnerID:          ownerA,
		AssessmentDate:   day,
		OverallRiskScore: 60,
		TrendDirection:   "stable",
	}
	if _, err := repo.Upsert(ctx, nil, a); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := repo.GetByDate(ctx, nil, ownerB, petID, day); err == nil {
		t.Fatalf("owner B must not read owner A's assessment")
	}
}
