package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pawsense/pawsense-backend/internal/types"
)

const (
	predictionWindowLabel = "7_days"
	warningTTLDays        = 7
	interventionLeadDays  = 1
)

type writeCounts struct {
	Predictions   int
	Warnings      int
	Interventions int
	RiskScore     int
}

// persistDerivedRecords decomposes the synthesis result into the four
// derived-record tables. The three append-only kinds tolerate per-row
// failures (logged, skipped, count reduced); the risk-assessment upsert is
// the run's primary deliverable and its failure fails the run.
func (s *analysisService) persistDerivedRecords(ctx context.Context, ownerID, petID uuid.UUID, bundle *analysisBundle, result SynthesisResult, now time.Time) (writeCounts, error) {
	counts := writeCounts{}

	contributing := mustJSON(map[string]int{
		"diary_entries":    len(bundle.Diary),
		"health_metrics":   len(bundle.Metrics),
		"wellness_scores":  len(bundle.Wellness),
		"activity_entries": len(bundle.Activity),
	})

	for _, p := range result.PredictedBehaviors {
		row := &types.BehaviorPrediction{
			PetID:            petID,
			OwnerID:          ownerID,
			PredictionDate:   dateOnly(now),
			PredictionWindow: predictionWindowLabel,
			PredictedBehaviors: mustJSON(map[string]any{p.Behavior: map[string]any{
				"timeframe":   p.Timeframe,
				"description": p.Description,
			}}),
			ConfidenceScores:    mustJSON(map[string]float64{p.Behavior: p.Likelihood}),
			ContributingFactors: contributing,
		}
		if _, err := s.predictions.Create(ctx, nil, row); err != nil {
			s.log.Warn("Skipping behavior prediction insert", "behavior", p.Behavior, "error", err)
			continue
		}
		counts.Predictions++
	}

	for _, w := range result.EarlyWarnings {
		row := &types.EarlyWarning{
			PetID:        petID,
			OwnerID:      ownerID,
			WarningType:  w.Type,
			Severity:     w.Severity,
			AlertMessage: w.Message,
			PatternDetected: mustJSON(map[string]any{
				"patterns":   result.Patterns,
				"confidence": result.ConfidenceLevel,
			}),
			SuggestedActions: mustJSON(w.SuggestedActions),
			ExpiresAt:        now.AddDate(0, 0, warningTTLDays),
		}
		if _, err := s.warnings.Create(ctx, nil, row); err != nil {
			s.log.Warn("Skipping early warning insert", "type", w.Type, "error", err)
			continue
		}
		counts.Warnings++
	}

	for _, iv := range result.Interventions {
		row := &types.InterventionRecommendation{
			PetID:              petID,
			OwnerID:            ownerID,
			InterventionType:   iv.Type,
			Priority:           iv.Priority,
			Reasoning:          iv.Reasoning,
			RecommendedDate:    now.AddDate(0, 0, interventionLeadDays),
			SuccessProbability: iv.SuccessProbability,
			EstimatedCost:      iv.EstimatedCost,
			ExpectedOutcomes:   mustJSON(iv.ExpectedOutcomes),
		}
		if _, err := s.interventions.Create(ctx, nil, row); err != nil {
			s.log.Warn("Skipping intervention insert", "type", iv.Type, "error", err)
			continue
		}
		counts.Interventions++
	}

	riskScore := clampRiskScore(result.OverallRiskScore)
	assessment := &types.RiskAssessment{
		PetID:            petID,
		OwnerID:          ownerID,
		AssessmentDate:   dateOnly(now),
		OverallRiskScore: riskScore,
		RiskCategories:   mustJSON(categorizeRiskFactors(result.RiskFactors)),
		RiskFactors: mustJSON(map[string]any{
			"patterns":   result.Patterns,
			"trend":      result.HealthTrend,
			"confidence": result.ConfidenceLevel,
			"factors":    result.RiskFactors,
		}),
		Recommendations: mustJSON(interventionTypes(result.Interventions)),
		TrendDirection:  trendDirection(result.HealthTrend),
	}
	if _, err := s.assessments.Upsert(ctx, nil, assessment); err != nil {
		return counts, fmt.Errorf("persist risk assessment: %w", err)
	}
	counts.RiskScore = riskScore
	return counts, nil
}

// trendDirection maps the health-trend classification onto the risk trend:
// a declining pet means increasing risk.
func trendDirection(healthTrend string) string {
	switch healthTrend {
	case "declining":
		return "increasing"
	case "improving":
		return "decreasing"
	default:
		return "stable"
	}
}

func categorizeRiskFactors(factors []RiskFactor) map[string]int {
	out := map[string]int{
		"behavioral":    0,
		"physical":      0,
		"environmental": 0,
	}
	for _, f := range factors {
		if _, ok := out[f.Category]; ok {
			out[f.Category]++
		}
	}
	return out
}

func interventionTypes(interventions []InterventionOption) []string {
	out := make([]string, 0, len(interventions))
	for _, iv := range interventions {
		out = append(out, iv.Type)
	}
	return out
}

func clampRiskScore(v float64) int {
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func dateOnly(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

func mustJSON(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON([]byte("null"))
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(raw)
}
