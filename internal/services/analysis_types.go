package services

import (
	"github.com/pawsense/pawsense-backend/internal/types"
)

// SynthesisResult is the typed judgment produced by one inference call. It is
// transient: the writer decomposes it into the four derived-record tables and
// it is never persisted as-is.
type SynthesisResult struct {
	Patterns           []BehaviorPattern    `json:"patterns"`
	HealthTrend        string               `json:"health_trend"`
	RiskFactors        []RiskFactor         `json:"risk_factors"`
	PredictedBehaviors []PredictedBehavior  `json:"predicted_behaviors"`
	EarlyWarnings      []WarningCandidate   `json:"early_warnings"`
	Interventions      []InterventionOption `json:"interventions"`
	OverallRiskScore   float64              `json:"overall_risk_score"`
	ConfidenceLevel    float64              `json:"confidence_level"`
}

type BehaviorPattern struct {
	Pattern    string   `json:"pattern"`
	Confidence float64  `json:"confidence"`
	Factors    []string `json:"factors"`
}

type RiskFactor struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type PredictedBehavior struct {
	Behavior    string  `json:"behavior"`
	Likelihood  float64 `json:"likelihood"`
	Timeframe   string  `json:"timeframe"`
	Description string  `json:"description"`
}

type WarningCandidate struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Message          string   `json:"message"`
	SuggestedActions []string `json:"suggested_actions"`
}

type InterventionOption struct {
	Type               string         `json:"type"`
	Priority           string         `json:"priority"`
	Reasoning          string         `json:"reasoning"`
	SuccessProbability float64        `json:"success_probability"`
	EstimatedCost      *float64       `json:"estimated_cost"`
	ExpectedOutcomes   map[string]any `json:"expected_outcomes"`
}

// analysisBundle is everything the collector gathers for one run.
type analysisBundle struct {
	Pet      *types.Pet
	Diary    []*types.DiaryEntry
	Metrics  []*types.HealthMetric
	Wellness []*types.WellnessScore
	Activity []*types.ActivityLog
}

// InsufficientData reports whether the run must short-circuit: with neither
// diary entries nor health metrics there is nothing worth sending to the
// inference provider.
func (b *analysisBundle) InsufficientData() bool {
	return len(b.Diary) == 0 && len(b.Metrics) == 0
}

// AnalysisOutcome is the caller-facing summary of one pipeline run.
type AnalysisOutcome struct {
	Generated     bool   `json:"generated"`
	Message       string `json:"message,omitempty"`
	Predictions   int    `json:"predictions"`
	Warnings      int    `json:"warnings"`
	Interventions int    `json:"interventions"`
	RiskScore     int    `json:"risk_score"`
}
