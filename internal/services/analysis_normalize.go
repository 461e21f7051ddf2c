package services

import (
	"encoding/json"
	"strings"

	"github.com/pawsense/pawsense-backend/internal/logger"
)

const (
	fallbackRiskScore  = 50
	fallbackConfidence = 0.3
)

// neutralSynthesisResult is the documented fallback when the provider returns
// something that does not decode: empty lists, a stable trend, mid-scale risk
// and low confidence. The run continues on these values.
func neutralSynthesisResult() SynthesisResult {
	return SynthesisResult{
		Patterns:           []BehaviorPattern{},
		HealthTrend:        "stable",
		RiskFactors:        []RiskFactor{},
		PredictedBehaviors: []PredictedBehavior{},
		EarlyWarnings:      []WarningCandidate{},
		Interventions:      []InterventionOption{},
		OverallRiskScore:   fallbackRiskScore,
		ConfidenceLevel:    fallbackConfidence,
	}
}

// normalizeSynthesis decodes the raw completion into a SynthesisResult.
// Provider output is untrusted free text; any decode failure downgrades to
// the neutral fallback instead of failing the run.
func normalizeSynthesis(raw string, log *logger.Logger) SynthesisResult {
	cleaned := stripCodeFence(raw)

	var result SynthesisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		log.Warn("Inference output did not parse, using neutral fallback", "error", err)
		return neutralSynthesisResult()
	}

	switch result.HealthTrend {
	case "improving", "declining", "stable":
	default:
		result.HealthTrend = "stable"
	}
	if result.OverallRiskScore < 0 {
		result.OverallRiskScore = 0
	}
	if result.OverallRiskScore > 100 {
		result.OverallRiskScore = 100
	}
	if result.ConfidenceLevel < 0 || result.ConfidenceLevel > 1 {
		result.ConfidenceLevel = fallbackConfidence
	}

	if result.Patterns == nil {
		result.Patterns = []BehaviorPattern{}
	}
	if result.RiskFactors == nil {
		result.RiskFactors = []RiskFactor{}
	}
	if result.PredictedBehaviors == nil {
		result.PredictedBehaviors = []PredictedBehavior{}
	}
	if result.EarlyWarnings == nil {
		result.EarlyWarnings = []WarningCandidate{}
	}
	if result.Interventions == nil {
		result.Interventions = []InterventionOption{}
	}
	return result
}

// stripCodeFence unwraps ```json ... ``` fences that some models emit even in
// JSON mode, then trims to the outermost object.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
