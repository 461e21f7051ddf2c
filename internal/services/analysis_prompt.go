package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

const analysisSystemPrompt = `You are a veterinary behavior specialist. You analyze pet observation data and respond with a single JSON object, nothing else, using this exact shape:
{
  "patterns": [{"pattern": string, "confidence": number 0-1, "factors": [string]}],
  "health_trend": "improving" | "declining" | "stable",
  "risk_factors": [{"category": string, "severity": "low" | "medium" | "high", "description": string}],
  "predicted_behaviors": [{"behavior": string, "likelihood": number 0-1, "timeframe": string, "description": string}],
  "early_warnings": [{"type": string, "severity": "low" | "medium" | "high", "message": string, "suggested_actions": [string]}],
  "interventions": [{"type": string, "priority": "low" | "medium" | "high", "reasoning": string, "success_probability": number 0-1, "estimated_cost": number or null, "expected_outcomes": object}],
  "overall_risk_score": number 0-100,
  "confidence_level": number 0-1
}`

const noteTruncateLen = 200

// buildAnalysisPrompt flattens the collected bundle into one structured text
// prompt. Everything the synthesizer knows about the pet goes through here.
func buildAnalysisPrompt(bundle *analysisBundle) string {
	var b strings.Builder

	pet := bundle.Pet
	b.WriteString("PET PROFILE\n")
	fmt.Fprintf(&b, "- Name: %s\n", pet.Name)
	fmt.Fprintf(&b, "- Species: %s, Breed: %s\n", pet.Species, orUnknown(pet.Breed))
	fmt.Fprintf(&b, "- Age: %d months, Weight: %.1f kg\n", pet.AgeMonths, pet.WeightKg)
	fmt.Fprintf(&b, "- Known health conditions: %s\n", orUnknown(pet.HealthConditions))

	fmt.Fprintf(&b, "\nDIARY ENTRIES (last %d days, newest first, %d total)\n", observationWindowDays, len(bundle.Diary))
	if len(bundle.Diary) == 0 {
		b.WriteString("- none\n")
	}
	for _, e := range bundle.Diary {
		fmt.Fprintf(&b, "- %s | mood %d/10 | tags: %s | %s\n",
			e.EntryDate.Format("2006-01-02"),
			e.MoodScore,
			formatTags(e.BehaviorTags),
			truncate(e.Note, noteTruncateLen),
		)
	}

	fmt.Fprintf(&b, "\nHEALTH METRICS (last %d days, newest first, %d total)\n", observationWindowDays, len(bundle.Metrics))
	if len(bundle.Metrics) == 0 {
		b.WriteString("- none\n")
	}
	for _, m := range bundle.Metrics {
		fmt.Fprintf(&b, "- %s | %s = %.2f %s\n",
			m.RecordedAt.Format("2006-01-02 15:04"),
			m.MetricType, m.Value, m.Unit,
		)
	}

	fmt.Fprintf(&b, "\nWELLNESS SCORES (last %d days, newest first, %d total)\n", observationWindowDays, len(bundle.Wellness))
	if len(bundle.Wellness) == 0 {
		b.WriteString("- none\n")
	}
	for _, w := range bundle.Wellness {
		fmt.Fprintf(&b, "- %s | score %d/100 | factors: %s\n",
			w.ScoreDate.Format("2006-01-02"),
			w.Score,
			compactJSON(w.Factors),
		)
	}

	fmt.Fprintf(&b, "\nRECENT ACTIVITY (last %d days, max %d)\n", activityWindowDays, activityLimit)
	if len(bundle.Activity) == 0 {
		b.WriteString("- none\n")
	}
	for _, a := range bundle.Activity {
		fmt.Fprintf(&b, "- %s | %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Action)
	}

	b.WriteString("\nAnalyze the data above and respond with the JSON object described in your instructions.")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func formatTags(raw []byte) string {
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil || len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}

func compactJSON(raw []byte) string {
	if len(raw) == 0 {
		return "{}"
	}
	return string(raw)
}
