package services

import (
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/pawsense/pawsense-backend/internal/types"
)

func testBundle() *analysisBundle {
	day := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	return &analysisBundle{
		Pet: &types.Pet{
			Name:             "Mochi",
			Species:          "cat",
			Breed:            "siamese",
			AgeMonths:        30,
			WeightKg:         4.2,
			HealthConditions: "mild asthma",
		},
		Diary: []*types.DiaryEntry{
			{
				MoodScore:    3,
				Note:         strings.Repeat("a very long behavioral note ", 20),
				BehaviorTags: datatypes.JSON([]byte(`["anxious","hiding"]`)),
				EntryDate:    day,
			},
		},
		Metrics: []*types.HealthMetric{
			{MetricType: "weight", Value: 4.1, Unit: "kg", RecordedAt: day},
		},
		Wellness: []*types.WellnessScore{
			{Score: 55, Factors: datatypes.JSON([]byte(`{"appetite":0.4}`)), ScoreDate: day},
		},
		Activity: []*types.ActivityLog{
			{Action: "diary_entry_added", CreatedAt: day},
		},
	}
}

func TestBuildAnalysisPromptContents(t *testing.T) {
	prompt := buildAnalysisPrompt(testBundle())

	for _, want := range []string{
		"Mochi",
		"siamese",
		"mild asthma",
		"mood 3/10",
		"anxious, hiding",
		"weight = 4.10 kg",
		"score 55/100",
		`"appetite":0.4`,
		"diary_entry_added",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildAnalysisPromptTruncatesNotes(t *testing.T) {
	bundle := testBundle()
	prompt := buildAnalysisPrompt(bundle)

	if strings.Contains(prompt, bundle.Diary[0].Note) {
		t.Fatalf("full note should not appear in prompt")
	}
	if !strings.Contains(prompt, bundle.Diary[0].Note[:noteTruncateLen]+"...") {
		t.Fatalf("truncated note missing from prompt")
	}
}

func TestBuildAnalysisPromptEmptySections(t *testing.T) {
	bundle := testBundle()
	bundle.Metrics = nil
	bundle.Wellness = nil
	bundle.Activity = nil

	prompt := buildAnalysisPrompt(bundle)
	if strings.Count(prompt, "- none") != 3 {
		t.Fatalf("expected three empty sections marked none:\n%s", prompt)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short)=%q", got)
	}
	if got := truncate("abcdefghij", 4); got != "abcd..." {
		t.Fatalf("truncate=%q, want abcd...", got)
	}
}

func TestFormatTags(t *testing.T) {
	if got := formatTags([]byte(`["a","b"]`)); got != "a, b" {
		t.Fatalf("formatTags=%q", got)
	}
	if got := formatTags(nil); got != "none" {
		t.Fatalf("formatTags(nil)=%q", got)
	}
	if got := formatTags([]byte(`not json`)); got != "none" {
		t.Fatalf("formatTags(bad)=%q", got)
	}
}
