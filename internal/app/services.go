package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/services"
)

type Services struct {
	AI          services.AIClient
	RunLock     services.RunLock
	Pet         services.PetService
	Observation services.ObservationService
	Insights    services.InsightsService
	Analysis    services.AnalysisService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	aiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init openai client: %w", err)
	}

	// The run lock is optional: without REDIS_ADDR the pipeline runs
	// unguarded and same-day duplicates land on the upsert.
	var runLock services.RunLock
	if os.Getenv("REDIS_ADDR") != "" {
		runLock, err = services.NewRedisRunLock(log)
		if err != nil {
			log.Warn("Run lock init failed, continuing without guard", "error", err)
			runLock = nil
		}
	}

	petSvc := services.NewPetService(db, log, r.Pet)
	obsSvc := services.NewObservationService(db, log, r.Pet, r.DiaryEntry, r.HealthMetric, r.WellnessScore, r.ActivityLog)
	insightsSvc := services.NewInsightsService(db, log, r.Pet, r.BehaviorPrediction, r.EarlyWarning, r.Intervention, r.RiskAssessment)
	analysisSvc := services.NewAnalysisService(
		log,
		r.Pet,
		r.DiaryEntry,
		r.HealthMetric,
		r.WellnessScore,
		r.ActivityLog,
		r.BehaviorPrediction,
		r.EarlyWarning,
		r.Intervention,
		r.RiskAssessment,
		aiClient,
		runLock,
	)

	return Services{
		AI:          aiClient,
		RunLock:     runLock,
		Pet:         petSvc,
		Observation: obsSvc,
		Insights:    insightsSvc,
		Analysis:    analysisSvc,
	}, nil
}
