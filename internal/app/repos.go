package app

import (
	"gorm.io/gorm"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/repos"
)

type Repos struct {
	Pet                repos.PetRepo
	DiaryEntry         repos.DiaryEntryRepo
	HealthMetric       repos.HealthMetricRepo
	WellnessScore      repos.WellnessScoreRepo
	ActivityLog        repos.ActivityLogRepo
	BehaviorPrediction repos.BehaviorPredictionRepo
	EarlyWarning       repos.EarlyWarningRepo
	Intervention       repos.InterventionRepo
	RiskAssessment     repos.RiskAssessmentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Pet:                repos.NewPetRepo(db, log),
		DiaryEntry:         repos.NewDiaryEntryRepo(db, log),
		HealthMetric:       repos.NewHealthMetricRepo(db, log),
		WellnessScore:      repos.NewWellnessScoreRepo(db, log),
		ActivityLog:        repos.NewActivityLogRepo(db, log),
		BehaviorPrediction: repos.NewBehaviorPredictionRepo(db, log),
		EarlyWarning:       repos.NewEarlyWarningRepo(db, log),
		Intervention:       repos.NewInterventionRepo(db, log),
		RiskAssessment:     repos.NewRiskAssessmentRepo(db, log),
	}
}
