package repos

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/types"
)

// newTestDB opens an isolated in-memory sqlite database and migrates the
// full schema. cache=shared keeps gorm's connection pool on one database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Pet{},
		&types.DiaryEntry{},
		&types.HealthMetric{},
		&types.WellnessScore{},
		&types.ActivityLog{},
		&types.BehaviorPrediction{},
		&types.EarlyWarning{},
		&types.InterventionRecommendation{},
		&types.RiskAssessment{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testLogger() *logger.Logger {
	return logger.NewNop()
}
