package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RiskAssessment holds at most one row per (owner, pet, assessment day).
// The unique index is what makes the daily upsert idempotent; AssessmentDate
// is stored truncated to midnight UTC.
type RiskAssessment struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PetID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_risk_owner_pet_date" json:"pet_id"`
	Pet              *Pet           `gorm:"constraint:OnDelete:CASCADE;foreignKey:PetID;references:ID" json:"pet,omitempty"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_risk_owner_pet_date" json:"owner_id"`
	AssessmentDate   time.Time      `gorm:"not null;uniqueIndex:idx_risk_owner_pet_date;column:assessment_date" json:"assessment_date"`
	OverallRiskScore int            `gorm:"not null;column:overall_risk_score" json:"overall_risk_score"`
	RiskCategories   datatypes.JSON `gorm:"type:jsonb;column:risk_categories" json:"risk_categories"`
	RiskFactors      datatypes.JSON `gorm:"type:jsonb;column:risk_factors" json:"risk_factors"`
	Recommendations  datatypes.JSON `gorm:"type:jsonb;column:recommendations" json:"recommendations"`
	TrendDirection   string         `gorm:"not null;column:trend_direction" json:"trend_direction"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (RiskAssessment) TableName() string { return "risk_assessment" }

func (a *RiskAssessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
