package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BehaviorPrediction is an append-only derived record: one row per predicted
// behavior per analysis run.
type BehaviorPrediction struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PetID                uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet                  *Pet           `gorm:"constraint:OnDelete:CASCADE;foreignKey:PetID;references:ID" json:"pet,omitempty"`
	OwnerID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	PredictionDate       time.Time      `gorm:"not null;index;column:prediction_date" json:"prediction_date"`
	PredictionWindow     string         `gorm:"not null;column:prediction_window" json:"prediction_window"`
	PredictedBehaviors   datatypes.JSON `gorm:"type:jsonb;column:predicted_behaviors" json:"predicted_behaviors"`
	ConfidenceScores     datatypes.JSON `gorm:"type:jsonb;column:confidence_scores" json:"confidence_scores"`
	ContributingFactors  datatypes.JSON `gorm:"type:jsonb;column:contributing_factors" json:"contributing_factors"`
	CreatedAt            time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null" json:"updated_at"`
}

func (BehaviorPrediction) TableName() string { return "behavior_prediction" }

func (p *BehaviorPrediction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
