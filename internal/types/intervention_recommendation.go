package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InterventionRecommendation struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PetID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet                *Pet           `gorm:"constraint:OnDelete:CASCADE;foreignKey:PetID;references:ID" json:"pet,omitempty"`
	OwnerID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	InterventionType   string         `gorm:"not null;column:intervention_type" json:"intervention_type"`
	Priority           string         `gorm:"not null;column:priority" json:"priority"`
	Reasoning          string         `gorm:"column:reasoning" json:"reasoning"`
	RecommendedDate    time.Time      `gorm:"not null;column:recommended_date" json:"recommended_date"`
	SuccessProbability float64        `gorm:"column:success_probability" json:"success_probability"`
	EstimatedCost      *float64       `gorm:"column:estimated_cost" json:"estimated_cost,omitempty"`
	ExpectedOutcomes   datatypes.JSON `gorm:"type:jsonb;column:expected_outcomes" json:"expected_outcomes"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null" json:"updated_at"`
}

func (InterventionRecommendation) TableName() string { return "intervention_recommendation" }

func (r *InterventionRecommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
