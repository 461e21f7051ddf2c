package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WellnessScore is a 0-100 composite with a per-factor breakdown payload.
type WellnessScore struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PetID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet       *Pet           `gorm:"constraint:OnDelete:CASCADE;foreignKey:PetID;references:ID" json:"pet,omitempty"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Score     int            `gorm:"not null;column:score" json:"score"`
	Factors   datatypes.JSON `gorm:"type:jsonb;column:factors" json:"factors"`
	ScoreDate time.Time      `gorm:"not null;index;column:score_date" json:"score_date"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (WellnessScore) TableName() string { return "wellness_score" }

func (s *WellnessScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
