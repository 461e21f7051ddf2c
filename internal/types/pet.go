package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name             string         `gorm:"not null;column:name" json:"name"`
	Species          string         `gorm:"not null;column:species" json:"species"`
	Breed            string         `gorm:"column:breed" json:"breed"`
	AgeMonths        int            `gorm:"column:age_months" json:"age_months"`
	WeightKg         float64        `gorm:"column:weight_kg" json:"weight_kg"`
	HealthConditions string         `gorm:"column:health_conditions" json:"health_conditions"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Pet) TableName() string { return "pet" }

func (p *Pet) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
