package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthMetric struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PetID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet        *Pet           `gorm:"constraint:OnDelete:CASCADE;foreignKey:PetID;references:ID" json:"pet,omitempty"`
	OwnerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	MetricType string         `gorm:"not null;column:metric_type" json:"metric_type"`
	Value      float64        `gorm:"not null;column:value" json:"value"`
	Unit       string         `gorm:"column:unit" json:"unit"`
	RecordedAt time.Time      `gorm:"not null;index;column:recorded_at" json:"recorded_at"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (HealthMetric) TableName() string { return "health_metric" }

func (m *HealthMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
