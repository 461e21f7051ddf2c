package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EarlyWarning is an append-only derived record; acknowledgment and dismissal
// are owned by external flows, this table only accumulates alerts until expiry.
type EarlyWarning struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PetID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet              *Pet           `gorm:"constraint:OnDelete:CASCADE;foreignKey:PetID;references:ID" json:"pet,omitempty"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	WarningType      string         `gorm:"not null;column:warning_type" json:"warning_type"`
	Severity         string         `gorm:"not null;column:severity" json:"severity"`
	AlertMessage     string         `gorm:"not null;column:alert_message" json:"alert_message"`
	PatternDetected  datatypes.JSON `gorm:"type:jsonb;column:pattern_detected" json:"pattern_detected"`
	SuggestedActions datatypes.JSON `gorm:"type:jsonb;column:suggested_actions" json:"suggested_actions"`
	ExpiresAt        time.Time      `gorm:"not null;index;column:expires_at" json:"expires_at"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (EarlyWarning) TableName() string { return "early_warning" }

func (w *EarlyWarning) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
