package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog records a recent user or system action about a pet.
// Entries are short-lived contextual signal, never analysed on their own.
type ActivityLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PetID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet       *Pet           `gorm:"constraint:OnDelete:CASCADE;foreignKey:PetID;references:ID" json:"pet,omitempty"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Action    string         `gorm:"not null;column:action" json:"action"`
	Detail    datatypes.JSON `gorm:"type:jsonb;column:detail" json:"detail"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (ActivityLog) TableName() string { return "activity_log" }

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
