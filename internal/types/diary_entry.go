package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DiaryEntry is a mood/behavior note contributed by the owner.
// MoodScore ranges 1-10; BehaviorTags holds a JSON array of strings.
type DiaryEntry struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PetID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet          *Pet           `gorm:"constraint:OnDelete:CASCADE;foreignKey:PetID;references:ID" json:"pet,omitempty"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	MoodScore    int            `gorm:"not null;column:mood_score" json:"mood_score"`
	Note         string         `gorm:"column:note" json:"note"`
	BehaviorTags datatypes.JSON `gorm:"type:jsonb;column:behavior_tags" json:"behavior_tags"`
	EntryDate    time.Time      `gorm:"not null;index;column:entry_date" json:"entry_date"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DiaryEntry) TableName() string { return "diary_entry" }

func (e *DiaryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
