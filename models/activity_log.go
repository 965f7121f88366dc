package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog is an append-only audit record of what a user did.
type ActivityLog struct {
	ID           uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Action       string            `json:"action" db:"action" gorm:"type:text;not null"`
	ResourceType string            `json:"resource_type" db:"resource_type" gorm:"type:text;not null"`
	ResourceID   *uuid.UUID        `json:"resource_id,omitempty" db:"resource_id" gorm:"type:uuid"`
	Details      datatypes.JSONMap `json:"details,omitempty" db:"details"`
	Timestamp    time.Time         `json:"timestamp" db:"timestamp" gorm:"type:timestamp;not null;index"`
	IPAddress    *string           `json:"ip_address,omitempty" db:"ip_address" gorm:"type:text"`

	UserID uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}
