package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string     `json:"name" db:"name" gorm:"type:text;not null"`
	Description *string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Status      TeamStatus `json:"status" db:"status" gorm:"type:text;not null;default:forming"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`

	HackathonID uuid.UUID `json:"hackathon_id" db:"hackathon_id" gorm:"type:uuid;not null;index"`

	Members     []Participant `json:"-" gorm:"foreignKey:TeamID;references:ID"`
	Submissions []Submission  `json:"-" gorm:"foreignKey:TeamID;references:ID"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	if t.Status == "" {
		t.Status = TeamForming
	}
	return nil
}
