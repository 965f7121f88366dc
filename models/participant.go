package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Participant applied to one hackathon and may have joined one of its teams.
type Participant struct {
	ID                uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name              string            `json:"name" db:"name" gorm:"type:text;not null"`
	Email             string            `json:"email" db:"email" gorm:"type:text;not null"`
	UniversityCompany *string           `json:"university_company,omitempty" db:"university_company" gorm:"type:text"`
	Region            *string           `json:"region,omitempty" db:"region" gorm:"type:text"`
	Skills            datatypes.JSON    `json:"skills,omitempty" db:"skills"`
	RegistrationDate  time.Time         `json:"registration_date" db:"registration_date" gorm:"type:timestamp;not null"`
	Status            ParticipantStatus `json:"status" db:"status" gorm:"type:text;not null;default:applied"`

	HackathonID uuid.UUID  `json:"hackathon_id" db:"hackathon_id" gorm:"type:uuid;not null;index"`
	TeamID      *uuid.UUID `json:"team_id,omitempty" db:"team_id" gorm:"type:uuid;index"`
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.RegistrationDate.IsZero() {
		p.RegistrationDate = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = ParticipantApplied
	}
	return nil
}
