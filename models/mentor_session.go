package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentorSession struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	MentorName      string    `json:"mentor_name" db:"mentor_name" gorm:"type:text;not null"`
	MentorEmail     string    `json:"mentor_email" db:"mentor_email" gorm:"type:text;not null"`
	SessionTopic    string    `json:"session_topic" db:"session_topic" gorm:"type:text;not null"`
	SessionDate     time.Time `json:"session_date" db:"session_date" gorm:"type:timestamp;not null"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes" gorm:"type:integer;not null"`
	MaxParticipants int       `json:"max_participants" db:"max_participants" gorm:"type:integer;not null"`
	RegisteredCount int       `json:"registered_count" db:"registered_count" gorm:"type:integer;not null"`
	MeetingLink     *string   `json:"meeting_link,omitempty" db:"meeting_link" gorm:"type:text"`
	Notes           *string   `json:"notes,omitempty" db:"notes" gorm:"type:text"`

	HackathonID uuid.UUID `json:"hackathon_id" db:"hackathon_id" gorm:"type:uuid;not null;index"`
}

func (m *MentorSession) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	if m.DurationMinutes == 0 {
		m.DurationMinutes = 60
	}
	if m.MaxParticipants == 0 {
		m.MaxParticipants = 10
	}
	return nil
}
