package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission records a team's project links; files are never stored, only URLs.
type Submission struct {
	ID              uuid.UUID        `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title           string           `json:"title" db:"title" gorm:"type:text;not null"`
	Description     string           `json:"description" db:"description" gorm:"type:text;not null"`
	GithubURL       *string          `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	DemoURL         *string          `json:"demo_url,omitempty" db:"demo_url" gorm:"type:text"`
	PresentationURL *string          `json:"presentation_url,omitempty" db:"presentation_url" gorm:"type:text"`
	Status          SubmissionStatus `json:"status" db:"status" gorm:"type:text;not null;default:submitted"`
	Score           *float64         `json:"score,omitempty" db:"score"`
	Feedback        *string          `json:"feedback,omitempty" db:"feedback" gorm:"type:text"`
	SubmittedAt     time.Time        `json:"submitted_at" db:"submitted_at" gorm:"type:timestamp;not null"`
	EvaluatedAt     *time.Time       `json:"evaluated_at,omitempty" db:"evaluated_at" gorm:"type:timestamp"`

	HackathonID uuid.UUID `json:"hackathon_id" db:"hackathon_id" gorm:"type:uuid;not null;index"`
	TeamID      uuid.UUID `json:"team_id" db:"team_id" gorm:"type:uuid;not null;index"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC()
	}
	if s.Status == "" {
		s.Status = SubmissionSubmitted
	}
	return nil
}
