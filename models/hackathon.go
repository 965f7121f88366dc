package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hackathon is an event owned by one organizer. Column names here are the storage
// names; the API renames a few of them (see contract.ExternalName).
type Hackathon struct {
	ID                     uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name                   string          `json:"name" db:"name" gorm:"type:text;not null;index"`
	Description            string          `json:"description" db:"description" gorm:"type:text;not null"`
	Type                   *HackathonType  `json:"type,omitempty" db:"type" gorm:"type:text"`
	Theme                  *string         `json:"theme,omitempty" db:"theme" gorm:"type:text"`
	Location               *string         `json:"location,omitempty" db:"location" gorm:"type:text"`
	Timezone               string          `json:"timezone" db:"timezone" gorm:"type:text;not null;default:UTC"`
	StartDate              time.Time       `json:"start_date" db:"start_date" gorm:"type:timestamp;not null"`
	EndDate                time.Time       `json:"end_date" db:"end_date" gorm:"type:timestamp;not null"`
	ApplicationOpen        time.Time       `json:"application_open" db:"application_open" gorm:"type:timestamp;not null"`
	ApplicationClose       time.Time       `json:"application_close" db:"application_close" gorm:"type:timestamp;not null"`
	ApplicationStartDate   *time.Time      `json:"application_start_date,omitempty" db:"application_start_date" gorm:"type:timestamp"`
	ApplicationEndDate     *time.Time      `json:"application_end_date,omitempty" db:"application_end_date" gorm:"type:timestamp"`
	PrizePool              string          `json:"prize_pool" db:"prize_pool" gorm:"type:text;not null"`
	Rules                  string          `json:"rules" db:"rules" gorm:"type:text;not null"`
	Eligibility            *string         `json:"eligibility,omitempty" db:"eligibility" gorm:"type:text"`
	MinTeamSize            int             `json:"min_team_size" db:"min_team_size" gorm:"type:integer;not null"`
	MaxTeamSize            int             `json:"max_team_size" db:"max_team_size" gorm:"type:integer;not null"`
	SubmissionRequirements string          `json:"submission_requirements" db:"submission_requirements" gorm:"type:text;not null"`
	EvaluationCriteria     *string         `json:"evaluation_criteria,omitempty" db:"evaluation_criteria" gorm:"type:text"`
	CommunicationChannels  string          `json:"communication_channels" db:"communication_channels" gorm:"type:text;not null"`
	Sponsors               *string         `json:"sponsors,omitempty" db:"sponsors" gorm:"type:text"`
	Status                 HackathonStatus `json:"status" db:"status" gorm:"type:text;not null;default:upcoming;index"`
	IsFeatured             bool            `json:"is_featured" db:"is_featured" gorm:"not null"`

	LandingPageType    LandingPageType `json:"landing_page_type" db:"landing_page_type" gorm:"type:text;not null;default:template"`
	CustomLandingURL   *string         `json:"custom_landing_url,omitempty" db:"custom_landing_url" gorm:"type:text"`
	LandingColorScheme string          `json:"landing_color_scheme" db:"landing_color_scheme" gorm:"type:text;not null;default:#1976d2"`
	LandingLogoURL     *string         `json:"landing_logo_url,omitempty" db:"landing_logo_url" gorm:"type:text"`
	HasSponsors        bool            `json:"has_sponsors" db:"has_sponsors" gorm:"not null"`
	SponsorsData       *string         `json:"sponsors_data,omitempty" db:"sponsors_data" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;index"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null"`

	OrganizerID uuid.UUID `json:"organizer_id" db:"organizer_id" gorm:"type:uuid;not null;index"`
	Organizer   *User     `json:"organizer,omitempty" gorm:"foreignKey:OrganizerID;references:ID"`

	Teams          []Team          `json:"-" gorm:"foreignKey:HackathonID;references:ID"`
	Participants   []Participant   `json:"-" gorm:"foreignKey:HackathonID;references:ID"`
	Submissions    []Submission    `json:"-" gorm:"foreignKey:HackathonID;references:ID"`
	MentorSessions []MentorSession `json:"-" gorm:"foreignKey:HackathonID;references:ID"`
}

func (h *Hackathon) BeforeCreate(tx *gorm.DB) error {
	ensureID(&h.ID)
	return nil
}

// BeforeSave stores every date in UTC. The columns are zoneless timestamps
// compared against a UTC clock.
func (h *Hackathon) BeforeSave(tx *gorm.DB) error {
	for _, t := range []*time.Time{&h.StartDate, &h.EndDate, &h.ApplicationOpen, &h.ApplicationClose} {
		*t = t.UTC()
	}
	for _, t := range []*time.Time{h.ApplicationStartDate, h.ApplicationEndDate} {
		if t != nil {
			*t = t.UTC()
		}
	}
	return nil
}

// HackathonCounts are the live dependent-row counts shown with a hackathon.
type HackathonCounts struct {
	Participants int64
	Teams        int64
	Submissions  int64
}
