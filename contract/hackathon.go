package contract

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
)

const (
	DefaultEligibility  = "Open to all participants"
	DefaultPlaceholder  = "TBD"
	DefaultColorScheme  = "#1976d2"
	DefaultTimezone     = "UTC"
	DefaultMinTeamSize  = 1
	DefaultMaxTeamSize  = 4
	hackathonTypeValues = "online offline hybrid"
)

type HackathonCreate struct {
	Name                 string     `json:"name" validate:"required"`
	Description          string     `json:"description" validate:"required"`
	Type                 *string    `json:"type" validate:"omitempty,oneof=online offline hybrid"`
	ThemeFocusArea       *string    `json:"theme_focus_area"`
	Location             *string    `json:"location"`
	Timezone             *string    `json:"timezone"`
	StartDate            time.Time  `json:"start_date" validate:"required"`
	EndDate              time.Time  `json:"end_date" validate:"required"`
	ApplicationOpen      *time.Time `json:"application_open"`
	ApplicationClose     *time.Time `json:"application_close"`
	ApplicationStartDate *time.Time `json:"application_start_date"`
	ApplicationEndDate   *time.Time `json:"application_end_date"`
	PrizePoolDetails     string     `json:"prize_pool_details" validate:"required"`
	Rules                string     `json:"rules" validate:"required"`
	MinTeamSize          *int       `json:"min_team_size" validate:"omitempty,min=1"`
	MaxTeamSize          *int       `json:"max_team_size" validate:"omitempty,min=1"`

	LandingPageType    *string `json:"landing_page_type" validate:"omitempty,oneof=template custom"`
	CustomLandingURL   *string `json:"custom_landing_url"`
	LandingColorScheme *string `json:"landing_color_scheme"`
	LandingLogoURL     *string `json:"landing_logo_url"`
	HasSponsors        *bool   `json:"has_sponsors"`
	SponsorsData       *string `json:"sponsors_data"`
}

// ToModel applies the creation defaults and checks the resulting hackathon.
func (c HackathonCreate) ToModel(organizerID uuid.UUID) (*models.Hackathon, error) {
	h := &models.Hackathon{
		Name:                   strings.TrimSpace(c.Name),
		Description:            c.Description,
		Theme:                  c.ThemeFocusArea,
		Location:               c.Location,
		Timezone:               valueOr(c.Timezone, DefaultTimezone),
		StartDate:              c.StartDate.UTC(),
		EndDate:                c.EndDate.UTC(),
		ApplicationOpen:        valueOr(c.ApplicationOpen, c.StartDate).UTC(),
		ApplicationClose:       valueOr(c.ApplicationClose, c.StartDate).UTC(),
		ApplicationStartDate:   utc(c.ApplicationStartDate),
		ApplicationEndDate:     utc(c.ApplicationEndDate),
		PrizePool:              c.PrizePoolDetails,
		Rules:                  c.Rules,
		Eligibility:            ptr(DefaultEligibility),
		MinTeamSize:            valueOr(c.MinTeamSize, DefaultMinTeamSize),
		MaxTeamSize:            valueOr(c.MaxTeamSize, DefaultMaxTeamSize),
		SubmissionRequirements: DefaultPlaceholder,
		EvaluationCriteria:     ptr(DefaultPlaceholder),
		CommunicationChannels:  DefaultPlaceholder,
		Status:                 models.HackathonUpcoming,
		IsFeatured:             false,
		LandingPageType:        models.LandingPageType(valueOr(c.LandingPageType, string(models.LandingTemplate))),
		CustomLandingURL:       c.CustomLandingURL,
		LandingColorScheme:     valueOr(c.LandingColorScheme, DefaultColorScheme),
		LandingLogoURL:         c.LandingLogoURL,
		HasSponsors:            valueOr(c.HasSponsors, false),
		SponsorsData:           c.SponsorsData,
		OrganizerID:            organizerID,
	}
	if c.Type != nil {
		t := models.HackathonType(*c.Type)
		h.Type = &t
	}
	if err := ValidateHackathon(h); err != nil {
		return nil, err
	}
	return h, nil
}

// HackathonUpdate is a partial update: absent and null fields leave the stored value alone.
type HackathonUpdate struct {
	Name                   *string    `json:"name"`
	Description            *string    `json:"description"`
	Type                   *string    `json:"type" validate:"omitempty,oneof=online offline hybrid"`
	ThemeFocusArea         *string    `json:"theme_focus_area"`
	Location               *string    `json:"location"`
	Timezone               *string    `json:"timezone"`
	StartDate              *time.Time `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	ApplicationOpen        *time.Time `json:"application_open"`
	ApplicationClose       *time.Time `json:"application_close"`
	ApplicationStartDate   *time.Time `json:"application_start_date"`
	ApplicationEndDate     *time.Time `json:"application_end_date"`
	PrizePoolDetails       *string    `json:"prize_pool_details"`
	Rules                  *string    `json:"rules"`
	Eligibility            *string    `json:"eligibility"`
	MinTeamSize            *int       `json:"min_team_size" validate:"omitempty,min=1"`
	MaxTeamSize            *int       `json:"max_team_size" validate:"omitempty,min=1"`
	SubmissionRequirements *string    `json:"submission_requirements"`
	EvaluationCriteria     *string    `json:"evaluation_criteria"`
	CommunicationChannels  *string    `json:"communication_channels"`
	Sponsors               *string    `json:"sponsors"`
	Status                 *string    `json:"status" validate:"omitempty,oneof=upcoming ongoing past"`

	LandingPageType    *string `json:"landing_page_type" validate:"omitempty,oneof=template custom"`
	CustomLandingURL   *string `json:"custom_landing_url"`
	LandingColorScheme *string `json:"landing_color_scheme"`
	LandingLogoURL     *string `json:"landing_logo_url"`
	HasSponsors        *bool   `json:"has_sponsors"`
	SponsorsData       *string `json:"sponsors_data"`
}

// Apply merges the present fields into h and returns the changed columns.
func (u HackathonUpdate) Apply(h *models.Hackathon) map[string]any {
	changes := make(map[string]any)

	assign(changes, InternalName("name"), &h.Name, u.Name)
	assign(changes, InternalName("description"), &h.Description, u.Description)
	assignOptional(changes, InternalName("theme_focus_area"), &h.Theme, u.ThemeFocusArea)
	assignOptional(changes, InternalName("location"), &h.Location, u.Location)
	assign(changes, InternalName("timezone"), &h.Timezone, u.Timezone)
	assign(changes, InternalName("start_date"), &h.StartDate, utc(u.StartDate))
	assign(changes, InternalName("end_date"), &h.EndDate, utc(u.EndDate))
	assign(changes, InternalName("application_open"), &h.ApplicationOpen, utc(u.ApplicationOpen))
	assign(changes, InternalName("application_close"), &h.ApplicationClose, utc(u.ApplicationClose))
	assignOptional(changes, InternalName("application_start_date"), &h.ApplicationStartDate, utc(u.ApplicationStartDate))
	assignOptional(changes, InternalName("application_end_date"), &h.ApplicationEndDate, utc(u.ApplicationEndDate))
	assign(changes, InternalName("prize_pool_details"), &h.PrizePool, u.PrizePoolDetails)
	assign(changes, InternalName("rules"), &h.Rules, u.Rules)
	assignOptional(changes, InternalName("eligibility"), &h.Eligibility, u.Eligibility)
	assign(changes, InternalName("min_team_size"), &h.MinTeamSize, u.MinTeamSize)
	assign(changes, InternalName("max_team_size"), &h.MaxTeamSize, u.MaxTeamSize)
	assign(changes, InternalName("submission_requirements"), &h.SubmissionRequirements, u.SubmissionRequirements)
	assignOptional(changes, InternalName("evaluation_criteria"), &h.EvaluationCriteria, u.EvaluationCriteria)
	assign(changes, InternalName("communication_channels"), &h.CommunicationChannels, u.CommunicationChannels)
	assignOptional(changes, InternalName("sponsors"), &h.Sponsors, u.Sponsors)
	assignOptional(changes, InternalName("custom_landing_url"), &h.CustomLandingURL, u.CustomLandingURL)
	assign(changes, InternalName("landing_color_scheme"), &h.LandingColorScheme, u.LandingColorScheme)
	assignOptional(changes, InternalName("landing_logo_url"), &h.LandingLogoURL, u.LandingLogoURL)
	assign(changes, InternalName("has_sponsors"), &h.HasSponsors, u.HasSponsors)
	assignOptional(changes, InternalName("sponsors_data"), &h.SponsorsData, u.SponsorsData)

	if u.Type != nil {
		t := models.HackathonType(*u.Type)
		h.Type = &t
		changes[InternalName("type")] = string(t)
	}
	if u.Status != nil {
		h.Status = models.HackathonStatus(*u.Status)
		changes[InternalName("status")] = string(h.Status)
	}
	if u.LandingPageType != nil {
		h.LandingPageType = models.LandingPageType(*u.LandingPageType)
		changes[InternalName("landing_page_type")] = string(h.LandingPageType)
	}
	return changes
}

// ValidateHackathon checks the cross-field rules on a complete hackathon, so it
// runs on the merged state after an update as well as on creation.
func ValidateHackathon(h *models.Hackathon) error {
	required := []struct {
		column string
		value  string
	}{
		{"name", h.Name},
		{"description", h.Description},
		{"prize_pool", h.PrizePool},
		{"rules", h.Rules},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errs.NewMissingRequiredFieldError(ExternalName(r.column))
		}
	}

	switch {
	case h.StartDate.IsZero():
		return errs.NewMissingRequiredFieldError(ExternalName("start_date"))
	case h.EndDate.IsZero():
		return errs.NewMissingRequiredFieldError(ExternalName("end_date"))
	case h.EndDate.Before(h.StartDate):
		return errs.NewInvalidFieldError(ExternalName("end_date"), "must not be before start_date")
	case h.MinTeamSize < 1:
		return errs.NewInvalidFieldError(ExternalName("min_team_size"), "must be at least 1")
	case h.MaxTeamSize < h.MinTeamSize:
		return errs.NewInvalidFieldError(ExternalName("max_team_size"), "must be greater than or equal to min_team_size")
	case !h.Status.Valid():
		return errs.NewInvalidFieldError(ExternalName("status"), "must be one of: upcoming, ongoing, past")
	case h.Type != nil && !h.Type.Valid():
		return errs.NewInvalidFieldError(ExternalName("type"), "must be one of: "+strings.ReplaceAll(hackathonTypeValues, " ", ", "))
	case !h.LandingPageType.Valid():
		return errs.NewInvalidFieldError(ExternalName("landing_page_type"), "must be one of: template, custom")
	}
	return nil
}

type HackathonResponse struct {
	ID                     uuid.UUID  `json:"id"`
	Name                   string     `json:"name"`
	Description            string     `json:"description"`
	Type                   *string    `json:"type"`
	ThemeFocusArea         string     `json:"theme_focus_area"`
	Location               *string    `json:"location"`
	Timezone               string     `json:"timezone"`
	StartDate              time.Time  `json:"start_date"`
	EndDate                time.Time  `json:"end_date"`
	ApplicationOpen        time.Time  `json:"application_open"`
	ApplicationClose       time.Time  `json:"application_close"`
	ApplicationStartDate   *time.Time `json:"application_start_date"`
	ApplicationEndDate     *time.Time `json:"application_end_date"`
	PrizePoolDetails       string     `json:"prize_pool_details"`
	Rules                  string     `json:"rules"`
	Eligibility            *string    `json:"eligibility"`
	MinTeamSize            int        `json:"min_team_size"`
	MaxTeamSize            int        `json:"max_team_size"`
	SubmissionRequirements string     `json:"submission_requirements"`
	EvaluationCriteria     *string    `json:"evaluation_criteria"`
	CommunicationChannels  string     `json:"communication_channels"`
	Sponsors               *string    `json:"sponsors"`
	Status                 string     `json:"status"`
	IsFeatured             bool       `json:"is_featured"`

	Organizer        *UserResponse `json:"organizer"`
	ParticipantCount int64         `json:"participant_count"`
	TeamCount        int64         `json:"team_count"`
	SubmissionCount  int64         `json:"submission_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LandingPageType    string  `json:"landing_page_type"`
	CustomLandingURL   *string `json:"custom_landing_url"`
	LandingColorScheme string  `json:"landing_color_scheme"`
	LandingLogoURL     *string `json:"landing_logo_url"`
	HasSponsors        bool    `json:"has_sponsors"`
	SponsorsData       *string `json:"sponsors_data"`
}

// NewHackathonResponse renders h under the client-facing field names. The
// organizer is included when it was loaded with h.
func NewHackathonResponse(h models.Hackathon, counts models.HackathonCounts) HackathonResponse {
	resp := HackathonResponse{
		ID:                     h.ID,
		Name:                   h.Name,
		Description:            h.Description,
		ThemeFocusArea:         valueOr(h.Theme, ""),
		Location:               h.Location,
		Timezone:               h.Timezone,
		StartDate:              h.StartDate,
		EndDate:                h.EndDate,
		ApplicationOpen:        h.ApplicationOpen,
		ApplicationClose:       h.ApplicationClose,
		ApplicationStartDate:   h.ApplicationStartDate,
		ApplicationEndDate:     h.ApplicationEndDate,
		PrizePoolDetails:       h.PrizePool,
		Rules:                  h.Rules,
		Eligibility:            h.Eligibility,
		MinTeamSize:            h.MinTeamSize,
		MaxTeamSize:            h.MaxTeamSize,
		SubmissionRequirements: h.SubmissionRequirements,
		EvaluationCriteria:     h.EvaluationCriteria,
		CommunicationChannels:  h.CommunicationChannels,
		Sponsors:               h.Sponsors,
		Status:                 string(h.Status),
		IsFeatured:             h.IsFeatured,
		ParticipantCount:       counts.Participants,
		TeamCount:              counts.Teams,
		SubmissionCount:        counts.Submissions,
		CreatedAt:              h.CreatedAt,
		UpdatedAt:              h.UpdatedAt,
		LandingPageType:        string(h.LandingPageType),
		CustomLandingURL:       h.CustomLandingURL,
		LandingColorScheme:     h.LandingColorScheme,
		LandingLogoURL:         h.LandingLogoURL,
		HasSponsors:            h.HasSponsors,
		SponsorsData:           h.SponsorsData,
	}
	if h.Type != nil {
		t := string(*h.Type)
		resp.Type = &t
	}
	if h.Organizer != nil {
		organizer := NewUserResponse(*h.Organizer)
		resp.Organizer = &organizer
	}
	return resp
}

type HackathonListResponse struct {
	Items   []HackathonResponse `json:"items"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	Size    int                 `json:"size"`
	HasNext bool                `json:"has_next"`
	HasPrev bool                `json:"has_prev"`
}

func NewHackathonListResponse(items []HackathonResponse, total int64, page, size int) HackathonListResponse {
	if items == nil {
		items = []HackathonResponse{}
	}
	return HackathonListResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		HasNext: int64(page)*int64(size) < total,
		HasPrev: page > 1,
	}
}

// LandingPage is the public projection of a hackathon. It omits the organizer
// and every other related record.
type LandingPage struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	Type                 *string    `json:"type"`
	ThemeFocusArea       *string    `json:"theme_focus_area"`
	Location             *string    `json:"location"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	ApplicationStartDate *time.Time `json:"application_start_date"`
	ApplicationEndDate   *time.Time `json:"application_end_date"`
	PrizePoolDetails     string     `json:"prize_pool_details"`
	Rules                string     `json:"rules"`
	MinTeamSize          int        `json:"min_team_size"`
	MaxTeamSize          int        `json:"max_team_size"`
	LandingPageType      string     `json:"landing_page_type"`
	CustomLandingURL     *string    `json:"custom_landing_url"`
	LandingColorScheme   string     `json:"landing_color_scheme"`
	LandingLogoURL       *string    `json:"landing_logo_url"`
	HasSponsors          bool       `json:"has_sponsors"`
	SponsorsData         *string    `json:"sponsors_data"`
}

func NewLandingPage(h models.Hackathon) LandingPage {
	page := LandingPage{
		ID:                   h.ID,
		Name:                 h.Name,
		Description:          h.Description,
		ThemeFocusArea:       h.Theme,
		Location:             h.Location,
		StartDate:            h.StartDate,
		EndDate:              h.EndDate,
		ApplicationStartDate: h.ApplicationStartDate,
		ApplicationEndDate:   h.ApplicationEndDate,
		PrizePoolDetails:     h.PrizePool,
		Rules:                h.Rules,
		MinTeamSize:          h.MinTeamSize,
		MaxTeamSize:          h.MaxTeamSize,
		LandingPageType:      string(h.LandingPageType),
		CustomLandingURL:     h.CustomLandingURL,
		LandingColorScheme:   h.LandingColorScheme,
		LandingLogoURL:       h.LandingLogoURL,
		HasSponsors:          h.HasSponsors,
		SponsorsData:         h.SponsorsData,
	}
	if page.LandingPageType == "" {
		page.LandingPageType = string(models.LandingTemplate)
	}
	if page.LandingColorScheme == "" {
		page.LandingColorScheme = DefaultColorScheme
	}
	if h.Type != nil {
		t := string(*h.Type)
		page.Type = &t
	}
	return page
}

func assign[T any](changes map[string]any, column string, dst *T, src *T) {
	if src == nil {
		return
	}
	*dst = *src
	changes[column] = *src
}

func assignOptional[T any](changes map[string]any, column string, dst **T, src *T) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
	changes[column] = v
}

// utc converts a client timestamp to UTC; the date columns carry no zone.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func ptr[T any](v T) *T {
	return &v
}
