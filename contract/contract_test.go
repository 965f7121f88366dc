package contract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
)

func TestFieldNameTable(t *testing.T) {
	tests := []struct {
		internal string
		external string
	}{
		{"prize_pool", "prize_pool_details"},
		{"theme", "theme_focus_area"},
		{"name", "name"},
		{"status", "status"},
	}
	for _, tt := range tests {
		if got := ExternalName(tt.internal); got != tt.external {
			t.Errorf("ExternalName(%q) = %q, want %q", tt.internal, got, tt.external)
		}
		if got := InternalName(tt.external); got != tt.internal {
			t.Errorf("InternalName(%q) = %q, want %q", tt.external, got, tt.internal)
		}
	}
}

func exampleCreate() HackathonCreate {
	minSize, maxSize := 1, 4
	return HackathonCreate{
		Name:             "X",
		Description:      "Y",
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		PrizePoolDetails: "$1000",
		Rules:            "none",
		MinTeamSize:      &minSize,
		MaxTeamSize:      &maxSize,
	}
}

func TestCreateDefaults(t *testing.T) {
	organizer := uuid.New()
	h, err := exampleCreate().ToModel(organizer)
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}

	if h.Status != models.HackathonUpcoming || h.IsFeatured {
		t.Errorf("status = %q, featured = %v", h.Status, h.IsFeatured)
	}
	if h.Eligibility == nil || *h.Eligibility != DefaultEligibility {
		t.Errorf("eligibility = %v", h.Eligibility)
	}
	if h.SubmissionRequirements != "TBD" || h.CommunicationChannels != "TBD" || *h.EvaluationCriteria != "TBD" {
		t.Error("placeholder defaults not applied")
	}
	if !h.ApplicationOpen.Equal(h.StartDate) || !h.ApplicationClose.Equal(h.StartDate) {
		t.Error("application window should default to the start date")
	}
	if h.LandingPageType != models.LandingTemplate || h.LandingColorScheme != DefaultColorScheme || h.Timezone != "UTC" {
		t.Errorf("landing defaults: %q %q %q", h.LandingPageType, h.LandingColorScheme, h.Timezone)
	}
	if h.PrizePool != "$1000" || h.OrganizerID != organizer {
		t.Errorf("prize pool %q organizer %v", h.PrizePool, h.OrganizerID)
	}
}

func TestCreateRejectsInvalidState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HackathonCreate)
		field  string
	}{
		{"team sizes", func(c *HackathonCreate) { lo, hi := 5, 2; c.MinTeamSize, c.MaxTeamSize = &lo, &hi }, "max_team_size"},
		{"dates", func(c *HackathonCreate) { c.EndDate = c.StartDate.Add(-time.Hour) }, "end_date"},
		{"blank prize pool", func(c *HackathonCreate) { c.PrizePoolDetails = " " }, "prize_pool_details"},
		{"landing type", func(c *HackathonCreate) { v := "fancy"; c.LandingPageType = &v }, "landing_page_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := exampleCreate()
			tt.mutate(&c)
			_, err := c.ToModel(uuid.New())
			if !errs.IsBadRequest(err) {
				t.Fatalf("expected bad request, got %v", err)
			}
			if got := fieldOf(err); got != tt.field {
				t.Errorf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestValidateRequestTags(t *testing.T) {
	bad := "cancelled"
	err := Validate(HackathonUpdate{Status: &bad})
	if !errs.IsInvalidFieldError(err) || fieldOf(err) != "status" {
		t.Errorf("status enum: %v", err)
	}

	err = Validate(LoginRequest{Email: "not-an-email", Password: "x"})
	if !errs.IsBadRequest(err) || fieldOf(err) != "email" {
		t.Errorf("email: %v", err)
	}

	err = Validate(RegisterRequest{Email: "a@b.co", Username: "a", Password: "p", FullName: "A", Role: "participant"})
	if fieldOf(err) != "role" {
		t.Errorf("role: %v", err)
	}

	err = Validate(HackathonCreate{})
	if !errs.IsMissingRequiredFieldError(err) {
		t.Errorf("empty create: %v", err)
	}

	if err := Validate(exampleCreate()); err != nil {
		t.Errorf("example create rejected: %v", err)
	}
}

func TestApplyOnlyTouchesPresentFields(t *testing.T) {
	h, err := exampleCreate().ToModel(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	theme := "AI"
	prize := "$5000"
	maxSize := 6

	changes := HackathonUpdate{
		ThemeFocusArea:   &theme,
		PrizePoolDetails: &prize,
		MaxTeamSize:      &maxSize,
	}.Apply(h)

	if len(changes) != 3 {
		t.Errorf("changes = %v, want 3 columns", changes)
	}
	if changes["theme"] != "AI" || changes["prize_pool"] != "$5000" || changes["max_team_size"] != 6 {
		t.Errorf("changes keyed by storage name: %v", changes)
	}
	if h.Name != "X" || *h.Theme != "AI" || h.PrizePool != "$5000" || h.MaxTeamSize != 6 {
		t.Errorf("merged model wrong: %+v", h)
	}

	minSize := 10
	HackathonUpdate{MinTeamSize: &minSize}.Apply(h)
	if err := ValidateHackathon(h); fieldOf(err) != "max_team_size" {
		t.Errorf("merged validation: %v", err)
	}
}

func TestDatesAreStoredInUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	c := exampleCreate()
	c.StartDate = time.Date(2025, 1, 1, 20, 0, 0, 0, est)
	c.EndDate = time.Date(2025, 1, 1, 23, 0, 0, 0, est)

	h, err := c.ToModel(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	for name, got := range map[string]time.Time{
		"start_date":        h.StartDate,
		"end_date":          h.EndDate,
		"application_open":  h.ApplicationOpen,
		"application_close": h.ApplicationClose,
	} {
		if got.Location() != time.UTC {
			t.Errorf("%s kept zone %v", name, got.Location())
		}
	}
	if !h.EndDate.Equal(c.EndDate) || h.EndDate.Hour() != 4 {
		t.Errorf("end_date = %v, want 04:00 UTC", h.EndDate)
	}

	shifted := time.Date(2025, 1, 2, 1, 0, 0, 0, est)
	changes := HackathonUpdate{EndDate: &shifted}.Apply(h)
	stored, ok := changes["end_date"].(time.Time)
	if !ok || stored.Location() != time.UTC || !stored.Equal(shifted) {
		t.Errorf("end_date change = %v", changes["end_date"])
	}
	if h.EndDate.Location() != time.UTC {
		t.Errorf("merged end_date kept zone %v", h.EndDate.Location())
	}
}

func TestResponsesUseExternalNames(t *testing.T) {
	theme := "Climate"
	h := models.Hackathon{
		ID:        uuid.New(),
		Name:      "X",
		Theme:     &theme,
		PrizePool: "$1000",
		Status:    models.HackathonUpcoming,
		Organizer: &models.User{Email: "o@example.com", HashedPassword: "secret-digest"},
	}

	raw, err := json.Marshal(NewHackathonResponse(h, models.HackathonCounts{Participants: 2}))
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if body["prize_pool_details"] != "$1000" || body["theme_focus_area"] != "Climate" {
		t.Errorf("external names missing: %s", raw)
	}
	if _, ok := body["prize_pool"]; ok {
		t.Error("internal name leaked into response")
	}
	if body["participant_count"] != float64(2) {
		t.Errorf("participant_count = %v", body["participant_count"])
	}
	organizer := body["organizer"].(map[string]any)
	if _, ok := organizer["hashed_password"]; ok {
		t.Error("password digest leaked")
	}

	raw, err = json.Marshal(NewLandingPage(h))
	if err != nil {
		t.Fatal(err)
	}
	body = map[string]any{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body["organizer"]; ok {
		t.Error("landing page exposes the organizer")
	}
	if body["landing_color_scheme"] != DefaultColorScheme {
		t.Errorf("landing color default = %v", body["landing_color_scheme"])
	}
}

func TestListEnvelope(t *testing.T) {
	resp := NewHackathonListResponse(nil, 25, 2, 10)
	if !resp.HasNext || !resp.HasPrev || resp.Items == nil {
		t.Errorf("page 2 of 25: %+v", resp)
	}
	resp = NewHackathonListResponse(nil, 20, 2, 10)
	if resp.HasNext {
		t.Error("last full page should not have a next page")
	}
}

func fieldOf(err error) string {
	if apiErr, ok := err.(*errs.ApiErr); ok {
		return apiErr.Field
	}
	return ""
}
