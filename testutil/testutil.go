package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/auth"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestSecret signs tokens in tests.
const TestSecret = "test-signing-secret"

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// CreateTestUser inserts an active user whose password is "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	suffix := uuid.NewString()[:8]
	user := &models.User{
		Email:          fmt.Sprintf("%s-%s@example.com", role, suffix),
		Username:       fmt.Sprintf("%s-%s", role, suffix),
		HashedPassword: hashed,
		FullName:       "Test " + string(role),
		Role:           role,
		IsActive:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestHackathon inserts an upcoming hackathon for organizerID. Options
// run before the insert.
func CreateTestHackathon(t *testing.T, db *gorm.DB, organizerID uuid.UUID, opts ...func(*models.Hackathon)) *models.Hackathon {
	t.Helper()

	start := time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second)
	h := &models.Hackathon{
		Name:                   "Test Hackathon",
		Description:            "A hackathon for tests",
		Timezone:               "UTC",
		StartDate:              start,
		EndDate:                start.Add(48 * time.Hour),
		ApplicationOpen:        start,
		ApplicationClose:       start,
		PrizePool:              "$1000",
		Rules:                  "none",
		MinTeamSize:            1,
		MaxTeamSize:            4,
		SubmissionRequirements: "TBD",
		CommunicationChannels:  "TBD",
		Status:                 models.HackathonUpcoming,
		LandingPageType:        models.LandingTemplate,
		LandingColorScheme:     "#1976d2",
		OrganizerID:            organizerID,
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("Failed to create test hackathon: %v", err)
	}
	return h
}

// CreateTestDependents adds participants, teams and submissions to a hackathon.
// Each team gets one submission and the participants are spread over the teams.
func CreateTestDependents(t *testing.T, db *gorm.DB, hackathonID uuid.UUID, participants, teams int) {
	t.Helper()

	teamIDs := make([]uuid.UUID, 0, teams)
	for i := 0; i < teams; i++ {
		team := &models.Team{Name: fmt.Sprintf("Team %d", i), HackathonID: hackathonID}
		if err := db.Create(team).Error; err != nil {
			t.Fatalf("Failed to create test team: %v", err)
		}
		teamIDs = append(teamIDs, team.ID)

		submission := &models.Submission{
			Title:       fmt.Sprintf("Project %d", i),
			Description: "demo",
			HackathonID: hackathonID,
			TeamID:      team.ID,
		}
		if err := db.Create(submission).Error; err != nil {
			t.Fatalf("Failed to create test submission: %v", err)
		}
	}

	for i := 0; i < participants; i++ {
		p := &models.Participant{
			Name:        fmt.Sprintf("Participant %d", i),
			Email:       fmt.Sprintf("p%d-%s@example.com", i, uuid.NewString()[:8]),
			HackathonID: hackathonID,
		}
		if len(teamIDs) > 0 {
			teamID := teamIDs[i%len(teamIDs)]
			p.TeamID = &teamID
		}
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("Failed to create test participant: %v", err)
		}
	}
}

// IssueTestToken signs a token for user with TestSecret.
func IssueTestToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := auth.NewTokenIssuer(TestSecret, 30*time.Minute).Issue(user.ID.String(), 0)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// BearerHeader returns the Authorization header for token.
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
