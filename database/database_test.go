package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"github.com/rpupo63/hackathon-platform-backend/testutil"
	"gorm.io/gorm"
)

func TestListPagesConcatenateToFullResult(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()

	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		createdAt := base.Add(time.Duration(i%5) * time.Minute) // ties on created_at are broken by id
		name := fmt.Sprintf("Hack %02d", i)
		if i%3 == 0 {
			name = fmt.Sprintf("AI Hack %02d", i)
		}
		testutil.CreateTestHackathon(t, db, organizer.ID, func(h *models.Hackathon) {
			h.Name = name
			h.CreatedAt = createdAt
		})
	}
	scope := ScopeFor(*organizer)

	for _, filter := range []Filter{{}, {Search: "ai"}, {Status: models.HackathonUpcoming, Search: "HACK"}} {
		all, total, err := d.HackathonRepo().List(ctx, scope, filter, Page{Number: 1, Size: MaxPageSize})
		if err != nil {
			t.Fatalf("List all: %v", err)
		}
		if int64(len(all)) != total {
			t.Fatalf("unpaginated list has %d rows, total %d", len(all), total)
		}

		for _, size := range []int{1, 4, 10} {
			var concatenated []uuid.UUID
			for page := 1; ; page++ {
				rows, pageTotal, err := d.HackathonRepo().List(ctx, scope, filter, Page{Number: page, Size: size})
				if err != nil {
					t.Fatalf("List page %d: %v", page, err)
				}
				if pageTotal != total {
					t.Fatalf("total changed between pages: %d vs %d", pageTotal, total)
				}
				if len(rows) == 0 {
					break
				}
				for _, r := range rows {
					concatenated = append(concatenated, r.ID)
				}
			}

			if len(concatenated) != len(all) {
				t.Fatalf("filter %+v size %d: got %d rows, want %d", filter, size, len(concatenated), len(all))
			}
			for i := range all {
				if concatenated[i] != all[i].ID {
					t.Fatalf("filter %+v size %d: row %d differs", filter, size, i)
				}
			}
		}
	}

	_, aiTotal, err := d.HackathonRepo().List(ctx, scope, Filter{Search: "ai"}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if aiTotal != 8 {
		t.Errorf("case-insensitive search matched %d, want 8", aiTotal)
	}
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	testutil.CreateTestHackathon(t, db, organizer.ID, func(h *models.Hackathon) { h.Name = "100% Uptime" })
	testutil.CreateTestHackathon(t, db, organizer.ID, func(h *models.Hackathon) { h.Name = "1000 Users" })

	_, total, err := d.HackathonRepo().List(context.Background(), ScopeFor(*organizer), Filter{Search: "100%"}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("search for literal %% matched %d rows, want 1", total)
	}
}

func TestScopeIsolatesOrganizers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	bob := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	admin := testutil.CreateTestUser(t, db, models.RoleSuperadmin)

	for i := 0; i < 3; i++ {
		testutil.CreateTestHackathon(t, db, alice.ID)
	}
	bobs := testutil.CreateTestHackathon(t, db, bob.ID)
	testutil.CreateTestDependents(t, db, bobs.ID, 4, 2)

	rows, total, err := d.HackathonRepo().List(ctx, ScopeFor(*alice), Filter{}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("alice sees %d hackathons, want 3", total)
	}
	for _, h := range rows {
		if h.OrganizerID != alice.ID {
			t.Errorf("alice sees hackathon owned by %v", h.OrganizerID)
		}
		if h.Organizer == nil || h.Organizer.ID != alice.ID {
			t.Error("organizer not preloaded")
		}
	}

	_, total, err = d.HackathonRepo().List(ctx, ScopeFor(*admin), Filter{}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 4 {
		t.Errorf("superadmin sees %d hackathons, want 4", total)
	}

	if ScopeFor(*alice).Permits(*bobs) || !ScopeFor(*admin).Permits(*bobs) || !ScopeFor(*bob).Permits(*bobs) {
		t.Error("Permits disagrees with ownership")
	}

	aliceParticipants, err := d.ParticipantRepo().Count(ctx, ScopeFor(*alice))
	if err != nil {
		t.Fatal(err)
	}
	allParticipants, err := d.ParticipantRepo().Count(ctx, ScopeFor(*admin))
	if err != nil {
		t.Fatal(err)
	}
	if aliceParticipants != 0 || allParticipants != 4 {
		t.Errorf("participant counts: alice %d, admin %d", aliceParticipants, allParticipants)
	}
}

func TestCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	busy := testutil.CreateTestHackathon(t, db, organizer.ID)
	quiet := testutil.CreateTestHackathon(t, db, organizer.ID)
	testutil.CreateTestDependents(t, db, busy.ID, 5, 2)

	counts, err := d.HackathonRepo().Counts(context.Background(), []uuid.UUID{busy.ID, quiet.ID})
	if err != nil {
		t.Fatal(err)
	}
	if got := counts[busy.ID]; got != (models.HackathonCounts{Participants: 5, Teams: 2, Submissions: 2}) {
		t.Errorf("busy counts = %+v", got)
	}
	if got, ok := counts[quiet.ID]; !ok || got != (models.HackathonCounts{}) {
		t.Errorf("quiet counts = %+v, present %v", got, ok)
	}
}

func TestDeleteHackathonCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	doomed := testutil.CreateTestHackathon(t, db, organizer.ID)
	kept := testutil.CreateTestHackathon(t, db, organizer.ID)
	testutil.CreateTestDependents(t, db, doomed.ID, 6, 3)
	testutil.CreateTestDependents(t, db, kept.ID, 2, 1)
	if err := db.Create(&models.MentorSession{
		MentorName: "Ada", MentorEmail: "ada@example.com", SessionTopic: "APIs",
		SessionDate: time.Now().UTC(), HackathonID: doomed.ID,
	}).Error; err != nil {
		t.Fatal(err)
	}

	if err := d.HackathonRepo().Delete(context.Background(), doomed.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, model := range []interface{}{&models.Participant{}, &models.Team{}, &models.Submission{}, &models.MentorSession{}} {
		var n int64
		db.Model(model).Where("hackathon_id = ?", doomed.ID).Count(&n)
		if n != 0 {
			t.Errorf("%T: %d rows still reference the deleted hackathon", model, n)
		}
	}
	var keptParticipants int64
	db.Model(&models.Participant{}).Where("hackathon_id = ?", kept.ID).Count(&keptParticipants)
	if keptParticipants != 2 {
		t.Errorf("other hackathon lost participants: %d left", keptParticipants)
	}

	_, err := d.HackathonRepo().FindByID(context.Background(), doomed.ID)
	if !errs.IsNotFound(err) {
		t.Errorf("FindByID after delete: %v", err)
	}
	if err := d.HackathonRepo().Delete(context.Background(), doomed.ID); !errs.IsNotFound(err) {
		t.Errorf("second delete: %v", err)
	}
}

func TestDeleteHackathonClearsCrossHackathonTeamReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	doomed := testutil.CreateTestHackathon(t, db, organizer.ID)
	kept := testutil.CreateTestHackathon(t, db, organizer.ID)

	team := &models.Team{Name: "Shared", HackathonID: doomed.ID}
	if err := db.Create(team).Error; err != nil {
		t.Fatal(err)
	}
	stray := &models.Participant{Name: "Stray", Email: "stray@example.com", HackathonID: kept.ID, TeamID: &team.ID}
	if err := db.Create(stray).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.Submission{
		Title: "Orphan", Description: "demo", HackathonID: kept.ID, TeamID: team.ID,
	}).Error; err != nil {
		t.Fatal(err)
	}

	if err := d.HackathonRepo().Delete(ctx, doomed.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var left models.Participant
	if err := db.First(&left, "id = ?", stray.ID).Error; err != nil {
		t.Fatalf("participant of the other hackathon was removed: %v", err)
	}
	if left.TeamID != nil {
		t.Errorf("participant still points at deleted team %v", *left.TeamID)
	}
	var submissions int64
	db.Model(&models.Submission{}).Where("team_id = ?", team.ID).Count(&submissions)
	if submissions != 0 {
		t.Errorf("%d submissions still reference the deleted team", submissions)
	}
	if _, err := d.HackathonRepo().FindByID(ctx, kept.ID); err != nil {
		t.Errorf("other hackathon: %v", err)
	}
}

func TestDeleteHackathonRollsBackOnFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	h := testutil.CreateTestHackathon(t, db, organizer.ID)
	testutil.CreateTestDependents(t, db, h.ID, 4, 2)

	injected := errors.New("injected failure")
	err := db.Callback().Delete().Before("gorm:delete").Register("test:fail_on_teams", func(tx *gorm.DB) {
		if tx.Statement.Table == "teams" {
			tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	err = d.HackathonRepo().Delete(context.Background(), h.ID)
	if !errors.Is(err, injected) {
		t.Fatalf("Delete error = %v, want injected failure", err)
	}
	if errs.StatusCode(err) != 500 || !errs.IsTransactionFailedError(err) {
		t.Errorf("status = %d, transaction failed = %v", errs.StatusCode(err), errs.IsTransactionFailedError(err))
	}

	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"participants": &models.Participant{},
		"teams":        &models.Team{},
		"submissions":  &models.Submission{},
		"hackathons":   &models.Hackathon{},
	} {
		var n int64
		db.Model(model).Count(&n)
		counts[name] = n
	}
	want := map[string]int64{"participants": 4, "teams": 2, "submissions": 2, "hackathons": 1}
	for name, n := range want {
		if counts[name] != n {
			t.Errorf("%s: %d rows after rollback, want %d", name, counts[name], n)
		}
	}
}

func TestDeleteTeamCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	h := testutil.CreateTestHackathon(t, db, organizer.ID)
	testutil.CreateTestDependents(t, db, h.ID, 4, 2)

	teams, err := d.TeamRepo().ListByHackathon(context.Background(), h.ID)
	if err != nil || len(teams) != 2 {
		t.Fatalf("teams = %d, err %v", len(teams), err)
	}
	doomed := teams[0]

	if err := d.TeamRepo().Delete(context.Background(), doomed.ID); err != nil {
		t.Fatalf("Delete team: %v", err)
	}

	var submissions, members, participants int64
	db.Model(&models.Submission{}).Where("team_id = ?", doomed.ID).Count(&submissions)
	db.Model(&models.Participant{}).Where("team_id = ?", doomed.ID).Count(&members)
	db.Model(&models.Participant{}).Where("hackathon_id = ?", h.ID).Count(&participants)
	if submissions != 0 || members != 0 {
		t.Errorf("team still referenced: %d submissions, %d members", submissions, members)
	}
	if participants != 4 {
		t.Errorf("participants should stay registered, have %d", participants)
	}
}

func TestUpdateHackathon(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	h := testutil.CreateTestHackathon(t, db, organizer.ID)

	if err := d.HackathonRepo().Update(ctx, h.ID, map[string]any{"prize_pool": "$2000", "status": "ongoing"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := d.HackathonRepo().FindByID(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.PrizePool != "$2000" || got.Status != models.HackathonOngoing || got.Name != h.Name {
		t.Errorf("after update: %+v", got)
	}

	if err := d.HackathonRepo().Update(ctx, uuid.New(), map[string]any{"name": "x"}); !errs.IsNotFound(err) {
		t.Errorf("update of missing hackathon: %v", err)
	}
}

func TestAdvanceStatuses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	window := func(start, end time.Time, status models.HackathonStatus) func(*models.Hackathon) {
		return func(h *models.Hackathon) {
			h.StartDate, h.EndDate, h.Status = start, end, status
		}
	}
	future := testutil.CreateTestHackathon(t, db, organizer.ID, window(now.Add(24*time.Hour), now.Add(48*time.Hour), models.HackathonUpcoming))
	running := testutil.CreateTestHackathon(t, db, organizer.ID, window(now.Add(-time.Hour), now.Add(time.Hour), models.HackathonUpcoming))
	finished := testutil.CreateTestHackathon(t, db, organizer.ID, window(now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.HackathonOngoing))
	skipped := testutil.CreateTestHackathon(t, db, organizer.ID, window(now.Add(-48*time.Hour), now.Add(-time.Hour), models.HackathonUpcoming))

	moved, err := d.HackathonRepo().AdvanceStatuses(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 3 {
		t.Errorf("moved %d hackathons, want 3", moved)
	}

	want := map[uuid.UUID]models.HackathonStatus{
		future.ID:   models.HackathonUpcoming,
		running.ID:  models.HackathonOngoing,
		finished.ID: models.HackathonPast,
		skipped.ID:  models.HackathonPast,
	}
	for id, status := range want {
		got, err := d.HackathonRepo().FindByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != status {
			t.Errorf("%s: status %q, want %q", got.Name, got.Status, status)
		}
	}

	again, err := d.HackathonRepo().AdvanceStatuses(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if again != 0 {
		t.Errorf("second pass moved %d hackathons", again)
	}
}

func TestAdvanceStatusesWithOffsetTimestamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)
	est := time.FixedZone("EST", -5*3600)

	// 23:00 EST is 04:00 UTC on the next day.
	end := time.Date(2025, 1, 1, 23, 0, 0, 0, est)
	h := testutil.CreateTestHackathon(t, db, organizer.ID, func(h *models.Hackathon) {
		h.StartDate = time.Date(2025, 1, 1, 20, 0, 0, 0, est)
		h.EndDate = end
		h.Status = models.HackathonUpcoming
	})

	got, err := d.HackathonRepo().FindByID(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.EndDate.Equal(end) {
		t.Errorf("EndDate = %v, want instant %v", got.EndDate, end.UTC())
	}
	if got.EndDate.Hour() != 4 {
		t.Errorf("EndDate stored as %v, want 04:00 UTC", got.EndDate)
	}

	moved, err := d.HackathonRepo().AdvanceStatuses(ctx, time.Date(2025, 1, 2, 2, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if moved != 1 {
		t.Errorf("moved %d hackathons, want 1", moved)
	}
	got, err = d.HackathonRepo().FindByID(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.HackathonOngoing {
		t.Errorf("status %q, want %q", got.Status, models.HackathonOngoing)
	}

	shifted := time.Date(2025, 1, 2, 1, 0, 0, 0, est)
	if err := d.HackathonRepo().Update(ctx, h.ID, map[string]any{"end_date": shifted}); err != nil {
		t.Fatal(err)
	}
	got, err = d.HackathonRepo().FindByID(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.EndDate.Equal(shifted) {
		t.Errorf("updated EndDate = %v, want instant %v", got.EndDate, shifted.UTC())
	}
}

func TestTransactionRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)

	boom := errors.New("boom")
	err := d.Transaction(ctx, func(tx Database) error {
		if err := tx.ActivityLogRepo().Add(ctx, &models.ActivityLog{
			Action: models.ActionLogin, ResourceType: models.ResourceUser, UserID: organizer.ID,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction error = %v", err)
	}

	entries, err := d.ActivityLogRepo().ListByUser(ctx, organizer.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("rolled back entry persisted: %+v", entries)
	}
}

func TestUserRepo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()
	organizer := testutil.CreateTestUser(t, db, models.RoleOrganizer)

	found, err := d.UserRepo().FindByEmailOrUsername(ctx, "nobody@example.com", organizer.Username)
	if err != nil || found.ID != organizer.ID {
		t.Errorf("lookup by username: %v, %v", found, err)
	}
	if _, err := d.UserRepo().FindByEmail(ctx, "nobody@example.com"); !errs.IsNotFound(err) {
		t.Errorf("missing user: %v", err)
	}

	dup := *organizer
	dup.ID = uuid.Nil
	dup.Username = "someone-else"
	if err := d.UserRepo().Add(ctx, &dup); !errs.IsUniqueConstraintViolationError(err) {
		t.Errorf("duplicate email insert: %v", err)
	}

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := d.UserRepo().TouchLastLogin(ctx, organizer.ID, at); err != nil {
		t.Fatal(err)
	}
	reloaded, err := d.UserRepo().FindByID(ctx, organizer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.LastLogin == nil || !reloaded.LastLogin.Equal(at) {
		t.Errorf("last_login = %v, want %v", reloaded.LastLogin, at)
	}

	organizers, err := d.UserRepo().Count(ctx, models.RoleOrganizer)
	if err != nil || organizers != 1 {
		t.Errorf("organizer count = %d, err %v", organizers, err)
	}
}

func TestSeedSampleData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	d := New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seeded, err := SeedSampleData(ctx, d, now)
	if err != nil || !seeded {
		t.Fatalf("first seed: %v, %v", seeded, err)
	}
	seeded, err = SeedSampleData(ctx, d, now)
	if err != nil || seeded {
		t.Fatalf("second seed should be skipped: %v, %v", seeded, err)
	}

	admin, err := d.UserRepo().FindByEmail(ctx, "admin@hackathon.com")
	if err != nil || !admin.IsSuperadmin() {
		t.Fatalf("admin: %+v, %v", admin, err)
	}
	total, err := d.HackathonRepo().Count(ctx, ScopeFor(*admin), "")
	if err != nil || total != 3 {
		t.Errorf("seeded hackathons = %d, err %v", total, err)
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		page, size int
		ok         bool
	}{
		{1, 10, true},
		{3, 100, true},
		{0, 10, false},
		{1, 0, false},
		{1, 101, false},
	}
	for _, tt := range tests {
		p, err := NewPage(tt.page, tt.size)
		if (err == nil) != tt.ok {
			t.Errorf("NewPage(%d, %d) err = %v", tt.page, tt.size, err)
		}
		if tt.ok && p.Offset() != (tt.page-1)*tt.size {
			t.Errorf("Offset = %d", p.Offset())
		}
		if !tt.ok && !errs.IsBadRequest(err) {
			t.Errorf("NewPage(%d, %d) should be a bad request", tt.page, tt.size)
		}
	}
}
