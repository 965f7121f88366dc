package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HackathonRepo struct {
	db *gorm.DB
}

func NewHackathonRepo(db *gorm.DB) *HackathonRepo {
	return &HackathonRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *HackathonRepo) GetDB() *gorm.DB {
	return r.db
}

// Add inserts a new hackathon. Associations are never upserted through it.
func (r *HackathonRepo) Add(ctx context.Context, hackathon *models.Hackathon) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(hackathon).Error; err != nil {
		return errs.NewDatabaseError("create", "hackathon", err)
	}
	return nil
}

// FindByID returns a hackathon with its organizer loaded.
func (r *HackathonRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Hackathon, error) {
	var hackathon models.Hackathon
	err := r.db.WithContext(ctx).Preload("Organizer").First(&hackathon, "id = ?", id).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "hackathon", err)
	}
	return &hackathon, nil
}

// List returns one page of the hackathons visible under scope and matching
// filter, ordered by creation time then id, along with the unpaginated total.
func (r *HackathonRepo) List(ctx context.Context, scope Scope, filter Filter, page Page) ([]models.Hackathon, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Hackathon{}).Scopes(scope.Hackathons, filter.Apply)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, errs.NewDatabaseError("count", "hackathons", err)
	}

	var hackathons []models.Hackathon
	err := base().
		Preload("Organizer").
		Order("hackathons.created_at ASC").
		Order("hackathons.id ASC").
		Scopes(page.Apply).
		Find(&hackathons).Error
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "hackathons", err)
	}
	return hackathons, total, nil
}

type hackathonCount struct {
	HackathonID uuid.UUID
	N           int64
}

// Counts returns live participant, team and submission counts per hackathon id.
// Ids with no dependents are present with zero counts.
func (r *HackathonRepo) Counts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.HackathonCounts, error) {
	counts := make(map[uuid.UUID]models.HackathonCounts, len(ids))
	for _, id := range ids {
		counts[id] = models.HackathonCounts{}
	}
	if len(ids) == 0 {
		return counts, nil
	}

	tally := func(model interface{}, entity string, set func(*models.HackathonCounts, int64)) error {
		var rows []hackathonCount
		err := r.db.WithContext(ctx).Model(model).
			Select("hackathon_id, COUNT(*) AS n").
			Where("hackathon_id IN ?", ids).
			Group("hackathon_id").
			Scan(&rows).Error
		if err != nil {
			return errs.NewDatabaseError("count", entity, err)
		}
		for _, row := range rows {
			c := counts[row.HackathonID]
			set(&c, row.N)
			counts[row.HackathonID] = c
		}
		return nil
	}

	if err := tally(&models.Participant{}, "participants", func(c *models.HackathonCounts, n int64) { c.Participants = n }); err != nil {
		return nil, err
	}
	if err := tally(&models.Team{}, "teams", func(c *models.HackathonCounts, n int64) { c.Teams = n }); err != nil {
		return nil, err
	}
	if err := tally(&models.Submission{}, "submissions", func(c *models.HackathonCounts, n int64) { c.Submissions = n }); err != nil {
		return nil, err
	}
	return counts, nil
}

// Update writes the given column changes to one hackathon.
func (r *HackathonRepo) Update(ctx context.Context, id uuid.UUID, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	for column, value := range changes {
		if t, ok := value.(time.Time); ok {
			changes[column] = t.UTC()
		}
	}
	res := r.db.WithContext(ctx).Model(&models.Hackathon{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return errs.NewDatabaseError("update", "hackathon", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError("hackathon not found")
	}
	return nil
}

// Delete removes a hackathon and every row that references it, directly or
// through one of its teams. Members of its teams registered for another
// hackathon are detached, not deleted. Either all of it happens or none does.
func (r *HackathonRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []struct {
			model  interface{}
			entity string
		}{
			{&models.Submission{}, "submissions"},
			{&models.Participant{}, "participants"},
			{&models.Team{}, "teams"},
			{&models.MentorSession{}, "mentor sessions"},
		}
		teams := tx.Model(&models.Team{}).Select("id").Where("hackathon_id = ?", id)
		if err := tx.Where("team_id IN (?)", teams).Delete(&models.Submission{}).Error; err != nil {
			return errs.NewDatabaseError("delete", "team submissions", err)
		}
		err := tx.Model(&models.Participant{}).Where("team_id IN (?)", teams).Update("team_id", nil).Error
		if err != nil {
			return errs.NewDatabaseError("detach", "team members", err)
		}

		for _, d := range dependents {
			if err := tx.Where("hackathon_id = ?", id).Delete(d.model).Error; err != nil {
				return errs.NewDatabaseError("delete", d.entity, err)
			}
		}

		res := tx.Where("id = ?", id).Delete(&models.Hackathon{})
		if res.Error != nil {
			return errs.NewDatabaseError("delete", "hackathon", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFoundError("hackathon not found")
		}
		return nil
	})
	if err != nil && !errs.IsNotFound(err) {
		return errs.NewTransactionFailedError("delete hackathon", err)
	}
	return err
}

// AdvanceStatuses moves hackathons along upcoming -> ongoing -> past based on
// their dates. Running it again with the same now changes nothing.
func (r *HackathonRepo) AdvanceStatuses(ctx context.Context, now time.Time) (int64, error) {
	now = now.UTC()
	var moved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Hackathon{}).
			Where("status IN ? AND end_date <= ?", []string{string(models.HackathonUpcoming), string(models.HackathonOngoing)}, now).
			Updates(map[string]any{"status": string(models.HackathonPast), "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		moved += res.RowsAffected

		res = tx.Model(&models.Hackathon{}).
			Where("status = ? AND start_date <= ? AND end_date > ?", string(models.HackathonUpcoming), now, now).
			Updates(map[string]any{"status": string(models.HackathonOngoing), "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		moved += res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, errs.NewDatabaseError("advance", "hackathon statuses", err)
	}
	return moved, nil
}

// Count returns how many hackathons are visible under scope, optionally only
// those in one status.
func (r *HackathonRepo) Count(ctx context.Context, scope Scope, status models.HackathonStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Hackathon{}).
		Scopes(scope.Hackathons, Filter{Status: status}.Apply).
		Count(&total).Error
	if err != nil {
		return 0, errs.NewDatabaseError("count", "hackathons", err)
	}
	return total, nil
}
