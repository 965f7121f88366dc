package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"gorm.io/gorm"
)

type TeamRepo struct {
	childRepo[models.Team]
}

func NewTeamRepo(db *gorm.DB) *TeamRepo {
	return &TeamRepo{childRepo[models.Team]{db: db, entity: "team"}}
}

// Delete removes a team and its submissions. Members stay registered for the
// hackathon but no longer belong to a team.
func (r *TeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return errs.NewDatabaseError("delete", "submissions", err)
		}
		err := tx.Model(&models.Participant{}).Where("team_id = ?", id).Update("team_id", nil).Error
		if err != nil {
			return errs.NewDatabaseError("detach", "participants", err)
		}

		res := tx.Where("id = ?", id).Delete(&models.Team{})
		if res.Error != nil {
			return errs.NewDatabaseError("delete", "team", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFound("team")
		}
		return nil
	})
	if err != nil && !errs.IsNotFound(err) {
		return errs.NewTransactionFailedError("delete team", err)
	}
	return err
}
