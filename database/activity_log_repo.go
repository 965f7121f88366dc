package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityLogRepo struct {
	db *gorm.DB
}

func NewActivityLogRepo(db *gorm.DB) *ActivityLogRepo {
	return &ActivityLogRepo{db}
}

func (r *ActivityLogRepo) Add(ctx context.Context, entry *models.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return errs.NewDatabaseError("create", "activity log", err)
	}
	return nil
}

// ListByUser returns a user's most recent activity first.
func (r *ActivityLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "activity logs", err)
	}
	return entries, nil
}
