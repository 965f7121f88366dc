package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// childRepo holds the operations shared by every table keyed to a hackathon.
type childRepo[T any] struct {
	db     *gorm.DB
	entity string
}

func (r childRepo[T]) Add(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return errs.NewDatabaseError("create", r.entity, err)
	}
	return nil
}

func (r childRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", r.entity, err)
	}
	return &row, nil
}

func (r childRepo[T]) ListByHackathon(ctx context.Context, hackathonID uuid.UUID) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).Where("hackathon_id = ?", hackathonID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", r.entity, err)
	}
	return rows, nil
}

func (r childRepo[T]) Update(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(row).Error; err != nil {
		return errs.NewDatabaseError("update", r.entity, err)
	}
	return nil
}

func (r childRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return errs.NewDatabaseError("delete", r.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound(r.entity)
	}
	return nil
}

// Count returns the rows that belong to hackathons visible under scope.
func (r childRepo[T]) Count(ctx context.Context, scope Scope) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(scope.Dependents).Count(&total).Error; err != nil {
		return 0, errs.NewDatabaseError("count", r.entity, err)
	}
	return total, nil
}
