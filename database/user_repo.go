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

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return errs.NewDatabaseError("create", "user", err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	return &user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	return &user, nil
}

// FindByEmailOrUsername returns any user holding either identifier.
func (r *UserRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		First(&user).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	return &user, nil
}

func (r *UserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
	if err != nil {
		return errs.NewDatabaseError("update", "user", err)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return errs.NewDatabaseError("update", "user", err)
	}
	return nil
}

// Count returns the number of users, or of users with role when it is set.
func (r *UserRepo) Count(ctx context.Context, role models.UserRole) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", string(role))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, errs.NewDatabaseError("count", "users", err)
	}
	return total, nil
}
