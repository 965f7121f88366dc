package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an organizer or a superadmin. Users are deactivated, never hard-deleted.
type User struct {
	ID               uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email            string            `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Username         string            `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	HashedPassword   string            `json:"-" db:"hashed_password" gorm:"type:text;not null"`
	FullName         string            `json:"full_name" db:"full_name" gorm:"type:text;not null"`
	Role             UserRole          `json:"role" db:"role" gorm:"type:text;not null"`
	IsActive         bool              `json:"is_active" db:"is_active" gorm:"not null"`
	RegistrationDate time.Time         `json:"registration_date" db:"registration_date" gorm:"type:timestamp;not null"`
	LastLogin        *time.Time        `json:"last_login,omitempty" db:"last_login" gorm:"type:timestamp"`
	ProfileData      datatypes.JSONMap `json:"profile_data,omitempty" db:"profile_data"`

	OrganizedHackathons []Hackathon   `json:"-" gorm:"foreignKey:OrganizerID;references:ID"`
	ActivityLogs        []ActivityLog `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	if u.RegistrationDate.IsZero() {
		u.RegistrationDate = time.Now().UTC()
	}
	return nil
}

func (u User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
