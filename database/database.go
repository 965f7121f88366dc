package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	db                *gorm.DB
	userRepo          *UserRepo
	hackathonRepo     *HackathonRepo
	participantRepo   *ParticipantRepo
	teamRepo          *TeamRepo
	submissionRepo    *SubmissionRepo
	mentorSessionRepo *MentorSessionRepo
	activityLogRepo   *ActivityLogRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                db,
		userRepo:          NewUserRepo(db),
		hackathonRepo:     NewHackathonRepo(db),
		participantRepo:   NewParticipantRepo(db),
		teamRepo:          NewTeamRepo(db),
		submissionRepo:    NewSubmissionRepo(db),
		mentorSessionRepo: NewMentorSessionRepo(db),
		activityLogRepo:   NewActivityLogRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) HackathonRepo() *HackathonRepo {
	return d.hackathonRepo
}

func (d Database) ParticipantRepo() *ParticipantRepo {
	return d.participantRepo
}

func (d Database) TeamRepo() *TeamRepo {
	return d.teamRepo
}

func (d Database) SubmissionRepo() *SubmissionRepo {
	return d.submissionRepo
}

func (d Database) MentorSessionRepo() *MentorSessionRepo {
	return d.mentorSessionRepo
}

func (d Database) ActivityLogRepo() *ActivityLogRepo {
	return d.activityLogRepo
}

// Transaction runs fn with repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping checks that the primary connection answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
