package database

import (
	"github.com/rpupo63/hackathon-platform-backend/models"
	"gorm.io/gorm"
)

type ParticipantRepo struct {
	childRepo[models.Participant]
}

func NewParticipantRepo(db *gorm.DB) *ParticipantRepo {
	return &ParticipantRepo{childRepo[models.Participant]{db: db, entity: "participant"}}
}

type SubmissionRepo struct {
	childRepo[models.Submission]
}

func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{childRepo[models.Submission]{db: db, entity: "submission"}}
}

type MentorSessionRepo struct {
	childRepo[models.MentorSession]
}

func NewMentorSessionRepo(db *gorm.DB) *MentorSessionRepo {
	return &MentorSessionRepo{childRepo[models.MentorSession]{db: db, entity: "mentor session"}}
}
