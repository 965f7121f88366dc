package models

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Hackathon{},
		&Team{},
		&Participant{},
		&Submission{},
		&MentorSession{},
		&ActivityLog{},
	}
}

// Migrate creates or alters the tables for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
