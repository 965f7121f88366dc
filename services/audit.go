package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// Activity describes one audited action by a user.
type Activity struct {
	UserID       uuid.UUID
	Action       string
	ResourceType string
	ResourceID   *uuid.UUID
	Details      map[string]any
	IPAddress    string
}

func (a Activity) toModel() *models.ActivityLog {
	entry := &models.ActivityLog{
		UserID:       a.UserID,
		Action:       a.Action,
		ResourceType: a.ResourceType,
		ResourceID:   a.ResourceID,
	}
	if len(a.Details) > 0 {
		entry.Details = datatypes.JSONMap(a.Details)
	}
	if a.IPAddress != "" {
		ip := a.IPAddress
		entry.IPAddress = &ip
	}
	return entry
}

// RecordActivity writes an activity log entry through db, which may be bound
// to a transaction so the entry commits or rolls back with the change it describes.
func RecordActivity(ctx context.Context, db database.Database, a Activity) error {
	return db.ActivityLogRepo().Add(ctx, a.toModel())
}

// RecordActivityBestEffort writes an entry outside any transaction. A failure
// is logged and otherwise ignored.
func RecordActivityBestEffort(ctx context.Context, db database.Database, a Activity) {
	if err := RecordActivity(ctx, db, a); err != nil {
		log.Warn().Err(err).
			Str("action", a.Action).
			Str("userID", a.UserID.String()).
			Msg("failed to record activity")
	}
}
