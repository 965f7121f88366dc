package api

import (
	"time"

	"github.com/rpupo63/hackathon-platform-backend/auth"
	"github.com/rpupo63/hackathon-platform-backend/database"
)

type routeHandlers struct {
	authHandler      authHandler
	hackathonHandler hackathonHandler
	dashboardHandler dashboardHandler
	systemHandler    systemHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens *auth.TokenIssuer, rememberMeTTL time.Duration, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(db, tokens, rememberMeTTL),
		hackathonHandler: newHackathonHandler(db),
		dashboardHandler: newDashboardHandler(db),
		systemHandler:    newSystemHandler(db, startupTime),
	}
}
