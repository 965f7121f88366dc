package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/hackathon-platform-backend/models"
)

// setupPublicRoutes registers the routes that need no token
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, static http.Handler) {
	r.Get("/", handlers.systemHandler.banner())
	r.Get("/health", handlers.systemHandler.health())
	if static != nil {
		r.Handle("/static/*", static)
	}

	r.Post("/api/auth/login", handlers.authHandler.login())
	r.Post("/api/auth/register", handlers.authHandler.register())
	r.Get("/api/hackathons/{hackathonID}/landing", handlers.hackathonHandler.getLandingPage())
}

// setupAuthenticatedRoutes registers the routes behind bearer authentication
func setupAuthenticatedRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/api/hackathons", handlers.hackathonHandler.listHackathons())
		r.Get("/api/hackathons/{hackathonID}", handlers.hackathonHandler.getHackathon())
		r.Put("/api/hackathons/{hackathonID}", handlers.hackathonHandler.updateHackathon())
		r.Delete("/api/hackathons/{hackathonID}", handlers.hackathonHandler.deleteHackathon())
		r.With(authMiddleware.requireRole(models.RoleOrganizer, models.RoleSuperadmin)).
			Post("/api/hackathons", handlers.hackathonHandler.createHackathon())

		r.Get("/api/dashboard/metrics", handlers.dashboardHandler.getMetrics())
	})
}
