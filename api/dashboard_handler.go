package api

import (
	"net/http"

	"github.com/rpupo63/hackathon-platform-backend/contract"
	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newDashboardHandler(db database.Database) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// getMetrics returns headline counts over the hackathons the caller can see
// @Summary Dashboard metrics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} contract.DashboardMetrics
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/dashboard/metrics [get]
func (h dashboardHandler) getMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		ctx := r.Context()
		scope := database.ScopeFor(*user)

		var metrics contract.DashboardMetrics
		counters := []struct {
			dst   *int64
			count func() (int64, error)
		}{
			{&metrics.TotalHackathons, func() (int64, error) { return h.db.HackathonRepo().Count(ctx, scope, "") }},
			{&metrics.ActiveHackathons, func() (int64, error) { return h.db.HackathonRepo().Count(ctx, scope, models.HackathonOngoing) }},
			{&metrics.TotalParticipants, func() (int64, error) { return h.db.ParticipantRepo().Count(ctx, scope) }},
			{&metrics.TotalTeams, func() (int64, error) { return h.db.TeamRepo().Count(ctx, scope) }},
			{&metrics.TotalSubmissions, func() (int64, error) { return h.db.SubmissionRepo().Count(ctx, scope) }},
			{&metrics.TotalMentorSessions, func() (int64, error) { return h.db.MentorSessionRepo().Count(ctx, scope) }},
		}
		for _, c := range counters {
			n, err := c.count()
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			*c.dst = n
		}

		// an organizer only ever counts themselves
		metrics.TotalOrganizers = 1
		if user.IsSuperadmin() {
			metrics.TotalOrganizers, err = h.db.UserRepo().Count(ctx, models.RoleOrganizer)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		if metrics.TotalHackathons > 0 {
			metrics.AverageParticipantsPerHackathon = float64(metrics.TotalParticipants) / float64(metrics.TotalHackathons)
		}

		h.responder.WriteJSON(w, metrics)
	}
}
