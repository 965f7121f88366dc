package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/contract"
	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"github.com/rpupo63/hackathon-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type hackathonHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	now       func() time.Time
}

func newHackathonHandler(db database.Database) hackathonHandler {
	logger := log.With().Str("handlerName", "hackathonHandler").Logger()

	return hackathonHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// listHackathons returns the caller's hackathons, one page at a time
// @Summary List hackathons
// @Description Organizers see their own hackathons, superadmins see all of them
// @Tags Hackathons
// @Produce json
// @Param page query int false "Page number, from 1" default(1)
// @Param size query int false "Page size, 1 to 100" default(10)
// @Param status query string false "upcoming, ongoing or past"
// @Param search query string false "Case-insensitive name substring"
// @Success 200 {object} contract.HackathonListResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid page, size or status"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/hackathons [get]
func (h hackathonHandler) listHackathons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		query := r.URL.Query()
		pageNumber, err := intQueryParam(query.Get("page"), "page", 1)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		pageSize, err := intQueryParam(query.Get("size"), "size", database.DefaultPageSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		page, err := database.NewPage(pageNumber, pageSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.Filter{Search: strings.TrimSpace(query.Get("search"))}
		if status := query.Get("status"); status != "" {
			filter.Status = models.HackathonStatus(status)
			if !filter.Status.Valid() {
				h.responder.WriteError(w, errs.NewInvalidQueryParamError("status", "must be one of: upcoming, ongoing, past"))
				return
			}
		}

		hackathons, total, err := h.db.HackathonRepo().List(r.Context(), database.ScopeFor(*user), filter, page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ids := make([]uuid.UUID, len(hackathons))
		for i, hackathon := range hackathons {
			ids[i] = hackathon.ID
		}
		counts, err := h.db.HackathonRepo().Counts(r.Context(), ids)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		items := make([]contract.HackathonResponse, 0, len(hackathons))
		for _, hackathon := range hackathons {
			items = append(items, contract.NewHackathonResponse(hackathon, counts[hackathon.ID]))
		}

		h.responder.WriteJSON(w, contract.NewHackathonListResponse(items, total, page.Number, page.Size))
	}
}

// getHackathon returns a single hackathon with its live counts
// @Summary Get hackathon
// @Tags Hackathons
// @Produce json
// @Param hackathonID path string true "Hackathon ID" format(uuid)
// @Success 200 {object} contract.HackathonResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid hackathonID"
// @Failure 403 {object} ErrorResponse "Forbidden - Another organizer's hackathon"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/hackathons/{hackathonID} [get]
func (h hackathonHandler) getHackathon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hackathon, err := h.loadAuthorized(r, user, errs.NewForbiddenError("Access denied"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.writeHackathon(r.Context(), w, hackathon)
	}
}

// createHackathon creates a hackathon owned by the caller
// @Summary Create hackathon
// @Description Missing optional fields take their defaults; the new hackathon starts as upcoming
// @Tags Hackathons
// @Accept json
// @Produce json
// @Param hackathon body contract.HackathonCreate true "Hackathon data"
// @Success 200 {object} contract.HackathonResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden - Insufficient role"
// @Router /api/hackathons [post]
func (h hackathonHandler) createHackathon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req contract.HackathonCreate
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := contract.Validate(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hackathon, err := req.ToModel(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err = h.db.Transaction(r.Context(), func(tx database.Database) error {
			if err := tx.HackathonRepo().Add(r.Context(), hackathon); err != nil {
				return err
			}
			return services.RecordActivity(r.Context(), tx, services.Activity{
				UserID:       user.ID,
				Action:       models.ActionCreateHackathon,
				ResourceType: models.ResourceHackathon,
				ResourceID:   &hackathon.ID,
				Details:      map[string]any{"name": hackathon.Name},
				IPAddress:    clientIP(r),
			})
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("hackathonID", hackathon.ID.String()).
			Str("organizerID", user.ID.String()).
			Msg("hackathon created")

		hackathon.Organizer = user
		h.responder.WriteJSON(w, contract.NewHackathonResponse(*hackathon, models.HackathonCounts{}))
	}
}

// updateHackathon merges the submitted fields into an existing hackathon
// @Summary Update hackathon
// @Tags Hackathons
// @Accept json
// @Produce json
// @Param hackathonID path string true "Hackathon ID" format(uuid)
// @Param hackathon body contract.HackathonUpdate true "Fields to change"
// @Success 200 {object} contract.HackathonResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/hackathons/{hackathonID} [put]
func (h hackathonHandler) updateHackathon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hackathon, err := h.loadAuthorized(r, user, errs.NewNotOwnerError("update"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req contract.HackathonUpdate
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := contract.Validate(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		changes := req.Apply(hackathon)
		if err := contract.ValidateHackathon(hackathon); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		changed := make([]string, 0, len(changes))
		for column := range changes {
			changed = append(changed, contract.ExternalName(column))
		}
		changes["updated_at"] = h.now()

		err = h.db.Transaction(r.Context(), func(tx database.Database) error {
			if err := tx.HackathonRepo().Update(r.Context(), hackathon.ID, changes); err != nil {
				return err
			}
			return services.RecordActivity(r.Context(), tx, services.Activity{
				UserID:       user.ID,
				Action:       models.ActionUpdateHackathon,
				ResourceType: models.ResourceHackathon,
				ResourceID:   &hackathon.ID,
				Details:      map[string]any{"fields": changed},
				IPAddress:    clientIP(r),
			})
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.db.HackathonRepo().FindByID(r.Context(), hackathon.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.writeHackathon(r.Context(), w, updated)
	}
}

// deleteHackathon removes a hackathon with all of its participants, teams,
// submissions and mentor sessions
// @Summary Delete hackathon
// @Tags Hackathons
// @Produce json
// @Param hackathonID path string true "Hackathon ID" format(uuid)
// @Success 200 {object} contract.SuccessResponse
// @Failure 403 {object} ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/hackathons/{hackathonID} [delete]
func (h hackathonHandler) deleteHackathon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hackathon, err := h.loadAuthorized(r, user, errs.NewNotOwnerError("delete"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err = h.db.Transaction(r.Context(), func(tx database.Database) error {
			if err := tx.HackathonRepo().Delete(r.Context(), hackathon.ID); err != nil {
				return err
			}
			return services.RecordActivity(r.Context(), tx, services.Activity{
				UserID:       user.ID,
				Action:       models.ActionDeleteHackathon,
				ResourceType: models.ResourceHackathon,
				ResourceID:   &hackathon.ID,
				Details:      map[string]any{"name": hackathon.Name},
				IPAddress:    clientIP(r),
			})
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("hackathonID", hackathon.ID.String()).Msg("hackathon deleted")
		h.responder.WriteJSON(w, contract.SuccessResponse{
			Success: true,
			Message: "Hackathon deleted successfully",
		})
	}
}

// getLandingPage returns the public view of a hackathon
// @Summary Hackathon landing page
// @Description Public, no token required. The organizer is never included.
// @Tags Hackathons
// @Produce json
// @Param hackathonID path string true "Hackathon ID" format(uuid)
// @Success 200 {object} contract.LandingPage
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/hackathons/{hackathonID}/landing [get]
func (h hackathonHandler) getLandingPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hackathonID, err := hackathonIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hackathon, err := h.db.HackathonRepo().FindByID(r.Context(), hackathonID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, contract.NewLandingPage(*hackathon))
	}
}

// loadAuthorized fetches the hackathon named in the path. A missing hackathon
// is reported before an ownership failure.
func (h hackathonHandler) loadAuthorized(r *http.Request, user *models.User, denied error) (*models.Hackathon, error) {
	hackathonID, err := hackathonIDParam(r)
	if err != nil {
		return nil, err
	}

	hackathon, err := h.db.HackathonRepo().FindByID(r.Context(), hackathonID)
	if err != nil {
		return nil, err
	}

	if !database.ScopeFor(*user).Permits(*hackathon) {
		h.logger.Info().
			Str("hackathonID", hackathonID.String()).
			Str("userID", user.ID.String()).
			Msg("access to another organizer's hackathon denied")
		return nil, denied
	}
	return hackathon, nil
}

func (h hackathonHandler) writeHackathon(ctx context.Context, w http.ResponseWriter, hackathon *models.Hackathon) {
	counts, err := h.db.HackathonRepo().Counts(ctx, []uuid.UUID{hackathon.ID})
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}
	h.responder.WriteJSON(w, contract.NewHackathonResponse(*hackathon, counts[hackathon.ID]))
}

func hackathonIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "hackathonID")
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing hackathonID")
	}
	hackathonID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid hackathonID")
	}
	return hackathonID, nil
}

func intQueryParam(raw, name string, defaultValue int) (int, error) {
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewInvalidQueryParamError(name, "must be an integer")
	}
	return n, nil
}
