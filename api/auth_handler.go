package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/hackathon-platform-backend/auth"
	"github.com/rpupo63/hackathon-platform-backend/contract"
	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"github.com/rpupo63/hackathon-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	db            database.Database
	tokens        *auth.TokenIssuer
	rememberMeTTL time.Duration
}

func newAuthHandler(db database.Database, tokens *auth.TokenIssuer, rememberMeTTL time.Duration) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		db:            db,
		tokens:        tokens,
		rememberMeTTL: rememberMeTTL,
	}
}

// login exchanges credentials for an access token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body contract.LoginRequest true "Email and password"
// @Success 200 {object} contract.TokenResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Inactive account"
// @Failure 401 {object} ErrorResponse "Unauthorized - Incorrect email or password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contract.LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := contract.Validate(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.db.UserRepo().FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, err)
			return
		}
		if !auth.CheckPassword(req.Password, user.HashedPassword) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}
		if !user.IsActive {
			h.responder.WriteError(w, errs.NewInactiveAccountError())
			return
		}

		now := time.Now().UTC()
		if err := h.db.UserRepo().TouchLastLogin(r.Context(), user.ID, now); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user.LastLogin = &now

		ttl := h.tokens.TTL()
		if req.RememberMe && h.rememberMeTTL > 0 {
			ttl = h.rememberMeTTL
		}
		token, _, err := h.tokens.Issue(user.ID.String(), ttl)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		services.RecordActivityBestEffort(r.Context(), h.db, services.Activity{
			UserID:       user.ID,
			Action:       models.ActionLogin,
			ResourceType: models.ResourceUser,
			ResourceID:   &user.ID,
			Details:      map[string]any{"remember_me": req.RememberMe},
			IPAddress:    clientIP(r),
		})

		h.responder.WriteJSON(w, contract.NewTokenResponse(token, ttl, *user))
	}
}

// register creates an active account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body contract.RegisterRequest true "Account data"
// @Success 200 {object} contract.UserResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Email or username already taken"
// @Router /api/auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contract.RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		req.Normalize()
		if err := contract.Validate(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		_, err := h.db.UserRepo().FindByEmailOrUsername(r.Context(), req.Email, req.Username)
		switch {
		case err == nil:
			h.responder.WriteError(w, errUserExists())
			return
		case !errs.IsNotFound(err):
			h.responder.WriteError(w, err)
			return
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		user := req.ToModel(hashed)
		if err := h.db.UserRepo().Add(r.Context(), user); err != nil {
			if errs.IsUniqueConstraintViolationError(err) {
				h.responder.WriteError(w, errUserExists())
				return
			}
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("user registered")
		services.RecordActivityBestEffort(r.Context(), h.db, services.Activity{
			UserID:       user.ID,
			Action:       models.ActionRegister,
			ResourceType: models.ResourceUser,
			ResourceID:   &user.ID,
			IPAddress:    clientIP(r),
		})

		h.responder.WriteJSON(w, contract.NewUserResponse(*user))
	}
}

func errUserExists() *errs.ApiErr {
	return errs.NewAlreadyExists("User with this email or username")
}
