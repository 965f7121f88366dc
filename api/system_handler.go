package api

import (
	"net/http"
	"os"
	"time"

	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	serviceName    = "Hackathon Management Platform API"
	serviceVersion = "1.0.0"
)

type systemHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          database.Database
	startupTime time.Time
}

func newSystemHandler(db database.Database, startupTime time.Time) systemHandler {
	logger := log.With().Str("handlerName", "systemHandler").Logger()

	return systemHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

type bannerResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime,omitempty"`
	Database  string    `json:"database,omitempty"`
}

// @Summary Service banner
// @Tags System
// @Produce json
// @Success 200 {object} bannerResponse
// @Router / [get]
func (h systemHandler) banner() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, bannerResponse{Message: serviceName, Version: serviceVersion})
	}
}

// health is a liveness probe. A failing database ping is reported in the
// body but does not change the status code.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func (h systemHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Database:  "ok",
		}
		if !h.startupTime.IsZero() {
			resp.Uptime = time.Since(h.startupTime).Round(time.Second).String()
		}
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("database ping failed")
			resp.Database = "unavailable"
		}
		h.responder.WriteJSON(w, resp)
	}
}

// staticFiles serves dir under prefix, or nothing when dir does not exist.
func staticFiles(prefix, dir string) (http.Handler, bool) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Info().Str("dir", dir).Msg("static directory not found, /static disabled")
		return nil, false
	}
	return http.StripPrefix(prefix, http.FileServer(http.Dir(dir))), true
}
