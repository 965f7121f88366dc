package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/hackathon-platform-backend/auth"
	"github.com/rpupo63/hackathon-platform-backend/config"
	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rs/zerolog/log"
)

const (
	defaultTokenTTL      = 30 * time.Minute
	defaultRememberMeTTL = 168 * time.Hour
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer builds the HTTP server from c. The token issuer must be signed
// with the resolved secret, which may come from outside c.
func NewServer(db database.Database, c map[string]string, tokens *auth.TokenIssuer) (Server, error) {
	if tokens == nil {
		return Server{}, errors.New("token issuer is required")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router := newRouter(db, withConfig(c), withStartupTime(startupTime), withTokenIssuer(tokens))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	tokens      *auth.TokenIssuer
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withTokenIssuer(tokens *auth.TokenIssuer) func(*router) {
	return func(r *router) {
		r.tokens = tokens
	}
}

func newRouter(db database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	if router.tokens == nil {
		tokenTTL := config.GetDuration(router.config, "TOKEN_TTL_MINUTES", time.Minute, defaultTokenTTL)
		if tokenTTL <= 0 {
			tokenTTL = defaultTokenTTL
		}
		router.tokens = auth.NewTokenIssuer(config.GetString(router.config, "JWT_SECRET", ""), tokenTTL)
	}
	rememberMeTTL := config.GetDuration(router.config, "REMEMBER_ME_TTL_HOURS", time.Hour, defaultRememberMeTTL)

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(httpLoggingMiddleware(log.With().Str("component", "http").Logger()))

	acceptedOrigins := config.GetStringSlice(router.config, "ACCEPTED_ORIGINS", []string{"*"})
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(db, router.tokens, rememberMeTTL, router.startupTime)
	authMiddleware := newAuthMiddleware(router.tokens, db.UserRepo())

	static, _ := staticFiles("/static/", config.GetString(router.config, "STATIC_DIR", "static"))

	setupPublicRoutes(chiRouter, handlers, static)
	setupAuthenticatedRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// Serve runs the server until ctx is cancelled, then shuts it down within
// shutdownTimeout.
func (s Server) Serve(ctx context.Context, shutdownTimeout time.Duration) error {
	errChannel := make(chan error, 1)
	go s.Start(errChannel)

	select {
	case err := <-errChannel:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.ShutdownGracefully(shutdownTimeout)
		return nil
	}
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
