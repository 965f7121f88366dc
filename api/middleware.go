package api

import (
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/auth"
	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authMiddleware struct {
	responder Responder
	logger    zerolog.Logger
	tokens    *auth.TokenIssuer
	userRepo  *database.UserRepo
}

func newAuthMiddleware(tokens *auth.TokenIssuer, userRepo *database.UserRepo) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		logger:    logger,
		tokens:    tokens,
		userRepo:  userRepo,
	}
}

// authenticate resolves the bearer token to an active user and stores it in
// the request context. Anything short of that is a 401.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		subject, err := m.tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}

		userID, err := uuid.Parse(subject)
		if err != nil {
			m.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		user, err := m.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			if errs.IsNotFound(err) {
				m.responder.WriteError(w, errs.NewInvalidTokenError())
				return
			}
			m.responder.WriteError(w, err)
			return
		}
		if !user.IsActive {
			m.logger.Info().Str("userID", user.ID.String()).Msg("token presented for inactive user")
			m.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithUser(r.Context(), user)))
	})
}

// requireRole rejects authenticated users whose role is not listed.
func (m authMiddleware) requireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := ctxGetUser(r.Context())
			if err != nil {
				m.responder.WriteError(w, err)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			m.responder.WriteError(w, errs.NewInsufficientRoleError(strings.Join(names, " or ")))
		})
	}
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// LogInternalServerErrors recovers from panics, logging the stack and
// answering with a generic 500 body.
func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					NewResponder(log.Logger).WriteJSONWithStatus(srw, http.StatusInternalServerError, ErrorResponse{
						Error:  "Internal Server Error",
						Status: "error",
					})
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}
	return false
}

// CORSCheckMiddleware checks if the request is blocked by CORS and returns a proper error
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// If no origin header, it's likely a same-origin request
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(allowedOrigins, origin) && r.Method == http.MethodOptions {
				responder := NewResponder(log.Logger)
				responder.WriteError(w, errs.NewCORSError(origin))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware sets the CORS response headers and answers preflight requests.
// Credentials are only allowed with an explicit origin list.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := originAllowed(allowedOrigins, "*") && len(allowedOrigins) == 1
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}

// httpLoggingMiddleware logs each request at a level chosen by its status code.
func httpLoggingMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &statusResponseWriter{ResponseWriter: w, status: 200}

			next.ServeHTTP(srw, r)

			var logEvent *zerolog.Event
			switch {
			case srw.status >= 500:
				logEvent = logger.Error()
			case srw.status >= 400:
				logEvent = logger.Warn()
			default:
				logEvent = logger.Info()
			}

			logEvent.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", srw.status).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP Request")
		})
	}
}

// clientIP is the request's remote host. middleware.RealIP has already
// replaced RemoteAddr with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
