package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rs/zerolog"
)

const (
	maxRequestBodySize  = 1 << 20          // 1MB
	maxResponseBodySize = 10 * 1024 * 1024 // 10MB
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONWithStatus(w, http.StatusOK, data)
}

// WriteJSONWithStatus marshals data before touching the response, so a
// marshalling failure still produces a clean 500.
func (r Responder) WriteJSONWithStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error","status":"error"}`))
		return
	}

	if len(jsonData) > maxResponseBodySize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseBodySize).
			Msg("response too large")

		status = http.StatusInternalServerError
		jsonData, _ = json.Marshal(ErrorResponse{
			Error:   "Response too large",
			Status:  "error",
			Details: "The requested data exceeds the maximum response size",
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError writes err as a JSON error body. Only ApiErr messages reach the
// client; causes and unexpected errors are logged and replaced by a generic 500.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONWithStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
		r.WriteJSONWithStatus(w, apiErr.StatusCode, ErrorResponse{
			Error:  http.StatusText(apiErr.StatusCode),
			Status: "error",
		})
		return
	}
	if apiErr.Cause != nil {
		r.logger.Debug().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	}

	r.WriteJSONWithStatus(w, apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	})
}

// decodeJSON reads a JSON request body into v. Bodies are capped and must
// hold exactly one JSON value.
func decodeJSON(w http.ResponseWriter, req *http.Request, v any) error {
	if req.Body == nil {
		return errs.NewInvalidJSONError(errors.New("empty body"))
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxRequestBodySize))
	if err := dec.Decode(v); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errs.NewInvalidJSONError(errors.New("body must contain a single JSON value"))
	}
	return nil
}
