// Package handlers provides the HTTP handlers for the JSON API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/infrastructure/http/middleware"
	"github.com/pantrywise/v1/pkg/errors"
)

var validate = validator.New()

// APIResponse is the standard response envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// respond writes a successful JSON response
func respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

// respondError writes an error response from any error value
func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "request failed")
	if appErr.StatusCode() >= 500 {
		logger.Error("Request failed",
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	resp := errors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: resp.Error})
}

// decode reads and validates a JSON request body
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("Invalid JSON body").WithCause(err)
	}
	if err := validate.Struct(dst); err != nil {
		return errors.NewValidationError(err.Error()).WithCause(err)
	}
	return nil
}

// pathID parses a UUID path parameter
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}

// authedUser extracts the authenticated user id; the auth middleware
// guarantees it is present on protected routes.
func authedUser(r *http.Request) (uuid.UUID, error) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		return uuid.Nil, errors.NewUnauthorizedError("")
	}
	return userID, nil
}

// HealthHandler serves the health check endpoint
type HealthHandler struct {
	version string
	started time.Time
}

// NewHealthHandler creates a health handler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version, started: time.Now()}
}

// Health reports service liveness
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	})
}
