package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/ports/inbound"
)

// AuthHandler serves account endpoints
type AuthHandler struct {
	auth   inbound.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth inbound.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger.Named("auth-handler")}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// Register creates a new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	dto, err := h.auth.Register(r.Context(), inbound.RegisterCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, dto)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns an access token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	token, err := h.auth.Login(r.Context(), inbound.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, token)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	dto, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, dto)
}
