package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/ports/inbound"
)

// SuggestHandler serves AI suggestion endpoints
type SuggestHandler struct {
	suggest inbound.SuggestionService
	logger  *zap.Logger
}

// NewSuggestHandler creates a suggest handler
func NewSuggestHandler(suggest inbound.SuggestionService, logger *zap.Logger) *SuggestHandler {
	return &SuggestHandler{suggest: suggest, logger: logger.Named("suggest-handler")}
}

type suggestRequest struct {
	Ingredients string `json:"ingredients" validate:"required,min=1,max=2000"`
}

// Suggest returns recipe ideas for a free-text ingredient list
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req suggestRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	suggestions, err := h.suggest.Suggest(r.Context(), userID, req.Ingredients)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, suggestions)
}

type expandRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Ingredients string `json:"ingredients" validate:"max=2000"`
}

// Expand returns the full recipe behind one suggestion
func (h *SuggestHandler) Expand(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req expandRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	detail, err := h.suggest.Expand(r.Context(), userID, inbound.ExpandSuggestionCommand{
		Title:       req.Title,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, detail)
}
