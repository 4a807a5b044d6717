package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/infrastructure/config"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/pkg/errors"
)

// PantryHandler serves pantry endpoints
type PantryHandler struct {
	pantry inbound.PantryService
	cfg    *config.Config
	logger *zap.Logger
}

// NewPantryHandler creates a pantry handler
func NewPantryHandler(pantry inbound.PantryService, cfg *config.Config, logger *zap.Logger) *PantryHandler {
	return &PantryHandler{pantry: pantry, cfg: cfg, logger: logger.Named("pantry-handler")}
}

type pantryItemRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Unit      *string `json:"unit" validate:"omitempty,max=50"`
	ExpiresOn *string `json:"expires_on" validate:"omitempty"`
}

func (req pantryItemRequest) expiry() (*time.Time, error) {
	if req.ExpiresOn == nil || *req.ExpiresOn == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *req.ExpiresOn)
	if err != nil {
		return nil, errors.NewBadRequestError("expires_on must be a YYYY-MM-DD date")
	}
	return &t, nil
}

// List returns the user's pantry
func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	items, err := h.pantry.ListItems(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, items)
}

// Add merges one item into the pantry
func (h *PantryHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req pantryItemRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	expiresOn, err := req.expiry()
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	item, err := h.pantry.AddItem(r.Context(), userID, inbound.AddPantryItemCommand{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		ExpiresOn: expiresOn,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, item)
}

// Update rewrites one pantry item
func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req pantryItemRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	expiresOn, err := req.expiry()
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	item, err := h.pantry.UpdateItem(r.Context(), userID, inbound.UpdatePantryItemCommand{
		ItemID:    itemID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		ExpiresOn: expiresOn,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, item)
}

// Delete removes one pantry item
func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.pantry.DeleteItem(r.Context(), userID, itemID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ExpiringSoon returns items expiring within the configured window
func (h *PantryHandler) ExpiringSoon(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	days := h.cfg.Pantry.ExpiringSoonDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	items, err := h.pantry.ExpiringSoon(r.Context(), userID, days)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, items)
}
