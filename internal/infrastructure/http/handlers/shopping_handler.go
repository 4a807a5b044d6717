package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/ports/inbound"
)

// ShoppingHandler serves shopping list endpoints
type ShoppingHandler struct {
	shopping inbound.ShoppingService
	logger   *zap.Logger
}

// NewShoppingHandler creates a shopping handler
func NewShoppingHandler(shopping inbound.ShoppingService, logger *zap.Logger) *ShoppingHandler {
	return &ShoppingHandler{shopping: shopping, logger: logger.Named("shopping-handler")}
}

type shoppingItemRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     *string `json:"unit" validate:"omitempty,max=50"`
}

// List returns the user's shopping list
func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	items, err := h.shopping.ListItems(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, items)
}

// Add appends one item to the list
func (h *ShoppingHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req shoppingItemRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	item, err := h.shopping.AddItem(r.Context(), userID, inbound.AddShoppingItemCommand{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, item)
}

// ToggleDone flips the done flag on one item
func (h *ShoppingHandler) ToggleDone(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.shopping.ToggleDone(r.Context(), userID, itemID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, item)
}

// Delete removes one item
func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.shopping.DeleteItem(r.Context(), userID, itemID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MoveToPantry merges one item into the pantry
func (h *ShoppingHandler) MoveToPantry(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.shopping.MoveToPantry(r.Context(), userID, itemID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, item)
}

// MoveDoneToPantry merges all checked items into the pantry
func (h *ShoppingHandler) MoveDoneToPantry(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	moved, err := h.shopping.MoveDoneToPantry(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"moved": moved})
}

// AddRecipeMissing adds a recipe's missing ingredients to the list
func (h *ShoppingHandler) AddRecipeMissing(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	recipeID, err := pathID(r, "recipeID")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	added, err := h.shopping.AddRecipeMissing(r.Context(), userID, recipeID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, added)
}
