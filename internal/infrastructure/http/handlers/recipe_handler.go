package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/ports/inbound"
)

// RecipeHandler serves recipe and favourite endpoints
type RecipeHandler struct {
	recipes inbound.RecipeService
	logger  *zap.Logger
}

// NewRecipeHandler creates a recipe handler
func NewRecipeHandler(recipes inbound.RecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, logger: logger.Named("recipe-handler")}
}

type ingredientRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=200"`
	Amount float64 `json:"amount" validate:"gte=0"`
	Unit   *string `json:"unit" validate:"omitempty,max=50"`
}

type recipeRequest struct {
	Title       string              `json:"title" validate:"required,min=1,max=200"`
	Description string              `json:"description" validate:"max=2000"`
	Steps       string              `json:"steps" validate:"max=20000"`
	Ingredients []ingredientRequest `json:"ingredients" validate:"dive"`
	Tags        []string            `json:"tags" validate:"dive,max=50"`
}

func (req recipeRequest) ingredientCommands() []inbound.IngredientCommand {
	cmds := make([]inbound.IngredientCommand, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		cmds = append(cmds, inbound.IngredientCommand{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	return cmds
}

// Create creates a new recipe
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req recipeRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	dto, err := h.recipes.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Steps:       req.Steps,
		Ingredients: req.ingredientCommands(),
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, dto)
}

// Update rewrites a recipe
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req recipeRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	dto, err := h.recipes.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:    recipeID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Steps:       req.Steps,
		Ingredients: req.ingredientCommands(),
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, dto)
}

// Delete removes a recipe
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.recipes.DeleteRecipe(r.Context(), recipeID, userID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Get returns one recipe with its pantry match
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	dto, err := h.recipes.GetRecipe(r.Context(), recipeID, userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, dto)
}

// List returns recipes with match percentages
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	list, err := h.recipes.ListRecipes(r.Context(), userID, pagination(r))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, list)
}

// Search matches free text and tag filters
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	query := inbound.SearchQuery{
		Text:             r.URL.Query().Get("q"),
		Tag:              r.URL.Query().Get("tag"),
		PaginationParams: pagination(r),
	}

	list, err := h.recipes.SearchRecipes(r.Context(), userID, query)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, list)
}

// TopMatches returns the best matching recipes for the dashboard
func (h *RecipeHandler) TopMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	summaries, err := h.recipes.TopMatches(r.Context(), userID, limit)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, summaries)
}

// ToggleFavourite flips the favourite flag
func (h *RecipeHandler) ToggleFavourite(w http.ResponseWriter, r *http.Request) {
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

	fav, err := h.recipes.ToggleFavourite(r.Context(), userID, recipeID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"is_favourite": fav})
}

// ListFavourites returns the user's favourites
func (h *RecipeHandler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUser(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	summaries, err := h.recipes.ListFavourites(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respond(w, http.StatusOK, summaries)
}

func pagination(r *http.Request) inbound.PaginationParams {
	params := inbound.PaginationParams{Page: 1, PerPage: 20}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 {
			params.Page = parsed
		}
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 && parsed <= 100 {
			params.PerPage = parsed
		}
	}
	return params
}
