// Package recipe provides the application layer for recipes, pantry
// matching and favourites, implementing the inbound RecipeService port.
package recipe

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pantryapp "github.com/pantrywise/v1/internal/application/pantry"
	"github.com/pantrywise/v1/internal/domain/match"
	"github.com/pantrywise/v1/internal/domain/recipe"
	"github.com/pantrywise/v1/internal/domain/units"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
)

const matchCacheTTL = 2 * time.Minute

// Service implements the recipe use cases
type Service struct {
	recipeRepo     outbound.RecipeRepository
	pantryRepo     outbound.PantryRepository
	favouriteRepo  outbound.FavouriteRepository
	conversionRepo outbound.ConversionRepository
	cache          outbound.CacheRepository
	logger         *zap.Logger
}

// NewService creates a new recipe service
func NewService(
	recipeRepo outbound.RecipeRepository,
	pantryRepo outbound.PantryRepository,
	favouriteRepo outbound.FavouriteRepository,
	conversionRepo outbound.ConversionRepository,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.RecipeService {
	return &Service{
		recipeRepo:     recipeRepo,
		pantryRepo:     pantryRepo,
		favouriteRepo:  favouriteRepo,
		conversionRepo: conversionRepo,
		cache:          cache,
		logger:         logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe
func (s *Service) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := recipe.NewRecipe(cmd.Title, cmd.Description, cmd.Steps, cmd.UserID, commandIngredients(cmd.Ingredients), cmd.Tags)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.logger.Info("Recipe created",
		zap.String("recipe_id", entity.ID().String()),
		zap.String("user_id", cmd.UserID.String()),
		zap.String("title", entity.Title()),
	)
	entity.ClearEvents()

	dto := entityToDTO(entity)
	return &dto, nil
}

// UpdateRecipe updates an existing recipe owned by the user
func (s *Service) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.findRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}
	if !entity.IsOwnedBy(cmd.UserID) {
		return nil, errors.NewAppError(errors.CodeForbidden, "Recipe belongs to another user", "")
	}

	if err := entity.Update(cmd.Title, cmd.Description, cmd.Steps, commandIngredients(cmd.Ingredients), cmd.Tags); err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("update recipe", err)
	}

	dto := entityToDTO(entity)
	return &dto, nil
}

// DeleteRecipe removes a recipe owned by the user
func (s *Service) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if !entity.IsOwnedBy(userID) {
		return errors.NewAppError(errors.CodeForbidden, "Recipe belongs to another user", "")
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}

	s.logger.Info("Recipe deleted",
		zap.String("recipe_id", recipeID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// GetRecipe returns a recipe with its pantry match breakdown
func (s *Service) GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*inbound.RecipeDetailDTO, error) {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	result, err := s.matchFor(ctx, entity, userID)
	if err != nil {
		return nil, err
	}

	fav, err := s.favouriteRepo.IsFavourite(ctx, userID, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("check favourite", err)
	}

	return &inbound.RecipeDetailDTO{
		RecipeDTO:   entityToDTO(entity),
		Match:       result,
		IsFavourite: fav,
	}, nil
}

// ListRecipes returns all recipes annotated with match percentages
func (s *Service) ListRecipes(ctx context.Context, userID uuid.UUID, params inbound.PaginationParams) (*inbound.RecipeList, error) {
	if params.PerPage <= 0 {
		params.PerPage = 20
	}
	if params.Page < 1 {
		params.Page = 1
	}

	recipes, total, err := s.recipeRepo.FindAll(ctx, params.Offset(), params.PerPage)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	summaries, err := s.annotate(ctx, recipes, userID)
	if err != nil {
		return nil, err
	}

	return &inbound.RecipeList{
		Recipes: summaries,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
	}, nil
}

// SearchRecipes matches free text and tag filters, sorted by match percent
func (s *Service) SearchRecipes(ctx context.Context, userID uuid.UUID, query inbound.SearchQuery) (*inbound.RecipeList, error) {
	if query.PerPage <= 0 {
		query.PerPage = 20
	}
	if query.Page < 1 {
		query.Page = 1
	}

	recipes, total, err := s.recipeRepo.Search(ctx, outbound.SearchCriteria{
		Query:  query.Text,
		Tag:    query.Tag,
		Offset: query.Offset(),
		Limit:  query.PerPage,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("search recipes", err)
	}

	summaries, err := s.annotate(ctx, recipes, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].MatchPercent > summaries[j].MatchPercent
	})

	return &inbound.RecipeList{
		Recipes: summaries,
		Total:   total,
		Page:    query.Page,
		PerPage: query.PerPage,
	}, nil
}

// TopMatches returns the recipes that best match the user's pantry
func (s *Service) TopMatches(ctx context.Context, userID uuid.UUID, limit int) ([]inbound.RecipeSummaryDTO, error) {
	if limit <= 0 {
		limit = 10
	}

	recipes, _, err := s.recipeRepo.FindAll(ctx, 0, 200)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	summaries, err := s.annotate(ctx, recipes, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].MatchPercent > summaries[j].MatchPercent
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// ToggleFavourite flips the favourite flag and returns the new state
func (s *Service) ToggleFavourite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	if _, err := s.findRecipe(ctx, recipeID); err != nil {
		return false, err
	}

	fav, err := s.favouriteRepo.IsFavourite(ctx, userID, recipeID)
	if err != nil {
		return false, errors.NewDatabaseError("check favourite", err)
	}

	if fav {
		if err := s.favouriteRepo.Remove(ctx, userID, recipeID); err != nil {
			return false, errors.NewDatabaseError("remove favourite", err)
		}
		return false, nil
	}

	if err := s.favouriteRepo.Add(ctx, userID, recipeID); err != nil {
		return false, errors.NewDatabaseError("add favourite", err)
	}
	return true, nil
}

// ListFavourites returns the user's favourite recipes with match percents
func (s *Service) ListFavourites(ctx context.Context, userID uuid.UUID) ([]inbound.RecipeSummaryDTO, error) {
	ids, err := s.favouriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list favourites", err)
	}

	recipes := make([]*recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		entity, err := s.recipeRepo.FindByID(ctx, id)
		if err != nil {
			if err == recipe.ErrRecipeNotFound {
				continue
			}
			return nil, errors.NewDatabaseError("find recipe", err)
		}
		recipes = append(recipes, entity)
	}

	summaries, err := s.annotate(ctx, recipes, userID)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].IsFavourite = true
	}
	return summaries, nil
}

func (s *Service) findRecipe(ctx context.Context, recipeID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == recipe.ErrRecipeNotFound {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return entity, nil
}

// matchFor computes the pantry match for one recipe, consulting the
// short-lived cache first. The key carries the recipe's update time and
// the user's pantry version token, so both recipe edits and pantry
// writes invalidate it. Cache failures degrade silently.
func (s *Service) matchFor(ctx context.Context, entity *recipe.Recipe, userID uuid.UUID) (match.Result, error) {
	cacheKey := "match:" + userID.String() + ":" + entity.ID().String() +
		":" + entity.UpdatedAt().UTC().Format(time.RFC3339) +
		":" + s.pantryVersion(ctx, userID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var cached match.Result
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	stock, err := s.loadStock(ctx, userID)
	if err != nil {
		return match.Result{}, err
	}

	result := match.Compute(requirements(entity), stock, s.loadTable(ctx))

	if s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, raw, matchCacheTTL)
		}
	}
	return result, nil
}

// pantryVersion reads the user's pantry version token. A cold or
// unreachable cache yields an empty token, which only costs a recompute.
func (s *Service) pantryVersion(ctx context.Context, userID uuid.UUID) string {
	if s.cache == nil {
		return ""
	}
	raw, err := s.cache.Get(ctx, pantryapp.CacheVersionKey(userID))
	if err != nil || raw == nil {
		return ""
	}
	return string(raw)
}

// annotate computes match percentages and favourite flags for a recipe
// list against one pantry snapshot.
func (s *Service) annotate(ctx context.Context, recipes []*recipe.Recipe, userID uuid.UUID) ([]inbound.RecipeSummaryDTO, error) {
	stock, err := s.loadStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	table := s.loadTable(ctx)

	favIDs, err := s.favouriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list favourites", err)
	}
	favs := make(map[uuid.UUID]bool, len(favIDs))
	for _, id := range favIDs {
		favs[id] = true
	}

	summaries := make([]inbound.RecipeSummaryDTO, 0, len(recipes))
	for _, entity := range recipes {
		result := match.Compute(requirements(entity), stock, table)
		summaries = append(summaries, inbound.RecipeSummaryDTO{
			ID:           entity.ID(),
			Title:        entity.Title(),
			Description:  entity.Description(),
			Tags:         entity.Tags(),
			MatchPercent: result.MatchPercent,
			IsFavourite:  favs[entity.ID()],
		})
	}
	return summaries, nil
}

func (s *Service) loadStock(ctx context.Context, userID uuid.UUID) ([]match.StockEntry, error) {
	items, err := s.pantryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry items", err)
	}

	stock := make([]match.StockEntry, 0, len(items))
	for _, it := range items {
		stock = append(stock, match.StockEntry{
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		})
	}
	return stock, nil
}

// loadTable fetches the conversion table. The source fails open, so an
// empty table is the worst case; ambiguous units only get logged.
func (s *Service) loadTable(ctx context.Context) *units.Table {
	table := s.conversionRepo.LoadTable(ctx)
	if dups := table.DuplicateUnits(); len(dups) > 0 {
		s.logger.Warn("Conversion table has units in multiple families",
			zap.Strings("units", dups),
		)
	}
	return table
}

func requirements(entity *recipe.Recipe) []match.Requirement {
	ings := entity.Ingredients()
	reqs := make([]match.Requirement, 0, len(ings))
	for _, ing := range ings {
		reqs = append(reqs, match.Requirement{
			Name: ing.Name,
			Need: ing.Amount,
			Unit: ing.Unit,
		})
	}
	return reqs
}

func commandIngredients(cmds []inbound.IngredientCommand) []recipe.Ingredient {
	out := make([]recipe.Ingredient, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, recipe.Ingredient{
			Name:   c.Name,
			Amount: c.Amount,
			Unit:   c.Unit,
		})
	}
	return out
}

func entityToDTO(entity *recipe.Recipe) inbound.RecipeDTO {
	ings := entity.Ingredients()
	dtos := make([]inbound.RecipeIngredientDTO, 0, len(ings))
	for _, ing := range ings {
		dtos = append(dtos, inbound.RecipeIngredientDTO{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}

	return inbound.RecipeDTO{
		ID:          entity.ID(),
		Title:       entity.Title(),
		Description: entity.Description(),
		Steps:       entity.StepsMarkdown(),
		CreatedBy:   entity.CreatedBy(),
		Ingredients: dtos,
		Tags:        entity.Tags(),
		CreatedAt:   entity.CreatedAt(),
	}
}
