// Package suggest provides the application layer for AI recipe
// suggestions, implementing the inbound SuggestionService port.
package suggest

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/domain/match"
	"github.com/pantrywise/v1/internal/domain/recipe"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
)

// Service implements the AI suggestion use cases
type Service struct {
	ai     outbound.AIService
	logger *zap.Logger
}

// NewService creates a new suggestion service
func NewService(ai outbound.AIService, logger *zap.Logger) inbound.SuggestionService {
	return &Service{
		ai:     ai,
		logger: logger.Named("suggest-service"),
	}
}

// Suggest asks the AI for recipe ideas from a free-text ingredient list
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, ingredients string) ([]inbound.SuggestionDTO, error) {
	ingredients = strings.TrimSpace(ingredients)
	if ingredients == "" {
		return nil, errors.NewValidationError("ingredient list cannot be empty")
	}

	suggestions, err := s.ai.SuggestRecipes(ctx, ingredients)
	if err != nil {
		s.logger.Warn("AI suggestion failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	dtos := make([]inbound.SuggestionDTO, 0, len(suggestions))
	for _, sug := range suggestions {
		dtos = append(dtos, inbound.SuggestionDTO{
			Title:       sug.Title,
			Description: sug.Description,
			Ingredients: sug.Ingredients,
		})
	}
	return dtos, nil
}

// Expand fetches the full recipe behind one suggestion
func (s *Service) Expand(ctx context.Context, userID uuid.UUID, cmd inbound.ExpandSuggestionCommand) (*inbound.RecipeDetailDTO, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, errors.NewValidationError("suggestion title cannot be empty")
	}

	detail, err := s.ai.RecipeDetails(ctx, cmd.Title, cmd.Ingredients)
	if err != nil {
		s.logger.Warn("AI recipe expansion failed",
			zap.String("user_id", userID.String()),
			zap.String("title", cmd.Title),
			zap.Error(err),
		)
		return nil, err
	}

	// The expanded recipe is ephemeral: it is returned for display and
	// only persisted if the user saves it through the recipe service.
	ings := make([]inbound.RecipeIngredientDTO, 0, len(detail.Ingredients))
	for _, line := range detail.Ingredients {
		var unit *string
		if u := strings.TrimSpace(line.Unit); u != "" {
			unit = &u
		}
		ings = append(ings, inbound.RecipeIngredientDTO{
			Name:   line.Name,
			Amount: line.Amount,
			Unit:   unit,
		})
	}

	return &inbound.RecipeDetailDTO{
		RecipeDTO: inbound.RecipeDTO{
			Title:       detail.Title,
			Description: detail.Description,
			Steps:       strings.Join(detail.Steps, "\n"),
			Ingredients: ings,
			Tags:        recipe.NormalizeTags(detail.Tags),
		},
		Match: match.Result{
			Have:             []match.IngredientStatus{},
			Missing:          []match.IngredientStatus{},
			TotalIngredients: 1,
		},
	}, nil
}
