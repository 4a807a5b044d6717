package gemini

import (
	"context"
	"strings"

	"github.com/pantrywise/v1/internal/ports/outbound"
)

// MockService is a deterministic stand-in for the live AI client. It
// echoes the caller's ingredients back in plausible recipes so local
// development and tests do not need network access.
type MockService struct{}

// NewMockService creates the mock AI service
func NewMockService() outbound.AIService {
	return &MockService{}
}

// SuggestRecipes returns three canned suggestions built from the input
func (m *MockService) SuggestRecipes(ctx context.Context, ingredients string) ([]outbound.AISuggestion, error) {
	parts := splitIngredients(ingredients)
	lead := "your ingredients"
	if len(parts) > 0 {
		lead = parts[0]
	}

	return []outbound.AISuggestion{
		{
			Title:       "Rustic " + titleCase(lead) + " Bake",
			Description: "An oven bake built around " + lead + ".",
			Ingredients: parts,
		},
		{
			Title:       titleCase(lead) + " Stir-Fry",
			Description: "A quick stir-fry using " + strings.Join(parts, ", ") + ".",
			Ingredients: parts,
		},
		{
			Title:       "Simple " + titleCase(lead) + " Soup",
			Description: "A comforting soup with whatever is on hand.",
			Ingredients: parts,
		},
	}, nil
}

// RecipeDetails returns a canned recipe for the given title
func (m *MockService) RecipeDetails(ctx context.Context, title string, ingredients string) (*outbound.AIRecipeDetail, error) {
	parts := splitIngredients(ingredients)
	lines := make([]outbound.AIRecipeLine, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, outbound.AIRecipeLine{Name: p, Amount: 1, Unit: "pcs"})
	}

	return &outbound.AIRecipeDetail{
		Title:       title,
		Description: "A mock recipe generated without an AI backend.",
		Ingredients: lines,
		Steps: []string{
			"Prepare all ingredients.",
			"Combine everything in a suitable pan.",
			"Cook until done and season to taste.",
		},
		Tags: []string{"mock", "quick"},
	}, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func splitIngredients(ingredients string) []string {
	raw := strings.FieldsFunc(ingredients, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s := strings.TrimSpace(r); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
