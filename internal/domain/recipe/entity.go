// Package recipe contains the core domain logic for recipe management.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pantrywise/v1/internal/domain/shared"
)

// Ingredient is one line of a recipe's ingredient list. Position keeps
// the author's ordering stable across storage round trips.
type Ingredient struct {
	Name     string
	Amount   float64
	Unit     *string
	Position int
}

// Recipe is the recipe aggregate root.
type Recipe struct {
	id            uuid.UUID
	title         string
	description   string
	stepsMarkdown string
	createdBy     uuid.UUID

	ingredients []Ingredient
	tags        []string

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewRecipe creates a new Recipe with validation. Tags are normalized
// (lowercased, trimmed, deduplicated) and ingredient positions assigned
// from the given order.
func NewRecipe(title, description, stepsMarkdown string, createdBy uuid.UUID, ingredients []Ingredient, tags []string) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateIngredients(ingredients); err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &Recipe{
		id:            uuid.New(),
		title:         strings.TrimSpace(title),
		description:   strings.TrimSpace(description),
		stepsMarkdown: stepsMarkdown,
		createdBy:     createdBy,
		ingredients:   normalizeIngredients(ingredients),
		tags:          NormalizeTags(tags),
		createdAt:     now,
		updatedAt:     now,
		events:        []shared.DomainEvent{},
	}

	recipe.addEvent(RecipeCreatedEvent{
		RecipeID:  recipe.id,
		AuthorID:  createdBy,
		Title:     recipe.title,
		CreatedAt: now,
	})

	return recipe, nil
}

// Reconstruct rebuilds a Recipe from stored state without raising events.
func Reconstruct(id uuid.UUID, title, description, stepsMarkdown string, createdBy uuid.UUID, ingredients []Ingredient, tags []string, createdAt, updatedAt time.Time) *Recipe {
	return &Recipe{
		id:            id,
		title:         title,
		description:   description,
		stepsMarkdown: stepsMarkdown,
		createdBy:     createdBy,
		ingredients:   ingredients,
		tags:          tags,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		events:        []shared.DomainEvent{},
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Description returns the recipe's description
func (r *Recipe) Description() string {
	return r.description
}

// StepsMarkdown returns the preparation steps as markdown text
func (r *Recipe) StepsMarkdown() string {
	return r.stepsMarkdown
}

// CreatedBy returns the author's user id
func (r *Recipe) CreatedBy() uuid.UUID {
	return r.createdBy
}

// Ingredients returns a copy of the ingredient list in position order
func (r *Recipe) Ingredients() []Ingredient {
	out := make([]Ingredient, len(r.ingredients))
	copy(out, r.ingredients)
	return out
}

// Tags returns a copy of the normalized tag list
func (r *Recipe) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// CreatedAt returns the creation timestamp
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns the last modification timestamp
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// Update replaces the mutable recipe content with validation.
func (r *Recipe) Update(title, description, stepsMarkdown string, ingredients []Ingredient, tags []string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateIngredients(ingredients); err != nil {
		return err
	}

	r.title = strings.TrimSpace(title)
	r.description = strings.TrimSpace(description)
	r.stepsMarkdown = stepsMarkdown
	r.ingredients = normalizeIngredients(ingredients)
	r.tags = NormalizeTags(tags)
	r.updatedAt = time.Now()

	return nil
}

// IsOwnedBy reports whether a user authored the recipe.
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.createdBy == userID
}

// Events returns the pending domain events
func (r *Recipe) Events() []shared.DomainEvent {
	return r.events
}

// ClearEvents clears the pending domain events
func (r *Recipe) ClearEvents() {
	r.events = []shared.DomainEvent{}
}

func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// NormalizeTags lowercases, trims, deduplicates and sorts a tag list.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func normalizeIngredients(ingredients []Ingredient) []Ingredient {
	out := make([]Ingredient, len(ingredients))
	copy(out, ingredients)
	for i := range out {
		out[i].Name = strings.TrimSpace(out[i].Name)
		out[i].Unit = normalizeUnit(out[i].Unit)
		out[i].Position = i
	}
	return out
}

// normalizeUnit trims an optional unit and collapses blank to absent,
// mirroring how pantry items treat missing units.
func normalizeUnit(u *string) *string {
	if u == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*u)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}

func validateIngredients(ingredients []Ingredient) error {
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return ErrEmptyIngredientName
		}
		if ing.Amount < 0 {
			return ErrNegativeIngredientAmount
		}
	}
	return nil
}
