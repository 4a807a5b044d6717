// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/pantrywise/v1/internal/domain/pantry"
	"github.com/pantrywise/v1/internal/domain/recipe"
	"github.com/pantrywise/v1/internal/domain/user"
)

// PantryItemBuilder provides a fluent interface for building test pantry items
type PantryItemBuilder struct {
	userID    uuid.UUID
	name      string
	quantity  float64
	unit      *string
	expiresOn *time.Time
}

// NewPantryItemBuilder creates a builder with randomized defaults
func NewPantryItemBuilder() *PantryItemBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	unit := "g"
	return &PantryItemBuilder{
		userID:   uuid.New(),
		name:     faker.Vegetable(),
		quantity: float64(faker.Number(1, 500)),
		unit:     &unit,
	}
}

// WithUser sets the owning user
func (b *PantryItemBuilder) WithUser(userID uuid.UUID) *PantryItemBuilder {
	b.userID = userID
	return b
}

// WithName sets the item name
func (b *PantryItemBuilder) WithName(name string) *PantryItemBuilder {
	b.name = name
	return b
}

// WithQuantity sets the quantity
func (b *PantryItemBuilder) WithQuantity(qty float64) *PantryItemBuilder {
	b.quantity = qty
	return b
}

// WithUnit sets the unit; pass empty to clear it
func (b *PantryItemBuilder) WithUnit(unit string) *PantryItemBuilder {
	if unit == "" {
		b.unit = nil
	} else {
		b.unit = &unit
	}
	return b
}

// ExpiringIn sets the expiry a number of days from now
func (b *PantryItemBuilder) ExpiringIn(days int) *PantryItemBuilder {
	t := time.Now().AddDate(0, 0, days)
	b.expiresOn = &t
	return b
}

// Build creates the pantry item
func (b *PantryItemBuilder) Build() pantry.Item {
	return pantry.Item{
		ID:        uuid.New(),
		UserID:    b.userID,
		Name:      b.name,
		Quantity:  b.quantity,
		Unit:      b.unit,
		ExpiresOn: b.expiresOn,
	}
}

// BuildIncoming creates the incoming variant of the item
func (b *PantryItemBuilder) BuildIncoming() pantry.Incoming {
	return pantry.Incoming{
		Name:      b.name,
		Quantity:  b.quantity,
		Unit:      b.unit,
		ExpiresOn: b.expiresOn,
	}
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	title       string
	description string
	steps       string
	authorID    uuid.UUID
	ingredients []recipe.Ingredient
	tags        []string
}

// NewRecipeBuilder creates a builder with randomized defaults
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &RecipeBuilder{
		title:       faker.Dinner(),
		description: faker.Sentence(8),
		steps:       "1. " + faker.Sentence(6) + "\n2. " + faker.Sentence(6),
		authorID:    uuid.New(),
		tags:        []string{"test"},
	}
}

// WithTitle sets the title
func (b *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	b.title = title
	return b
}

// WithAuthor sets the author
func (b *RecipeBuilder) WithAuthor(authorID uuid.UUID) *RecipeBuilder {
	b.authorID = authorID
	return b
}

// WithIngredient appends an ingredient line
func (b *RecipeBuilder) WithIngredient(name string, amount float64, unit string) *RecipeBuilder {
	var u *string
	if unit != "" {
		u = &unit
	}
	b.ingredients = append(b.ingredients, recipe.Ingredient{
		Name:   name,
		Amount: amount,
		Unit:   u,
	})
	return b
}

// WithTags sets the tag list
func (b *RecipeBuilder) WithTags(tags ...string) *RecipeBuilder {
	b.tags = tags
	return b
}

// Build creates the recipe, panicking on invalid builder state
func (b *RecipeBuilder) Build() *recipe.Recipe {
	r, err := recipe.NewRecipe(b.title, b.description, b.steps, b.authorID, b.ingredients, b.tags)
	if err != nil {
		panic(err)
	}
	r.ClearEvents()
	return r
}

// NewTestUser creates a user with a known password
func NewTestUser() (*user.User, string) {
	faker := gofakeit.New(time.Now().UnixNano())
	password := "test-password-123"
	u, err := user.NewUser(faker.Email(), faker.Name(), password)
	if err != nil {
		panic(err)
	}
	return u, password
}
