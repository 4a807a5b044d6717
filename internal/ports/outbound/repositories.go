// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pantrywise/v1/internal/domain/pantry"
	"github.com/pantrywise/v1/internal/domain/recipe"
	"github.com/pantrywise/v1/internal/domain/units"
	"github.com/pantrywise/v1/internal/domain/user"
)

// PantryRepository defines the interface for pantry persistence. Every
// operation is scoped to the owning user.
type PantryRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]pantry.Item, error)
	FindByID(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error)
	Update(ctx context.Context, item *pantry.Item) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error

	// Merge folds one incoming item into the user's pantry inside a
	// single transaction, applying the domain merge policy under row
	// locking. It returns the resulting item state.
	Merge(ctx context.Context, userID uuid.UUID, in pantry.Incoming) (*pantry.Item, error)

	// ExpiringWithin returns items whose expiry falls between now and
	// now+window, earliest first. Items without an expiry are excluded.
	ExpiringWithin(ctx context.Context, userID uuid.UUID, window time.Duration) ([]pantry.Item, error)
}

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindAll(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error)

	// Search matches free text against title, ingredient names and tags,
	// optionally narrowed to an exact tag.
	Search(ctx context.Context, criteria SearchCriteria) ([]*recipe.Recipe, int, error)
}

// SearchCriteria defines search parameters for recipes
type SearchCriteria struct {
	Query  string
	Tag    string
	Offset int
	Limit  int
}

// FavouriteRepository tracks per-user recipe favourites
type FavouriteRepository interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	IsFavourite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ShoppingItem is a shopping list row as stored.
type ShoppingItem struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Quantity float64
	Unit     *string
	Done     bool
}

// ShoppingRepository defines the interface for shopping list persistence
type ShoppingRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ShoppingItem, error)
	FindByID(ctx context.Context, userID, itemID uuid.UUID) (*ShoppingItem, error)
	Create(ctx context.Context, item *ShoppingItem) error
	SetDone(ctx context.Context, userID, itemID uuid.UUID, done bool) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	ListDone(ctx context.Context, userID uuid.UUID) ([]ShoppingItem, error)

	// MoveToPantry merges one shopping item into the pantry and removes
	// it from the list, both inside a single transaction: the move is
	// all-or-nothing.
	MoveToPantry(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ConversionRepository loads the unit conversion table. Implementations
// must fail open: an unavailable or malformed source yields an empty
// table, never an error.
type ConversionRepository interface {
	LoadTable(ctx context.Context) *units.Table
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// AISuggestion is one recipe idea returned by the AI service.
type AISuggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
}

// AIRecipeDetail is a full AI-generated recipe.
type AIRecipeDetail struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Ingredients []AIRecipeLine `json:"ingredients"`
	Steps       []string       `json:"steps"`
	Tags        []string       `json:"tags"`
}

// AIRecipeLine is one structured ingredient line in an AI recipe.
type AIRecipeLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// AIService defines the interface for AI recipe generation. Responses
// that cannot be decoded surface as a typed unparsable error.
type AIService interface {
	SuggestRecipes(ctx context.Context, ingredients string) ([]AISuggestion, error)
	RecipeDetails(ctx context.Context, title string, ingredients string) (*AIRecipeDetail, error)
}
