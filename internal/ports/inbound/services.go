// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pantrywise/v1/internal/domain/match"
)

// AuthService defines the use cases for account management
type AuthService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)
	Login(ctx context.Context, cmd LoginCommand) (*AuthTokenDTO, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}

// PantryService defines the use cases for pantry management
type PantryService interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]PantryItemDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, cmd AddPantryItemCommand) (*PantryItemDTO, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, cmd UpdatePantryItemCommand) (*PantryItemDTO, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
	ExpiringSoon(ctx context.Context, userID uuid.UUID, days int) ([]PantryItemDTO, error)
}

// RecipeService defines the use cases for recipes and pantry matching
type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error
	GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*RecipeDetailDTO, error)
	ListRecipes(ctx context.Context, userID uuid.UUID, params PaginationParams) (*RecipeList, error)
	SearchRecipes(ctx context.Context, userID uuid.UUID, query SearchQuery) (*RecipeList, error)
	TopMatches(ctx context.Context, userID uuid.UUID, limit int) ([]RecipeSummaryDTO, error)

	ToggleFavourite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	ListFavourites(ctx context.Context, userID uuid.UUID) ([]RecipeSummaryDTO, error)
}

// ShoppingService defines the use cases for the shopping list
type ShoppingService interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]ShoppingItemDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, cmd AddShoppingItemCommand) (*ShoppingItemDTO, error)
	ToggleDone(ctx context.Context, userID, itemID uuid.UUID) (*ShoppingItemDTO, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error

	// MoveToPantry merges one item into the pantry and removes it from
	// the list. MoveDoneToPantry does the same for every checked item.
	MoveToPantry(ctx context.Context, userID, itemID uuid.UUID) (*PantryItemDTO, error)
	MoveDoneToPantry(ctx context.Context, userID uuid.UUID) (int, error)

	// AddRecipeMissing adds a recipe's missing ingredients, at their
	// shortfall quantities, to the shopping list.
	AddRecipeMissing(ctx context.Context, userID, recipeID uuid.UUID) ([]ShoppingItemDTO, error)
}

// SuggestionService defines the use cases for AI recipe suggestions
type SuggestionService interface {
	Suggest(ctx context.Context, userID uuid.UUID, ingredients string) ([]SuggestionDTO, error)
	Expand(ctx context.Context, userID uuid.UUID, cmd ExpandSuggestionCommand) (*RecipeDetailDTO, error)
}

// Command objects for operations

// RegisterCommand contains data for creating an account
type RegisterCommand struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required,min=1,max=100"`
	Password string `validate:"required,min=8,max=128"`
}

// LoginCommand contains credentials for authentication
type LoginCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AddPantryItemCommand adds or merges one pantry item
type AddPantryItemCommand struct {
	Name      string     `validate:"required,min=1,max=200"`
	Quantity  float64    `validate:"required,gt=0"`
	Unit      *string    `validate:"omitempty,max=50"`
	ExpiresOn *time.Time `validate:"omitempty"`
}

// UpdatePantryItemCommand rewrites one pantry item in place
type UpdatePantryItemCommand struct {
	ItemID    uuid.UUID  `validate:"required"`
	Name      string     `validate:"required,min=1,max=200"`
	Quantity  float64    `validate:"required,gt=0"`
	Unit      *string    `validate:"omitempty,max=50"`
	ExpiresOn *time.Time `validate:"omitempty"`
}

// IngredientCommand is one ingredient line in a recipe command
type IngredientCommand struct {
	Name   string  `validate:"required,min=1,max=200"`
	Amount float64 `validate:"gte=0"`
	Unit   *string `validate:"omitempty,max=50"`
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	UserID      uuid.UUID
	Title       string              `validate:"required,min=1,max=200"`
	Description string              `validate:"max=2000"`
	Steps       string              `validate:"max=20000"`
	Ingredients []IngredientCommand `validate:"dive"`
	Tags        []string            `validate:"dive,max=50"`
}

// UpdateRecipeCommand contains data for updating a recipe
type UpdateRecipeCommand struct {
	RecipeID    uuid.UUID
	UserID      uuid.UUID
	Title       string              `validate:"required,min=1,max=200"`
	Description string              `validate:"max=2000"`
	Steps       string              `validate:"max=20000"`
	Ingredients []IngredientCommand `validate:"dive"`
	Tags        []string            `validate:"dive,max=50"`
}

// AddShoppingItemCommand adds one shopping list item
type AddShoppingItemCommand struct {
	Name     string  `validate:"required,min=1,max=200"`
	Quantity float64 `validate:"required,gt=0"`
	Unit     *string `validate:"omitempty,max=50"`
}

// ExpandSuggestionCommand asks for the full recipe behind a suggestion
type ExpandSuggestionCommand struct {
	Title       string `validate:"required,min=1,max=200"`
	Ingredients string `validate:"max=2000"`
}

// SearchQuery holds recipe search parameters
type SearchQuery struct {
	Text string
	Tag  string
	PaginationParams
}

// PaginationParams for paginated queries
type PaginationParams struct {
	Page    int `validate:"gte=1"`
	PerPage int `validate:"gte=1,lte=100"`
}

// Offset converts page/per-page into a row offset.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// DTOs for responses

// UserDTO is the account representation returned to clients
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthTokenDTO carries the issued access token
type AuthTokenDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

// PantryItemDTO is the pantry item representation returned to clients
type PantryItemDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      *string    `json:"unit"`
	ExpiresOn *time.Time `json:"expires_on"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RecipeIngredientDTO is one ingredient line in a recipe response
type RecipeIngredientDTO struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   *string `json:"unit"`
}

// RecipeDTO is the base recipe representation
type RecipeDTO struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Steps       string                `json:"steps"`
	CreatedBy   uuid.UUID             `json:"created_by"`
	Ingredients []RecipeIngredientDTO `json:"ingredients"`
	Tags        []string              `json:"tags"`
	CreatedAt   time.Time             `json:"created_at"`
}

// RecipeSummaryDTO is a list entry annotated with the pantry match
type RecipeSummaryDTO struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags"`
	MatchPercent float64   `json:"match_percent"`
	IsFavourite  bool      `json:"is_favourite"`
}

// RecipeDetailDTO is a full recipe with its pantry match breakdown
type RecipeDetailDTO struct {
	RecipeDTO
	Match       match.Result `json:"match"`
	IsFavourite bool         `json:"is_favourite"`
}

// RecipeList is a paginated recipe listing
type RecipeList struct {
	Recipes []RecipeSummaryDTO `json:"recipes"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
}

// ShoppingItemDTO is the shopping list representation returned to clients
type ShoppingItemDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     *string   `json:"unit"`
	Done     bool      `json:"done"`
}

// SuggestionDTO is one AI recipe suggestion
type SuggestionDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
}
