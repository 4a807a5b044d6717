package recipe

import "errors"

// Domain errors for recipe operations
var (
	ErrEmptyTitle               = errors.New("recipe title cannot be empty")
	ErrTitleTooLong             = errors.New("recipe title cannot exceed 200 characters")
	ErrEmptyIngredientName      = errors.New("ingredient name cannot be empty")
	ErrNegativeIngredientAmount = errors.New("ingredient amount cannot be negative")
	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrNotOwner                 = errors.New("recipe belongs to another user")
)
