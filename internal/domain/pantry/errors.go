package pantry

import "errors"

// Domain errors for pantry operations
var (
	ErrEmptyName           = errors.New("pantry item name cannot be empty")
	ErrNonPositiveQuantity = errors.New("pantry item quantity must be positive")
	ErrItemNotFound        = errors.New("pantry item not found")
	ErrNotOwner            = errors.New("pantry item belongs to another user")
)
