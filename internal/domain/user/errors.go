package user

import "errors"

// Domain errors for user accounts
var (
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrEmptyName        = errors.New("user name cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrUserNotFound     = errors.New("user not found")
)
