// Package user contains the user account entity and credential rules.
package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is the account aggregate. The password is only ever held hashed.
type User struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a user with a bcrypt-hashed password.
func NewUser(email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: string(hash),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from stored state.
func Reconstruct(id uuid.UUID, email, name, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's unique identifier
func (u *User) ID() uuid.UUID { return u.id }

// Email returns the user's email address
func (u *User) Email() string { return u.email }

// Name returns the user's display name
func (u *User) Name() string { return u.name }

// PasswordHash returns the bcrypt hash for persistence
func (u *User) PasswordHash() string { return u.passwordHash }

// CreatedAt returns the creation timestamp
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last modification timestamp
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}
