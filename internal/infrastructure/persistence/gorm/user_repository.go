package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrywise/v1/internal/domain/user"
	"github.com/pantrywise/v1/internal/ports/outbound"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := UserModel{
		ID:           entity.ID(),
		Email:        entity.Email(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID loads a user by id
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return modelToUser(model), nil
}

// FindByEmail loads a user by email, case-insensitively
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return modelToUser(model), nil
}

// ExistsByEmail reports whether an account uses the email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func modelToUser(m UserModel) *user.User {
	return user.Reconstruct(m.ID, m.Email, m.Name, m.PasswordHash, m.CreatedAt, m.UpdatedAt)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
