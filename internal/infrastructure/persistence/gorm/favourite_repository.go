package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrywise/v1/internal/ports/outbound"
)

// FavouriteRepository implements the favourite repository using GORM
type FavouriteRepository struct {
	db *gorm.DB
}

// NewFavouriteRepository creates a new favourite repository
func NewFavouriteRepository(db *gorm.DB) outbound.FavouriteRepository {
	return &FavouriteRepository{db: db}
}

// Add marks a recipe as favourite, idempotently
func (r *FavouriteRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	model := FavouriteModel{UserID: userID, RecipeID: recipeID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error
}

// Remove clears the favourite flag, idempotently
func (r *FavouriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&FavouriteModel{}).Error
}

// IsFavourite reports whether the user favourited the recipe
func (r *FavouriteRepository) IsFavourite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FavouriteModel{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns the user's favourite recipe ids, newest first
func (r *FavouriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var models []FavouriteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.RecipeID)
	}
	return ids, nil
}
