package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrywise/v1/internal/domain/pantry"
	"github.com/pantrywise/v1/internal/ports/outbound"
)

// ShoppingRepository implements the shopping list repository using GORM
type ShoppingRepository struct {
	db *gorm.DB
}

// NewShoppingRepository creates a new shopping repository
func NewShoppingRepository(db *gorm.DB) outbound.ShoppingRepository {
	return &ShoppingRepository{db: db}
}

// ListByUser returns the user's shopping list, open items first
func (r *ShoppingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]outbound.ShoppingItem, error) {
	var models []ShoppingItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("done ASC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return shoppingModelsToItems(models), nil
}

// FindByID returns one item scoped to its owner
func (r *ShoppingRepository) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*outbound.ShoppingItem, error) {
	var model ShoppingItemModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pantry.ErrItemNotFound
		}
		return nil, err
	}

	item := shoppingModelToItem(model)
	return &item, nil
}

// Create appends one item to the shopping list
func (r *ShoppingRepository) Create(ctx context.Context, item *outbound.ShoppingItem) error {
	model := ShoppingItemModel{
		ID:       item.ID,
		UserID:   item.UserID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		Done:     item.Done,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	item.ID = model.ID
	return nil
}

// SetDone updates the done flag on one item
func (r *ShoppingRepository) SetDone(ctx context.Context, userID, itemID uuid.UUID, done bool) error {
	result := r.db.WithContext(ctx).
		Model(&ShoppingItemModel{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("done", done)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pantry.ErrItemNotFound
	}
	return nil
}

// Delete removes one item scoped to its owner
func (r *ShoppingRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&ShoppingItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pantry.ErrItemNotFound
	}
	return nil
}

// MoveToPantry merges one shopping item into the pantry and removes it
// from the list inside a single transaction, so a failure on either
// side rolls back the whole move.
func (r *ShoppingRepository) MoveToPantry(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error) {
	var out pantry.Item

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model ShoppingItemModel
		if err := tx.Where("id = ? AND user_id = ?", itemID, userID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pantry.ErrItemNotFound
			}
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", itemID, userID).Delete(&ShoppingItemModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pantry.ErrItemNotFound
		}

		merged, err := mergePantryTx(tx, userID, pantry.Incoming{
			Name:     model.Name,
			Quantity: model.Quantity,
			Unit:     model.Unit,
		})
		if err != nil {
			return err
		}
		out = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDone returns the user's checked items
func (r *ShoppingRepository) ListDone(ctx context.Context, userID uuid.UUID) ([]outbound.ShoppingItem, error) {
	var models []ShoppingItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND done = ?", userID, true).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return shoppingModelsToItems(models), nil
}

func shoppingModelToItem(m ShoppingItemModel) outbound.ShoppingItem {
	return outbound.ShoppingItem{
		ID:       m.ID,
		UserID:   m.UserID,
		Name:     m.Name,
		Quantity: m.Quantity,
		Unit:     m.Unit,
		Done:     m.Done,
	}
}

func shoppingModelsToItems(models []ShoppingItemModel) []outbound.ShoppingItem {
	items := make([]outbound.ShoppingItem, 0, len(models))
	for _, m := range models {
		items = append(items, shoppingModelToItem(m))
	}
	return items
}
