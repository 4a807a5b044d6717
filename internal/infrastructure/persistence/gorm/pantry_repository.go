package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrywise/v1/internal/domain/pantry"
	"github.com/pantrywise/v1/internal/ports/outbound"
)

// PantryRepository implements the pantry repository interface using GORM
type PantryRepository struct {
	db *gorm.DB
}

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *gorm.DB) outbound.PantryRepository {
	return &PantryRepository{db: db}
}

// ListByUser returns the user's pantry ordered by name
func (r *PantryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]pantry.Item, error) {
	var models []PantryItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name_key ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]pantry.Item, 0, len(models))
	for _, m := range models {
		items = append(items, pantryModelToItem(m))
	}
	return items, nil
}

// FindByID returns one item scoped to its owner
func (r *PantryRepository) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error) {
	var model PantryItemModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pantry.ErrItemNotFound
		}
		return nil, err
	}

	item := pantryModelToItem(model)
	return &item, nil
}

// Update rewrites one pantry row
func (r *PantryRepository) Update(ctx context.Context, item *pantry.Item) error {
	model := pantryItemToModel(*item)
	result := r.db.WithContext(ctx).
		Model(&PantryItemModel{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"name_key":   pantry.NameKey(model.Name),
			"quantity":   model.Quantity,
			"unit":       model.Unit,
			"expires_on": model.ExpiresOn,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pantry.ErrItemNotFound
	}
	return nil
}

// Delete removes one pantry row scoped to its owner
func (r *PantryRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&PantryItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pantry.ErrItemNotFound
	}
	return nil
}

// Merge folds one incoming item into the user's pantry. The candidate
// lookup and the resulting write happen inside one transaction; on
// postgres the candidate rows are locked with SELECT ... FOR UPDATE so
// concurrent merges on the same key serialize. SQLite serializes
// writers on its own and rejects FOR UPDATE, so the lock clause is
// applied per dialect.
func (r *PantryRepository) Merge(ctx context.Context, userID uuid.UUID, in pantry.Incoming) (*pantry.Item, error) {
	var out pantry.Item

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		merged, err := mergePantryTx(tx, userID, in)
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

// mergePantryTx runs the merge policy against the caller's open
// transaction, so other writes (a shopping list removal, say) can join
// the same unit of work.
func mergePantryTx(tx *gorm.DB, userID uuid.UUID, in pantry.Incoming) (pantry.Item, error) {
	query := tx.Where("user_id = ? AND name_key = ?", userID, pantry.NameKey(in.Name))
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var models []PantryItemModel
	if err := query.Find(&models).Error; err != nil {
		return pantry.Item{}, err
	}

	existing := make([]pantry.Item, 0, len(models))
	for _, m := range models {
		existing = append(existing, pantryModelToItem(m))
	}

	mut, err := pantry.PlanMerge(existing, in)
	if err != nil {
		return pantry.Item{}, err
	}

	switch mut.Kind {
	case pantry.MutationInsert:
		model := PantryItemModel{
			UserID:    userID,
			Name:      mut.Name,
			Quantity:  mut.Quantity,
			Unit:      mut.Unit,
			ExpiresOn: mut.ExpiresOn,
		}
		if err := tx.Create(&model).Error; err != nil {
			return pantry.Item{}, err
		}
		return pantryModelToItem(model), nil

	default:
		updates := map[string]interface{}{
			"quantity":   mut.Quantity,
			"expires_on": mut.ExpiresOn,
		}
		if err := tx.Model(&PantryItemModel{}).
			Where("id = ?", mut.TargetID).
			Updates(updates).Error; err != nil {
			return pantry.Item{}, err
		}

		var model PantryItemModel
		if err := tx.First(&model, "id = ?", mut.TargetID).Error; err != nil {
			return pantry.Item{}, err
		}
		return pantryModelToItem(model), nil
	}
}

// ExpiringWithin returns items expiring between the start of today and
// now+window, earliest first. Already-expired items and items without
// an expiry never appear.
func (r *PantryRepository) ExpiringWithin(ctx context.Context, userID uuid.UUID, window time.Duration) ([]pantry.Item, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := now.Add(window)

	var models []PantryItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_on IS NOT NULL AND expires_on >= ? AND expires_on <= ?", userID, today, until).
		Order("expires_on ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]pantry.Item, 0, len(models))
	for _, m := range models {
		items = append(items, pantryModelToItem(m))
	}
	return items, nil
}

func pantryModelToItem(m PantryItemModel) pantry.Item {
	return pantry.Item{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Unit:      m.Unit,
		ExpiresOn: m.ExpiresOn,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func pantryItemToModel(item pantry.Item) PantryItemModel {
	return PantryItemModel{
		ID:        item.ID,
		UserID:    item.UserID,
		Name:      item.Name,
		NameKey:   pantry.NameKey(item.Name),
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		ExpiresOn: item.ExpiresOn,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
