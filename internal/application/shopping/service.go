// Package shopping provides the application layer for the shopping
// list, implementing the inbound ShoppingService port.
package shopping

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pantryapp "github.com/pantrywise/v1/internal/application/pantry"
	"github.com/pantrywise/v1/internal/domain/pantry"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
)

// Service implements the shopping list use cases
type Service struct {
	shoppingRepo outbound.ShoppingRepository
	recipes      inbound.RecipeService
	cache        outbound.CacheRepository
	logger       *zap.Logger
}

// NewService creates a new shopping service
func NewService(
	shoppingRepo outbound.ShoppingRepository,
	recipes inbound.RecipeService,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.ShoppingService {
	return &Service{
		shoppingRepo: shoppingRepo,
		recipes:      recipes,
		cache:        cache,
		logger:       logger.Named("shopping-service"),
	}
}

// ListItems returns the user's shopping list
func (s *Service) ListItems(ctx context.Context, userID uuid.UUID) ([]inbound.ShoppingItemDTO, error) {
	items, err := s.shoppingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list shopping items", err)
	}
	return itemsToDTOs(items), nil
}

// AddItem appends one item to the shopping list
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, cmd inbound.AddShoppingItemCommand) (*inbound.ShoppingItemDTO, error) {
	if pantry.NameKey(cmd.Name) == "" {
		return nil, errors.NewValidationError(pantry.ErrEmptyName.Error())
	}
	if cmd.Quantity <= 0 {
		return nil, errors.NewValidationError(pantry.ErrNonPositiveQuantity.Error())
	}

	item := outbound.ShoppingItem{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     cmd.Name,
		Quantity: cmd.Quantity,
		Unit:     pantry.NormalizeUnit(cmd.Unit),
	}
	if err := s.shoppingRepo.Create(ctx, &item); err != nil {
		return nil, errors.NewDatabaseError("create shopping item", err)
	}

	dto := itemToDTO(item)
	return &dto, nil
}

// ToggleDone flips the done flag on one item
func (s *Service) ToggleDone(ctx context.Context, userID, itemID uuid.UUID) (*inbound.ShoppingItemDTO, error) {
	item, err := s.findItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Done = !item.Done
	if err := s.shoppingRepo.SetDone(ctx, userID, itemID, item.Done); err != nil {
		return nil, errors.NewDatabaseError("update shopping item", err)
	}

	dto := itemToDTO(*item)
	return &dto, nil
}

// DeleteItem removes one item from the list
func (s *Service) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.findItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.shoppingRepo.Delete(ctx, userID, itemID); err != nil {
		return errors.NewDatabaseError("delete shopping item", err)
	}
	return nil
}

// MoveToPantry merges one shopping item into the pantry and removes it
// from the list. The repository runs both sides in one transaction, so
// the move is all-or-nothing.
func (s *Service) MoveToPantry(ctx context.Context, userID, itemID uuid.UUID) (*inbound.PantryItemDTO, error) {
	merged, err := s.shoppingRepo.MoveToPantry(ctx, userID, itemID)
	if err != nil {
		if err == pantry.ErrItemNotFound {
			return nil, errors.NewNotFoundError("shopping item")
		}
		return nil, errors.NewDatabaseError("move shopping item to pantry", err)
	}
	pantryapp.BumpVersion(ctx, s.cache, userID)

	s.logger.Info("Shopping item moved to pantry",
		zap.String("user_id", userID.String()),
		zap.String("name", merged.Name),
	)

	return &inbound.PantryItemDTO{
		ID:        merged.ID,
		Name:      merged.Name,
		Quantity:  merged.Quantity,
		Unit:      merged.Unit,
		ExpiresOn: merged.ExpiresOn,
		UpdatedAt: merged.UpdatedAt,
	}, nil
}

// MoveDoneToPantry merges every checked item into the pantry and
// removes them from the list, returning how many moved. Each move is
// its own transaction; a failure stops the loop with the earlier moves
// already committed.
func (s *Service) MoveDoneToPantry(ctx context.Context, userID uuid.UUID) (int, error) {
	done, err := s.shoppingRepo.ListDone(ctx, userID)
	if err != nil {
		return 0, errors.NewDatabaseError("list done shopping items", err)
	}

	moved := 0
	for _, item := range done {
		if _, err := s.shoppingRepo.MoveToPantry(ctx, userID, item.ID); err != nil {
			if err == pantry.ErrItemNotFound {
				// Raced away by a concurrent move; nothing to undo.
				continue
			}
			return moved, errors.NewDatabaseError("move shopping item to pantry", err)
		}
		moved++
	}

	if moved > 0 {
		pantryapp.BumpVersion(ctx, s.cache, userID)
		s.logger.Info("Done shopping items moved to pantry",
			zap.String("user_id", userID.String()),
			zap.Int("count", moved),
		)
	}
	return moved, nil
}

// AddRecipeMissing adds the missing ingredients of a recipe, at their
// shortfall quantities, to the shopping list.
func (s *Service) AddRecipeMissing(ctx context.Context, userID, recipeID uuid.UUID) ([]inbound.ShoppingItemDTO, error) {
	detail, err := s.recipes.GetRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}

	added := make([]inbound.ShoppingItemDTO, 0, len(detail.Match.Missing))
	for _, missing := range detail.Match.Missing {
		qty := missing.Shortfall
		if qty <= 0 {
			continue
		}
		item := outbound.ShoppingItem{
			ID:       uuid.New(),
			UserID:   userID,
			Name:     missing.Name,
			Quantity: qty,
			Unit:     missing.Unit,
		}
		if err := s.shoppingRepo.Create(ctx, &item); err != nil {
			return nil, errors.NewDatabaseError("create shopping item", err)
		}
		added = append(added, itemToDTO(item))
	}

	s.logger.Info("Missing recipe ingredients added to shopping list",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
		zap.Int("count", len(added)),
	)
	return added, nil
}

func (s *Service) findItem(ctx context.Context, userID, itemID uuid.UUID) (*outbound.ShoppingItem, error) {
	item, err := s.shoppingRepo.FindByID(ctx, userID, itemID)
	if err != nil {
		if err == pantry.ErrItemNotFound {
			return nil, errors.NewNotFoundError("shopping item")
		}
		return nil, errors.NewDatabaseError("find shopping item", err)
	}
	return item, nil
}

func itemToDTO(item outbound.ShoppingItem) inbound.ShoppingItemDTO {
	return inbound.ShoppingItemDTO{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		Done:     item.Done,
	}
}

func itemsToDTOs(items []outbound.ShoppingItem) []inbound.ShoppingItemDTO {
	dtos := make([]inbound.ShoppingItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, itemToDTO(item))
	}
	return dtos
}
