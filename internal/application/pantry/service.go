// Package pantry provides the application layer for pantry management,
// implementing the inbound PantryService port.
package pantry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/domain/pantry"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
)

// Service implements the pantry use cases
type Service struct {
	pantryRepo outbound.PantryRepository
	cache      outbound.CacheRepository
	logger     *zap.Logger
}

// NewService creates a new pantry service
func NewService(pantryRepo outbound.PantryRepository, cache outbound.CacheRepository, logger *zap.Logger) inbound.PantryService {
	return &Service{
		pantryRepo: pantryRepo,
		cache:      cache,
		logger:     logger.Named("pantry-service"),
	}
}

// CacheVersionKey is the cache key holding a user's pantry version
// token. Every pantry write rotates the token, so anything cached
// against the old token (match results in particular) stops matching.
func CacheVersionKey(userID uuid.UUID) string {
	return "pantry:ver:" + userID.String()
}

// BumpVersion rotates the user's pantry version token. Cache failures
// degrade silently, like every other cache interaction.
func BumpVersion(ctx context.Context, cache outbound.CacheRepository, userID uuid.UUID) {
	if cache == nil {
		return
	}
	_ = cache.Set(ctx, CacheVersionKey(userID), []byte(uuid.NewString()), 24*time.Hour)
}

// ListItems returns the user's pantry ordered by name
func (s *Service) ListItems(ctx context.Context, userID uuid.UUID) ([]inbound.PantryItemDTO, error) {
	items, err := s.pantryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry items", err)
	}

	dtos := make([]inbound.PantryItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, itemToDTO(it))
	}
	return dtos, nil
}

// AddItem merges one item into the pantry
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, cmd inbound.AddPantryItemCommand) (*inbound.PantryItemDTO, error) {
	in := pantry.Incoming{
		Name:      cmd.Name,
		Quantity:  cmd.Quantity,
		Unit:      pantry.NormalizeUnit(cmd.Unit),
		ExpiresOn: cmd.ExpiresOn,
	}
	if err := in.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	item, err := s.pantryRepo.Merge(ctx, userID, in)
	if err != nil {
		return nil, errors.NewDatabaseError("merge pantry item", err)
	}
	BumpVersion(ctx, s.cache, userID)

	s.logger.Info("Pantry item merged",
		zap.String("user_id", userID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
	)

	dto := itemToDTO(*item)
	return &dto, nil
}

// UpdateItem rewrites one pantry item in place
func (s *Service) UpdateItem(ctx context.Context, userID uuid.UUID, cmd inbound.UpdatePantryItemCommand) (*inbound.PantryItemDTO, error) {
	if pantry.NameKey(cmd.Name) == "" {
		return nil, errors.NewValidationError(pantry.ErrEmptyName.Error())
	}
	if cmd.Quantity <= 0 {
		return nil, errors.NewValidationError(pantry.ErrNonPositiveQuantity.Error())
	}

	item, err := s.pantryRepo.FindByID(ctx, userID, cmd.ItemID)
	if err != nil {
		if err == pantry.ErrItemNotFound {
			return nil, errors.NewPantryItemNotFoundError(cmd.ItemID.String())
		}
		return nil, errors.NewDatabaseError("find pantry item", err)
	}

	item.Name = cmd.Name
	item.Quantity = cmd.Quantity
	item.Unit = pantry.NormalizeUnit(cmd.Unit)
	item.ExpiresOn = cmd.ExpiresOn

	if err := s.pantryRepo.Update(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("update pantry item", err)
	}
	BumpVersion(ctx, s.cache, userID)

	dto := itemToDTO(*item)
	return &dto, nil
}

// DeleteItem removes one pantry item
func (s *Service) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.pantryRepo.Delete(ctx, userID, itemID); err != nil {
		if err == pantry.ErrItemNotFound {
			return errors.NewPantryItemNotFoundError(itemID.String())
		}
		return errors.NewDatabaseError("delete pantry item", err)
	}
	BumpVersion(ctx, s.cache, userID)

	s.logger.Info("Pantry item deleted",
		zap.String("user_id", userID.String()),
		zap.String("item_id", itemID.String()),
	)
	return nil
}

// ExpiringSoon returns items expiring within the given number of days
func (s *Service) ExpiringSoon(ctx context.Context, userID uuid.UUID, days int) ([]inbound.PantryItemDTO, error) {
	if days <= 0 {
		days = 5
	}

	items, err := s.pantryRepo.ExpiringWithin(ctx, userID, time.Duration(days)*24*time.Hour)
	if err != nil {
		return nil, errors.NewDatabaseError("list expiring pantry items", err)
	}

	dtos := make([]inbound.PantryItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, itemToDTO(it))
	}
	return dtos, nil
}

func itemToDTO(it pantry.Item) inbound.PantryItemDTO {
	return inbound.PantryItemDTO{
		ID:        it.ID,
		Name:      it.Name,
		Quantity:  it.Quantity,
		Unit:      it.Unit,
		ExpiresOn: it.ExpiresOn,
		UpdatedAt: it.UpdatedAt,
	}
}
