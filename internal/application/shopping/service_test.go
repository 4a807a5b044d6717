package shopping_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	shoppingapp "github.com/pantrywise/v1/internal/application/shopping"
	"github.com/pantrywise/v1/internal/domain/match"
	"github.com/pantrywise/v1/internal/domain/pantry"
	redisrepo "github.com/pantrywise/v1/internal/infrastructure/persistence/redis"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
)

type fakeShoppingRepo struct {
	items map[uuid.UUID]*outbound.ShoppingItem
	order []uuid.UUID
	moved []outbound.ShoppingItem
}

func newFakeShoppingRepo() *fakeShoppingRepo {
	return &fakeShoppingRepo{items: make(map[uuid.UUID]*outbound.ShoppingItem)}
}

func (f *fakeShoppingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]outbound.ShoppingItem, error) {
	var out []outbound.ShoppingItem
	for _, id := range f.order {
		if it, ok := f.items[id]; ok && it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeShoppingRepo) ListDone(ctx context.Context, userID uuid.UUID) ([]outbound.ShoppingItem, error) {
	var out []outbound.ShoppingItem
	for _, id := range f.order {
		if it, ok := f.items[id]; ok && it.UserID == userID && it.Done {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeShoppingRepo) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*outbound.ShoppingItem, error) {
	it, ok := f.items[itemID]
	if !ok || it.UserID != userID {
		return nil, pantry.ErrItemNotFound
	}
	copied := *it
	return &copied, nil
}

func (f *fakeShoppingRepo) Create(ctx context.Context, item *outbound.ShoppingItem) error {
	copied := *item
	f.items[item.ID] = &copied
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeShoppingRepo) SetDone(ctx context.Context, userID, itemID uuid.UUID, done bool) error {
	it, ok := f.items[itemID]
	if !ok || it.UserID != userID {
		return pantry.ErrItemNotFound
	}
	it.Done = done
	return nil
}

func (f *fakeShoppingRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	it, ok := f.items[itemID]
	if !ok || it.UserID != userID {
		return pantry.ErrItemNotFound
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeShoppingRepo) MoveToPantry(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error) {
	it, ok := f.items[itemID]
	if !ok || it.UserID != userID {
		return nil, pantry.ErrItemNotFound
	}
	delete(f.items, itemID)
	f.moved = append(f.moved, *it)
	return &pantry.Item{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     it.Name,
		Quantity: it.Quantity,
		Unit:     it.Unit,
	}, nil
}

// stubRecipeService serves a canned recipe detail; the embedded interface
// panics on anything else.
type stubRecipeService struct {
	inbound.RecipeService
	detail *inbound.RecipeDetailDTO
}

func (s stubRecipeService) GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*inbound.RecipeDetailDTO, error) {
	if s.detail == nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}
	return s.detail, nil
}

type ShoppingServiceTestSuite struct {
	suite.Suite
	shoppingRepo *fakeShoppingRepo
	recipes      stubRecipeService
	userID       uuid.UUID
	ctx          context.Context
}

func (suite *ShoppingServiceTestSuite) SetupTest() {
	suite.shoppingRepo = newFakeShoppingRepo()
	suite.recipes = stubRecipeService{}
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ShoppingServiceTestSuite) service() inbound.ShoppingService {
	return shoppingapp.NewService(suite.shoppingRepo, suite.recipes, redisrepo.NoopCache{}, zap.NewNop())
}

func (suite *ShoppingServiceTestSuite) addItem(svc inbound.ShoppingService, name string, qty float64) inbound.ShoppingItemDTO {
	dto, err := svc.AddItem(suite.ctx, suite.userID, inbound.AddShoppingItemCommand{
		Name:     name,
		Quantity: qty,
	})
	suite.Require().NoError(err)
	return *dto
}

func (suite *ShoppingServiceTestSuite) TestAddAndList() {
	svc := suite.service()
	suite.addItem(svc, "Milk", 2)
	suite.addItem(svc, "Eggs", 12)

	items, err := svc.ListItems(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal("Milk", items[0].Name)
	suite.False(items[0].Done)
}

func (suite *ShoppingServiceTestSuite) TestAddRejectsBlankName() {
	svc := suite.service()

	_, err := svc.AddItem(suite.ctx, suite.userID, inbound.AddShoppingItemCommand{
		Name:     "   ",
		Quantity: 1,
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeValidationFailed))
}

func (suite *ShoppingServiceTestSuite) TestAddNormalizesBlankUnit() {
	svc := suite.service()
	blank := " "

	dto, err := svc.AddItem(suite.ctx, suite.userID, inbound.AddShoppingItemCommand{
		Name:     "Eggs",
		Quantity: 6,
		Unit:     &blank,
	})

	suite.Require().NoError(err)
	suite.Nil(dto.Unit)
}

func (suite *ShoppingServiceTestSuite) TestToggleDone() {
	svc := suite.service()
	item := suite.addItem(svc, "Milk", 2)

	dto, err := svc.ToggleDone(suite.ctx, suite.userID, item.ID)
	suite.Require().NoError(err)
	suite.True(dto.Done)

	dto, err = svc.ToggleDone(suite.ctx, suite.userID, item.ID)
	suite.Require().NoError(err)
	suite.False(dto.Done)
}

func (suite *ShoppingServiceTestSuite) TestMoveToPantry() {
	svc := suite.service()
	item := suite.addItem(svc, "Milk", 2)

	merged, err := svc.MoveToPantry(suite.ctx, suite.userID, item.ID)

	suite.Require().NoError(err)
	suite.Equal("Milk", merged.Name)
	suite.Require().Len(suite.shoppingRepo.moved, 1)
	suite.Equal(2.0, suite.shoppingRepo.moved[0].Quantity)

	items, err := svc.ListItems(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Empty(items)
}

func (suite *ShoppingServiceTestSuite) TestMoveToPantryUnknownItem() {
	svc := suite.service()

	_, err := svc.MoveToPantry(suite.ctx, suite.userID, uuid.New())

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeNotFound))
}

func (suite *ShoppingServiceTestSuite) TestMoveDoneToPantry() {
	svc := suite.service()
	milk := suite.addItem(svc, "Milk", 2)
	suite.addItem(svc, "Eggs", 12)

	_, err := svc.ToggleDone(suite.ctx, suite.userID, milk.ID)
	suite.Require().NoError(err)

	moved, err := svc.MoveDoneToPantry(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, moved)
	suite.Require().Len(suite.shoppingRepo.moved, 1)
	suite.Equal("Milk", suite.shoppingRepo.moved[0].Name)

	items, err := svc.ListItems(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal("Eggs", items[0].Name)
}

func (suite *ShoppingServiceTestSuite) TestAddRecipeMissing() {
	unit := "g"
	suite.recipes = stubRecipeService{detail: &inbound.RecipeDetailDTO{
		Match: match.Result{
			Missing: []match.IngredientStatus{
				{Name: "Flour", Need: 500, Unit: &unit, Have: 100, Shortfall: 400},
				{Name: "Butter", Need: 50, Unit: &unit, Have: 50, Shortfall: 0},
			},
		},
	}}
	svc := suite.service()

	added, err := svc.AddRecipeMissing(suite.ctx, suite.userID, uuid.New())

	suite.Require().NoError(err)
	suite.Require().Len(added, 1)
	suite.Equal("Flour", added[0].Name)
	suite.Equal(400.0, added[0].Quantity)
}

func (suite *ShoppingServiceTestSuite) TestAddRecipeMissingUnknownRecipe() {
	svc := suite.service()

	_, err := svc.AddRecipeMissing(suite.ctx, suite.userID, uuid.New())

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeRecipeNotFound))
}

func (suite *ShoppingServiceTestSuite) TestDeleteUnknownItem() {
	svc := suite.service()

	err := svc.DeleteItem(suite.ctx, suite.userID, uuid.New())

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeNotFound))
}

func TestShoppingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingServiceTestSuite))
}
