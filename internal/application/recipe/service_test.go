package recipe_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	pantryapp "github.com/pantrywise/v1/internal/application/pantry"
	recipeapp "github.com/pantrywise/v1/internal/application/recipe"
	"github.com/pantrywise/v1/internal/domain/pantry"
	"github.com/pantrywise/v1/internal/domain/recipe"
	"github.com/pantrywise/v1/internal/domain/units"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
	"github.com/pantrywise/v1/test/testutils"
)

// In-memory fakes

type fakeRecipeRepo struct {
	recipes map[uuid.UUID]*recipe.Recipe
	order   []uuid.UUID
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uuid.UUID]*recipe.Recipe)}
}

func (f *fakeRecipeRepo) Create(ctx context.Context, r *recipe.Recipe) error {
	f.recipes[r.ID()] = r
	f.order = append(f.order, r.ID())
	return nil
}

func (f *fakeRecipeRepo) Update(ctx context.Context, r *recipe.Recipe) error {
	if _, ok := f.recipes[r.ID()]; !ok {
		return recipe.ErrRecipeNotFound
	}
	f.recipes[r.ID()] = r
	return nil
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.recipes[id]; !ok {
		return recipe.ErrRecipeNotFound
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return r, nil
}

func (f *fakeRecipeRepo) FindAll(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error) {
	out := make([]*recipe.Recipe, 0, len(f.order))
	for _, id := range f.order {
		if r, ok := f.recipes[id]; ok {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRecipeRepo) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, int, error) {
	return f.FindAll(ctx, criteria.Offset, criteria.Limit)
}

type fakePantryRepo struct {
	items []pantry.Item
}

func (f *fakePantryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]pantry.Item, error) {
	out := make([]pantry.Item, 0, len(f.items))
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakePantryRepo) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error) {
	return nil, pantry.ErrItemNotFound
}

func (f *fakePantryRepo) Update(ctx context.Context, item *pantry.Item) error { return nil }

func (f *fakePantryRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error { return nil }

func (f *fakePantryRepo) Merge(ctx context.Context, userID uuid.UUID, in pantry.Incoming) (*pantry.Item, error) {
	item := pantry.Item{ID: uuid.New(), UserID: userID, Name: in.Name, Quantity: in.Quantity, Unit: in.Unit, ExpiresOn: in.ExpiresOn}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakePantryRepo) ExpiringWithin(ctx context.Context, userID uuid.UUID, window time.Duration) ([]pantry.Item, error) {
	return nil, nil
}

type fakeFavouriteRepo struct {
	favs map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeFavouriteRepo() *fakeFavouriteRepo {
	return &fakeFavouriteRepo{favs: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (f *fakeFavouriteRepo) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	if f.favs[userID] == nil {
		f.favs[userID] = make(map[uuid.UUID]bool)
	}
	f.favs[userID][recipeID] = true
	return nil
}

func (f *fakeFavouriteRepo) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	delete(f.favs[userID], recipeID)
	return nil
}

func (f *fakeFavouriteRepo) IsFavourite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	return f.favs[userID][recipeID], nil
}

func (f *fakeFavouriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range f.favs[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeConversionRepo struct {
	table *units.Table
}

func (f *fakeConversionRepo) LoadTable(ctx context.Context) *units.Table {
	if f.table == nil {
		return units.NewTable()
	}
	return f.table
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

type RecipeServiceTestSuite struct {
	suite.Suite
	svc        inbound.RecipeService
	recipeRepo *fakeRecipeRepo
	pantryRepo *fakePantryRepo
	table      *units.Table
	userID     uuid.UUID
	ctx        context.Context
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	suite.table = units.NewTable()
	suite.table.Add("mass", "g", 1)
	suite.table.Add("mass", "kg", 1000)

	suite.recipeRepo = newFakeRecipeRepo()
	suite.pantryRepo = &fakePantryRepo{}
	suite.userID = uuid.New()
	suite.ctx = context.Background()

	suite.svc = recipeapp.NewService(
		suite.recipeRepo,
		suite.pantryRepo,
		newFakeFavouriteRepo(),
		&fakeConversionRepo{table: suite.table},
		nil,
		zap.NewNop(),
	)
}

func (suite *RecipeServiceTestSuite) seedRecipe(title string, ings ...recipe.Ingredient) *recipe.Recipe {
	b := testutils.NewRecipeBuilder().WithTitle(title).WithAuthor(suite.userID)
	for _, ing := range ings {
		unit := ""
		if ing.Unit != nil {
			unit = *ing.Unit
		}
		b = b.WithIngredient(ing.Name, ing.Amount, unit)
	}
	r := b.Build()
	suite.Require().NoError(suite.recipeRepo.Create(suite.ctx, r))
	return r
}

func strPtr(s string) *string { return &s }

func (suite *RecipeServiceTestSuite) stock(name string, qty float64, unit string) {
	var u *string
	if unit != "" {
		u = &unit
	}
	suite.pantryRepo.items = append(suite.pantryRepo.items, pantry.Item{
		ID: uuid.New(), UserID: suite.userID, Name: name, Quantity: qty, Unit: u,
	})
}

func (suite *RecipeServiceTestSuite) TestGetRecipeComputesMatch() {
	r := suite.seedRecipe("Bread",
		recipe.Ingredient{Name: "Flour", Amount: 500, Unit: strPtr("g")},
		recipe.Ingredient{Name: "Yeast", Amount: 7, Unit: strPtr("g")},
	)
	suite.stock("flour", 1, "kg")

	detail, err := suite.svc.GetRecipe(suite.ctx, r.ID(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(50.0, detail.Match.MatchPercent)
	suite.Require().Len(detail.Match.Have, 1)
	suite.Equal("Flour", detail.Match.Have[0].Name)
	suite.Require().Len(detail.Match.Missing, 1)
	suite.Equal(7.0, detail.Match.Missing[0].Shortfall)
}

func (suite *RecipeServiceTestSuite) TestGetRecipeNotFound() {
	_, err := suite.svc.GetRecipe(suite.ctx, uuid.New(), suite.userID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeRecipeNotFound))
}

func (suite *RecipeServiceTestSuite) TestSearchSortsByMatchPercent() {
	suite.seedRecipe("No Match", recipe.Ingredient{Name: "Saffron", Amount: 1, Unit: strPtr("g")})
	full := suite.seedRecipe("Full Match", recipe.Ingredient{Name: "Flour", Amount: 100, Unit: strPtr("g")})
	suite.stock("flour", 500, "g")

	list, err := suite.svc.SearchRecipes(suite.ctx, suite.userID, inbound.SearchQuery{Text: "match"})

	suite.Require().NoError(err)
	suite.Require().Len(list.Recipes, 2)
	suite.Equal(full.ID(), list.Recipes[0].ID)
	suite.Equal(100.0, list.Recipes[0].MatchPercent)
}

func (suite *RecipeServiceTestSuite) TestCreateValidates() {
	_, err := suite.svc.CreateRecipe(suite.ctx, inbound.CreateRecipeCommand{
		UserID: suite.userID,
		Title:  "   ",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeValidationFailed))
}

func (suite *RecipeServiceTestSuite) TestUpdateRejectsNonOwner() {
	r := suite.seedRecipe("Bread", recipe.Ingredient{Name: "Flour", Amount: 500, Unit: strPtr("g")})

	_, err := suite.svc.UpdateRecipe(suite.ctx, inbound.UpdateRecipeCommand{
		RecipeID: r.ID(),
		UserID:   uuid.New(),
		Title:    "Stolen Bread",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeForbidden))
}

func (suite *RecipeServiceTestSuite) TestToggleFavourite() {
	r := suite.seedRecipe("Bread", recipe.Ingredient{Name: "Flour", Amount: 500, Unit: strPtr("g")})

	fav, err := suite.svc.ToggleFavourite(suite.ctx, suite.userID, r.ID())
	suite.Require().NoError(err)
	suite.True(fav)

	fav, err = suite.svc.ToggleFavourite(suite.ctx, suite.userID, r.ID())
	suite.Require().NoError(err)
	suite.False(fav)
}

func (suite *RecipeServiceTestSuite) TestTopMatchesLimits() {
	suite.stock("flour", 1, "kg")
	for i := 0; i < 3; i++ {
		suite.seedRecipe("Flour Recipe", recipe.Ingredient{Name: "Flour", Amount: 100, Unit: strPtr("g")})
	}

	matches, err := suite.svc.TopMatches(suite.ctx, suite.userID, 2)

	suite.Require().NoError(err)
	suite.Len(matches, 2)
	suite.Equal(100.0, matches[0].MatchPercent)
}

func (suite *RecipeServiceTestSuite) TestCachedMatchRefreshesAfterPantryChange() {
	cache := newFakeCache()
	svc := recipeapp.NewService(
		suite.recipeRepo,
		suite.pantryRepo,
		newFakeFavouriteRepo(),
		&fakeConversionRepo{table: suite.table},
		cache,
		zap.NewNop(),
	)
	pantrySvc := pantryapp.NewService(suite.pantryRepo, cache, zap.NewNop())

	r := suite.seedRecipe("Bread", recipe.Ingredient{Name: "Flour", Amount: 500, Unit: strPtr("g")})

	detail, err := svc.GetRecipe(suite.ctx, r.ID(), suite.userID)
	suite.Require().NoError(err)
	suite.Equal(0.0, detail.Match.MatchPercent)

	_, err = pantrySvc.AddItem(suite.ctx, suite.userID, inbound.AddPantryItemCommand{
		Name: "Flour", Quantity: 1, Unit: strPtr("kg"),
	})
	suite.Require().NoError(err)

	// The pantry write rotated the version token, so the cached zero
	// percent result no longer applies.
	detail, err = svc.GetRecipe(suite.ctx, r.ID(), suite.userID)
	suite.Require().NoError(err)
	suite.Equal(100.0, detail.Match.MatchPercent)
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
