package pantry_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/pantrywise/v1/internal/domain/pantry"
)

func strPtr(s string) *string { return &s }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type MergeTestSuite struct {
	suite.Suite
	userID uuid.UUID
}

func (suite *MergeTestSuite) SetupTest() {
	suite.userID = uuid.New()
}

func (suite *MergeTestSuite) item(name string, qty float64, unit *string, expires *time.Time) pantry.Item {
	return pantry.Item{
		ID:        uuid.New(),
		UserID:    suite.userID,
		Name:      name,
		Quantity:  qty,
		Unit:      unit,
		ExpiresOn: expires,
	}
}

func (suite *MergeTestSuite) TestMergeIntoEmptyPantryInserts() {
	in := pantry.Incoming{Name: "Flour", Quantity: 500, Unit: strPtr("g")}

	mut, err := pantry.PlanMerge(nil, in)

	suite.Require().NoError(err)
	suite.Equal(pantry.MutationInsert, mut.Kind)
	suite.Equal("Flour", mut.Name)
	suite.Equal(500.0, mut.Quantity)
}

func (suite *MergeTestSuite) TestMergeAddsQuantities() {
	existing := []pantry.Item{suite.item("Flour", 200, strPtr("g"), nil)}
	in := pantry.Incoming{Name: "Flour", Quantity: 300, Unit: strPtr("g")}

	mut, err := pantry.PlanMerge(existing, in)

	suite.Require().NoError(err)
	suite.Equal(pantry.MutationUpdate, mut.Kind)
	suite.Equal(existing[0].ID, mut.TargetID)
	suite.Equal(500.0, mut.Quantity)
}

func (suite *MergeTestSuite) TestMergeCaseInsensitiveName() {
	existing := []pantry.Item{suite.item("flour", 200, strPtr("g"), nil)}
	in := pantry.Incoming{Name: "FLOUR", Quantity: 100, Unit: strPtr("g")}

	mut, err := pantry.PlanMerge(existing, in)

	suite.Require().NoError(err)
	suite.Equal(pantry.MutationUpdate, mut.Kind)
	suite.Equal(300.0, mut.Quantity)
}

func (suite *MergeTestSuite) TestMergeUnitMismatchInserts() {
	suite.Run("different units", func() {
		existing := []pantry.Item{suite.item("Flour", 200, strPtr("g"), nil)}
		in := pantry.Incoming{Name: "Flour", Quantity: 1, Unit: strPtr("kg")}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Equal(pantry.MutationInsert, mut.Kind)
	})

	suite.Run("one side missing a unit", func() {
		existing := []pantry.Item{suite.item("Eggs", 6, nil, nil)}
		in := pantry.Incoming{Name: "Eggs", Quantity: 6, Unit: strPtr("pcs")}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Equal(pantry.MutationInsert, mut.Kind)
	})

	suite.Run("both units absent match", func() {
		existing := []pantry.Item{suite.item("Eggs", 6, nil, nil)}
		in := pantry.Incoming{Name: "Eggs", Quantity: 6}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Equal(pantry.MutationUpdate, mut.Kind)
		suite.Equal(12.0, mut.Quantity)
	})

	suite.Run("blank unit merges with absent unit", func() {
		existing := []pantry.Item{suite.item("Eggs", 6, nil, nil)}
		in := pantry.Incoming{Name: "Eggs", Quantity: 6, Unit: strPtr("")}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Equal(pantry.MutationUpdate, mut.Kind)
		suite.Equal(12.0, mut.Quantity)
	})

	suite.Run("blank incoming unit inserts as absent", func() {
		in := pantry.Incoming{Name: "Eggs", Quantity: 6, Unit: strPtr("  ")}

		mut, err := pantry.PlanMerge(nil, in)

		suite.Require().NoError(err)
		suite.Equal(pantry.MutationInsert, mut.Kind)
		suite.Nil(mut.Unit)
	})

	suite.Run("unit comparison ignores case", func() {
		existing := []pantry.Item{suite.item("Milk", 1, strPtr("L"), nil)}
		in := pantry.Incoming{Name: "Milk", Quantity: 1, Unit: strPtr("l")}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Equal(pantry.MutationUpdate, mut.Kind)
	})
}

func (suite *MergeTestSuite) TestMergePicksEarliestExpiryCandidate() {
	later := suite.item("Milk", 1, strPtr("l"), datePtr(2025, time.January, 10))
	earlier := suite.item("Milk", 2, strPtr("l"), datePtr(2025, time.January, 5))
	noExpiry := suite.item("Milk", 3, strPtr("l"), nil)
	existing := []pantry.Item{later, noExpiry, earlier}

	mut, err := pantry.PlanMerge(existing, pantry.Incoming{Name: "Milk", Quantity: 1, Unit: strPtr("l")})

	suite.Require().NoError(err)
	suite.Equal(earlier.ID, mut.TargetID)
	suite.Equal(3.0, mut.Quantity)
}

func (suite *MergeTestSuite) TestMergeExpiryReconciliation() {
	suite.Run("earlier incoming expiry wins", func() {
		existing := []pantry.Item{suite.item("Milk", 1, strPtr("l"), datePtr(2025, time.January, 10))}
		in := pantry.Incoming{Name: "Milk", Quantity: 1, Unit: strPtr("l"), ExpiresOn: datePtr(2025, time.January, 5)}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Equal(*datePtr(2025, time.January, 5), *mut.ExpiresOn)
	})

	suite.Run("earlier existing expiry is kept", func() {
		existing := []pantry.Item{suite.item("Milk", 1, strPtr("l"), datePtr(2025, time.January, 5))}
		in := pantry.Incoming{Name: "Milk", Quantity: 1, Unit: strPtr("l"), ExpiresOn: datePtr(2025, time.January, 10)}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Equal(*datePtr(2025, time.January, 5), *mut.ExpiresOn)
	})

	suite.Run("absent incoming expiry never clears an existing one", func() {
		existing := []pantry.Item{suite.item("Milk", 1, strPtr("l"), datePtr(2025, time.January, 5))}
		in := pantry.Incoming{Name: "Milk", Quantity: 1, Unit: strPtr("l")}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Require().NotNil(mut.ExpiresOn)
		suite.Equal(*datePtr(2025, time.January, 5), *mut.ExpiresOn)
	})

	suite.Run("incoming expiry fills an absent one", func() {
		existing := []pantry.Item{suite.item("Milk", 1, strPtr("l"), nil)}
		in := pantry.Incoming{Name: "Milk", Quantity: 1, Unit: strPtr("l"), ExpiresOn: datePtr(2025, time.March, 1)}

		mut, err := pantry.PlanMerge(existing, in)

		suite.Require().NoError(err)
		suite.Require().NotNil(mut.ExpiresOn)
		suite.Equal(*datePtr(2025, time.March, 1), *mut.ExpiresOn)
	})
}

func (suite *MergeTestSuite) TestMergeValidation() {
	suite.Run("empty name", func() {
		_, err := pantry.PlanMerge(nil, pantry.Incoming{Name: "   ", Quantity: 1})
		suite.ErrorIs(err, pantry.ErrEmptyName)
	})

	suite.Run("zero quantity", func() {
		_, err := pantry.PlanMerge(nil, pantry.Incoming{Name: "Salt", Quantity: 0})
		suite.ErrorIs(err, pantry.ErrNonPositiveQuantity)
	})

	suite.Run("negative quantity", func() {
		_, err := pantry.PlanMerge(nil, pantry.Incoming{Name: "Salt", Quantity: -1})
		suite.ErrorIs(err, pantry.ErrNonPositiveQuantity)
	})
}

func (suite *MergeTestSuite) TestRepeatedMergeAccumulatesLinearly() {
	existing := []pantry.Item{suite.item("Rice", 100, strPtr("g"), nil)}
	in := pantry.Incoming{Name: "Rice", Quantity: 50, Unit: strPtr("g")}

	for i := 0; i < 4; i++ {
		mut, err := pantry.PlanMerge(existing, in)
		suite.Require().NoError(err)
		suite.Equal(pantry.MutationUpdate, mut.Kind)
		existing[0].Quantity = mut.Quantity
	}

	suite.Equal(300.0, existing[0].Quantity)
}

func TestMergeTestSuite(t *testing.T) {
	suite.Run(t, new(MergeTestSuite))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "flour", pantry.NameKey("  FloUr "))
	assert.Equal(t, "", pantry.NameKey("   "))
}

func TestSameUnit(t *testing.T) {
	g, G, kg, blank := "g", " G ", "kg", ""

	assert.True(t, pantry.SameUnit(nil, nil))
	assert.True(t, pantry.SameUnit(&g, &G))
	assert.False(t, pantry.SameUnit(&g, &kg))
	assert.False(t, pantry.SameUnit(&g, nil))
	assert.False(t, pantry.SameUnit(nil, &g))

	// Blank compares equal to absent on either side.
	assert.True(t, pantry.SameUnit(&blank, nil))
	assert.True(t, pantry.SameUnit(nil, &blank))
	assert.False(t, pantry.SameUnit(&blank, &g))
}

func TestNormalizeUnit(t *testing.T) {
	g, padded, blank := "g", "  kg ", "   "

	assert.Nil(t, pantry.NormalizeUnit(nil))
	assert.Nil(t, pantry.NormalizeUnit(&blank))
	assert.Equal(t, "g", *pantry.NormalizeUnit(&g))
	assert.Equal(t, "kg", *pantry.NormalizeUnit(&padded))
}
