package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/pantrywise/v1/internal/domain/units"
)

type ConverterTestSuite struct {
	suite.Suite
	table *units.Table
}

func (suite *ConverterTestSuite) SetupTest() {
	suite.table = units.NewTable()
	suite.table.Add("mass", "g", 1)
	suite.table.Add("mass", "kg", 1000)
	suite.table.Add("mass", "mg", 0.001)
	suite.table.Add("volume", "ml", 1)
	suite.table.Add("volume", "l", 1000)
	suite.table.Add("volume", "cup", 240)
}

func (suite *ConverterTestSuite) TestConvertWithinFamily() {
	suite.Run("kilograms to grams", func() {
		qty, ok := suite.table.Convert(1.5, "kg", "g")

		suite.True(ok)
		suite.InDelta(1500, qty, 1e-9)
	})

	suite.Run("grams to kilograms", func() {
		qty, ok := suite.table.Convert(250, "g", "kg")

		suite.True(ok)
		suite.InDelta(0.25, qty, 1e-9)
	})

	suite.Run("cups to millilitres", func() {
		qty, ok := suite.table.Convert(2, "cup", "ml")

		suite.True(ok)
		suite.InDelta(480, qty, 1e-9)
	})
}

func (suite *ConverterTestSuite) TestConvertIdentity() {
	suite.Run("same unit needs no table entry", func() {
		qty, ok := suite.table.Convert(3, "pinch", "pinch")

		suite.True(ok)
		suite.InDelta(3, qty, 1e-9)
	})

	suite.Run("identity is case insensitive", func() {
		qty, ok := suite.table.Convert(7, "Kg", "kg")

		suite.True(ok)
		suite.InDelta(7, qty, 1e-9)
	})
}

func (suite *ConverterTestSuite) TestConvertCaseInsensitiveLookup() {
	qty, ok := suite.table.Convert(1, "KG", "G")

	suite.True(ok)
	suite.InDelta(1000, qty, 1e-9)
}

func (suite *ConverterTestSuite) TestConvertFailsAcrossFamilies() {
	_, ok := suite.table.Convert(1, "kg", "ml")

	suite.False(ok)
}

func (suite *ConverterTestSuite) TestConvertFailsForUnknownUnit() {
	suite.Run("unknown source unit", func() {
		_, ok := suite.table.Convert(1, "stone", "g")
		suite.False(ok)
	})

	suite.Run("unknown target unit", func() {
		_, ok := suite.table.Convert(1, "g", "stone")
		suite.False(ok)
	})

	suite.Run("empty unit strings", func() {
		_, ok := suite.table.Convert(1, "", "g")
		suite.False(ok)
	})
}

func (suite *ConverterTestSuite) TestConvertEmptyTable() {
	empty := units.NewTable()

	_, ok := empty.Convert(1, "kg", "g")

	suite.False(ok)
	suite.Equal(0, empty.Len())
}

func (suite *ConverterTestSuite) TestConvertRoundTrip() {
	// Converting there and back must return the original quantity.
	qty, ok := suite.table.Convert(42, "kg", "mg")
	suite.True(ok)

	back, ok := suite.table.Convert(qty, "mg", "kg")
	suite.True(ok)
	suite.InDelta(42, back, 1e-9)
}

func (suite *ConverterTestSuite) TestFirstFamilyWinsOnAmbiguousPair() {
	// "oz" registered in mass first, then as fluid ounce in volume.
	suite.table.Add("mass", "oz", 28.35)
	suite.table.Add("mass", "lb", 453.6)
	suite.table.Add("volume", "oz", 29.57)

	qty, ok := suite.table.Convert(1, "oz", "g")

	suite.True(ok)
	suite.InDelta(28.35, qty, 1e-9)
}

func (suite *ConverterTestSuite) TestDuplicateUnits() {
	suite.Run("clean table reports none", func() {
		suite.Empty(suite.table.DuplicateUnits())
	})

	suite.Run("unit in two families is reported once", func() {
		suite.table.Add("mass", "oz", 28.35)
		suite.table.Add("volume", "oz", 29.57)

		dups := suite.table.DuplicateUnits()

		suite.Equal([]string{"oz"}, dups)
	})
}

func (suite *ConverterTestSuite) TestAddDropsMalformedRows() {
	before := suite.table.Len()

	suite.table.Add("", "g", 1)
	suite.table.Add("mass", "", 1)
	suite.table.Add("mass", "bad", 0)
	suite.table.Add("mass", "worse", -5)

	suite.Equal(before, suite.table.Len())
	_, ok := suite.table.Convert(1, "bad", "g")
	suite.False(ok)
}

func (suite *ConverterTestSuite) TestAddNormalizesUnits() {
	suite.table.Add("mass", "  Tonne ", 1e6)

	qty, ok := suite.table.Convert(1, "tonne", "kg")

	suite.True(ok)
	suite.InDelta(1000, qty, 1e-9)
}

func TestConverterTestSuite(t *testing.T) {
	suite.Run(t, new(ConverterTestSuite))
}

func BenchmarkConvert(b *testing.B) {
	table := units.NewTable()
	table.Add("mass", "g", 1)
	table.Add("mass", "kg", 1000)
	table.Add("volume", "ml", 1)
	table.Add("volume", "l", 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = table.Convert(1.5, "kg", "g")
	}
}

func TestConvertTableIndependentOfAddOrder(t *testing.T) {
	table := units.NewTable()
	table.Add("volume", "l", 1000)
	table.Add("mass", "kg", 1000)
	table.Add("volume", "ml", 1)
	table.Add("mass", "g", 1)

	qty, ok := table.Convert(2, "l", "ml")

	assert.True(t, ok)
	assert.InDelta(t, 2000, qty, 1e-9)
}
