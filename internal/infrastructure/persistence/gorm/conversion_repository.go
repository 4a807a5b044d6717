package gorm

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantrywise/v1/internal/domain/units"
	"github.com/pantrywise/v1/internal/ports/outbound"
)

// ConversionRepository loads the unit conversion table from storage.
// It fails open: any load error yields an empty table so the matcher
// keeps working on same-unit comparisons only.
type ConversionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewConversionRepository creates a new conversion repository
func NewConversionRepository(db *gorm.DB, logger *zap.Logger) outbound.ConversionRepository {
	return &ConversionRepository{
		db:     db,
		logger: logger.Named("conversion-repository"),
	}
}

// LoadTable reads every conversion row grouped into families. Family
// insertion order follows (family, unit) ordering so table scans stay
// deterministic across loads.
func (r *ConversionRepository) LoadTable(ctx context.Context) *units.Table {
	table := units.NewTable()

	var models []UnitConversionModel
	err := r.db.WithContext(ctx).
		Order("family ASC, unit ASC").
		Find(&models).Error
	if err != nil {
		r.logger.Warn("Failed to load conversion table, matching degrades to same-unit only",
			zap.Error(err),
		)
		return table
	}

	for _, m := range models {
		table.Add(m.Family, m.Unit, m.ToBaseFactor)
	}
	return table
}

// SeedDefaultConversions inserts the standard metric families when the
// table is empty. Existing rows are left untouched.
func SeedDefaultConversions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&UnitConversionModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []UnitConversionModel{
		{Family: "mass", Unit: "mg", ToBaseFactor: 0.001},
		{Family: "mass", Unit: "g", ToBaseFactor: 1},
		{Family: "mass", Unit: "kg", ToBaseFactor: 1000},
		{Family: "volume", Unit: "ml", ToBaseFactor: 1},
		{Family: "volume", Unit: "l", ToBaseFactor: 1000},
		{Family: "volume", Unit: "tsp", ToBaseFactor: 5},
		{Family: "volume", Unit: "tbsp", ToBaseFactor: 15},
		{Family: "volume", Unit: "cup", ToBaseFactor: 240},
		{Family: "count", Unit: "pcs", ToBaseFactor: 1},
		{Family: "count", Unit: "dozen", ToBaseFactor: 12},
	}
	return db.Create(&defaults).Error
}
