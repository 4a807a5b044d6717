// Package gorm provides GORM model definitions and repository
// implementations for the application.
package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrywise/v1/internal/domain/pantry"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate sets the ID if not already set
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PantryItemModel represents the GORM model for pantry items. NameKey
// holds the lowercased name used as the merge and match key.
type PantryItemModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index;index:idx_pantry_user_name_key,priority:1"`
	Name      string    `gorm:"type:varchar(200);not null"`
	NameKey   string    `gorm:"type:varchar(200);not null;index:idx_pantry_user_name_key,priority:2"`
	Quantity  float64   `gorm:"not null"`
	Unit      *string   `gorm:"type:varchar(50)"`
	ExpiresOn *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for PantryItemModel
func (PantryItemModel) TableName() string {
	return "pantry_items"
}

// BeforeCreate sets the ID and name key
func (m *PantryItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.NameKey = pantry.NameKey(m.Name)
	return nil
}

// BeforeSave keeps the name key in sync with the name
func (m *PantryItemModel) BeforeSave(tx *gorm.DB) error {
	m.NameKey = pantry.NameKey(m.Name)
	return nil
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title       string    `gorm:"type:varchar(200);not null;index"`
	Description string    `gorm:"type:text"`
	StepsMd     string    `gorm:"type:text"`
	CreatedBy   uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []TagModel              `gorm:"many2many:recipe_tags;"`
}

// TableName returns the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// BeforeCreate sets the ID if not already set
func (m *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RecipeIngredientModel represents one ingredient line of a recipe
type RecipeIngredientModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;index"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Amount   float64   `gorm:"not null"`
	Unit     *string   `gorm:"type:varchar(50)"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for RecipeIngredientModel
func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

// BeforeCreate sets the ID if not already set
func (m *RecipeIngredientModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TagModel represents a normalized recipe tag
type TagModel struct {
	ID   uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name string    `gorm:"type:varchar(50);uniqueIndex;not null"`
}

// TableName returns the table name for TagModel
func (TagModel) TableName() string {
	return "tags"
}

// BeforeCreate sets the ID if not already set
func (m *TagModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// FavouriteModel represents a user's favourite recipe
type FavouriteModel struct {
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for FavouriteModel
func (FavouriteModel) TableName() string {
	return "favourites"
}

// ShoppingItemModel represents the GORM model for shopping list items
type ShoppingItemModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Quantity  float64   `gorm:"not null"`
	Unit      *string   `gorm:"type:varchar(50)"`
	Done      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for ShoppingItemModel
func (ShoppingItemModel) TableName() string {
	return "shopping_items"
}

// BeforeCreate sets the ID if not already set
func (m *ShoppingItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UnitConversionModel represents one row of the conversion table
type UnitConversionModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Family       string    `gorm:"type:varchar(50);not null;index;uniqueIndex:idx_conversion_family_unit,priority:1"`
	Unit         string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_conversion_family_unit,priority:2"`
	ToBaseFactor float64   `gorm:"not null"`
}

// TableName returns the table name for UnitConversionModel
func (UnitConversionModel) TableName() string {
	return "unit_conversions"
}

// BeforeCreate sets the ID if not already set
func (m *UnitConversionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AllModels lists every model for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&PantryItemModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&TagModel{},
		&FavouriteModel{},
		&ShoppingItemModel{},
		&UnitConversionModel{},
	}
}
