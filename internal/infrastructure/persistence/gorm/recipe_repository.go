package gorm

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrywise/v1/internal/domain/recipe"
	"github.com/pantrywise/v1/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists a new recipe with its ingredients and tags
func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := recipeToModel(entity)
		if err := tx.Omit("Tags").Create(&model).Error; err != nil {
			return err
		}
		return r.replaceTags(tx, model.ID, entity.Tags())
	})
}

// Update rewrites a recipe with its ingredients and tags
func (r *RecipeRepository) Update(ctx context.Context, entity *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&RecipeModel{}).
			Where("id = ?", entity.ID()).
			Updates(map[string]interface{}{
				"title":       entity.Title(),
				"description": entity.Description(),
				"steps_md":    entity.StepsMarkdown(),
				"updated_at":  entity.UpdatedAt(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return recipe.ErrRecipeNotFound
		}

		if err := tx.Where("recipe_id = ?", entity.ID()).
			Delete(&RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		for _, ing := range entity.Ingredients() {
			model := RecipeIngredientModel{
				RecipeID: entity.ID(),
				Name:     ing.Name,
				Amount:   ing.Amount,
				Unit:     ing.Unit,
				Position: ing.Position,
			}
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}

		return r.replaceTags(tx, entity.ID(), entity.Tags())
	})
}

// Delete removes a recipe with its ingredients, tags and favourites
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_model_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&FavouriteModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&RecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return recipe.ErrRecipeNotFound
		}
		return nil
	})
}

// FindByID loads one recipe with its ingredients and tags
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Tags").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, err
	}

	return modelToRecipe(model), nil
}

// FindAll returns a page of recipes, newest first, with the total count
func (r *RecipeRepository) FindAll(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Tags").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	return modelsToRecipes(models), int(total), nil
}

// Search matches free text against title, ingredient names and tag
// names, optionally narrowed to one exact tag.
func (r *RecipeRepository) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, int, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{}).Distinct("recipes.id")

	if text := strings.TrimSpace(criteria.Query); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		query = query.
			Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Joins("LEFT JOIN recipe_tags ON recipe_tags.recipe_model_id = recipes.id").
			Joins("LEFT JOIN tags ON tags.id = recipe_tags.tag_model_id").
			Where("LOWER(recipes.title) LIKE ? OR LOWER(recipe_ingredients.name) LIKE ? OR tags.name LIKE ?",
				pattern, pattern, pattern)
	}

	if tag := strings.ToLower(strings.TrimSpace(criteria.Tag)); tag != "" {
		query = query.Where(
			"recipes.id IN (SELECT rt.recipe_model_id FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_model_id WHERE t.name = ?)",
			tag,
		)
	}

	var ids []uuid.UUID
	if err := query.Pluck("recipes.id", &ids).Error; err != nil {
		return nil, 0, err
	}
	total := len(ids)

	if criteria.Offset >= total {
		return []*recipe.Recipe{}, total, nil
	}
	end := total
	if criteria.Limit > 0 && criteria.Offset+criteria.Limit < end {
		end = criteria.Offset + criteria.Limit
	}
	pageIDs := ids[criteria.Offset:end]
	if len(pageIDs) == 0 {
		return []*recipe.Recipe{}, total, nil
	}

	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Tags").
		Where("id IN ?", pageIDs).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	return modelsToRecipes(models), total, nil
}

// replaceTags resets a recipe's tag set, creating tag rows on demand.
func (r *RecipeRepository) replaceTags(tx *gorm.DB, recipeID uuid.UUID, tags []string) error {
	if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_model_id = ?", recipeID).Error; err != nil {
		return err
	}

	for _, name := range tags {
		var tag TagModel
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = TagModel{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Exec(
			"INSERT INTO recipe_tags (recipe_model_id, tag_model_id) VALUES (?, ?)",
			recipeID, tag.ID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func recipeToModel(entity *recipe.Recipe) RecipeModel {
	ings := entity.Ingredients()
	ingModels := make([]RecipeIngredientModel, 0, len(ings))
	for _, ing := range ings {
		ingModels = append(ingModels, RecipeIngredientModel{
			RecipeID: entity.ID(),
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
			Position: ing.Position,
		})
	}

	return RecipeModel{
		ID:          entity.ID(),
		Title:       entity.Title(),
		Description: entity.Description(),
		StepsMd:     entity.StepsMarkdown(),
		CreatedBy:   entity.CreatedBy(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
		Ingredients: ingModels,
	}
}

func modelToRecipe(model RecipeModel) *recipe.Recipe {
	ings := make([]recipe.Ingredient, 0, len(model.Ingredients))
	for _, ing := range model.Ingredients {
		ings = append(ings, recipe.Ingredient{
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
			Position: ing.Position,
		})
	}

	tags := make([]string, 0, len(model.Tags))
	for _, tag := range model.Tags {
		tags = append(tags, tag.Name)
	}
	sort.Strings(tags)

	return recipe.Reconstruct(
		model.ID,
		model.Title,
		model.Description,
		model.StepsMd,
		model.CreatedBy,
		ings,
		tags,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func modelsToRecipes(models []RecipeModel) []*recipe.Recipe {
	out := make([]*recipe.Recipe, 0, len(models))
	for _, m := range models {
		out = append(out, modelToRecipe(m))
	}
	return out
}
