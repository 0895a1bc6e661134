package recipe

import (
	"context"
	"strings"

	"Recipe-Box/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, userID string, titleFilter string) ([]*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		CountImageUsers(ctx context.Context, imageURL string, excludeID string) (int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

var recipeColumns = []string{
	"title",
	"description",
	"servings",
	"image_url",
	"image_key",
	"cook_time_in_mins",
	"prep_time_in_mins",
	"updated_at",
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe writes the recipe and every child row in one transaction.
// Ingredients and tags are connected to existing rows by name/title.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resolveShared(tx, recipe); err != nil {
			return err
		}
		return tx.Create(recipe).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Notes").
		Preload("Tags").
		Where("id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipes returns the user's recipes whose title contains titleFilter,
// newest first, with ingredient names joined in.
func (r *recipeRepository) GetRecipes(ctx context.Context, userID string, titleFilter string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if titleFilter != "" {
		query = query.Where("title LIKE ?", "%"+escapeLike(titleFilter)+"%")
	}
	err := query.
		Preload("Ingredients.Ingredient").
		Order("created_at DESC").
		Order("id").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe overwrites the scalar columns, re-creates ingredient, step
// and note rows and replaces the tag set, all in one transaction.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&entities.RecipeIngredient{}, &entities.Step{}, &entities.Note{}} {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(child).Error; err != nil {
				return err
			}
		}

		if err := resolveShared(tx, recipe); err != nil {
			return err
		}

		if err := tx.Model(recipe).Select(recipeColumns).Updates(recipe).Error; err != nil {
			return err
		}

		tags := tx.Model(recipe).Association("Tags")
		if len(recipe.Tags) == 0 {
			if err := tags.Clear(); err != nil {
				return err
			}
		} else if err := tags.Replace(recipe.Tags); err != nil {
			return err
		}

		for _, ing := range recipe.Ingredients {
			ing.RecipeID = recipe.ID
		}
		for _, s := range recipe.Steps {
			s.RecipeID = recipe.ID
		}
		for _, n := range recipe.Notes {
			n.RecipeID = recipe.ID
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}
		if len(recipe.Steps) > 0 {
			if err := tx.Create(&recipe.Steps).Error; err != nil {
				return err
			}
		}
		if len(recipe.Notes) > 0 {
			if err := tx.Create(&recipe.Notes).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

// CountImageUsers counts the recipes other than excludeID that show
// imageURL.
func (r *recipeRepository) CountImageUsers(ctx context.Context, imageURL string, excludeID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("image_url = ? AND id <> ?", imageURL, excludeID).
		Count(&n).Error
	return n, err
}

// resolveShared points every ingredient line and tag of recipe at its
// shared row, creating the row when the name or title is new.
func resolveShared(tx *gorm.DB, recipe *entities.Recipe) error {
	ingredients := make(map[string]*entities.Ingredient)
	for _, ri := range recipe.Ingredients {
		if ri.Ingredient == nil {
			continue
		}
		name := ri.Ingredient.Name
		ing, ok := ingredients[name]
		if !ok {
			var err error
			ing, err = connectOrCreateIngredient(tx, name)
			if err != nil {
				return err
			}
			ingredients[name] = ing
		}
		ri.IngredientID = ing.ID
		ri.Ingredient = ing
	}

	for i, t := range recipe.Tags {
		tag, err := connectOrCreateTag(tx, t.Title)
		if err != nil {
			return err
		}
		recipe.Tags[i] = tag
	}
	return nil
}

func connectOrCreateIngredient(tx *gorm.DB, name string) (*entities.Ingredient, error) {
	var ing entities.Ingredient
	if err := tx.Where(entities.Ingredient{Name: name}).FirstOrCreate(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func connectOrCreateTag(tx *gorm.DB, title string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := tx.Where(entities.Tag{Title: title}).FirstOrCreate(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
