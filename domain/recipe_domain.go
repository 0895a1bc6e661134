package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "successfully created recipe"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "could not create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound     = fmt.Errorf("recipe %w", ErrNotFound)
	ErrInvalidRecipeID    = fmt.Errorf("%w: recipe id must be a valid identifier", ErrInvalidArgument)
	ErrMalformedFormField = fmt.Errorf("%w: malformed form field", ErrInvalidArgument)
)

type (
	// IngredientInput is one ingredient line as submitted by the form.
	// A nil Group means the ingredient is ungrouped.
	IngredientInput struct {
		Ingredient string  `json:"ingredient"`
		Quantity   string  `json:"quantity"`
		Unit       string  `json:"unit"`
		Group      *string `json:"group,omitempty"`
	}

	// RecipePayload carries raw, unnormalized form values. The service
	// parses and validates every field itself.
	RecipePayload struct {
		Title         string
		Description   string
		Servings      string
		ImageURL      string
		CookTimeHours string
		CookTimeMins  string
		PrepTimeHours string
		PrepTimeMins  string
		Ingredients   []IngredientInput
		Steps         []string
		Notes         []string
		Tags          []string

		// ImageKey is the storage key of an image uploaded together with
		// this request. It is never read from the submitted form.
		ImageKey string
	}

	// RecipeForm is the wire shape of create/update requests. Nested
	// collections arrive as JSON text.
	RecipeForm struct {
		Title         string `json:"title" form:"title" validate:"max=200"`
		Description   string `json:"description" form:"description" validate:"max=5000"`
		Servings      string `json:"servings" form:"servings"`
		ImageURL      string `json:"image_url" form:"image_url" validate:"omitempty,max=2048"`
		CookTimeHours string `json:"cookTimeHours" form:"cookTimeHours"`
		CookTimeMins  string `json:"cookTimeMins" form:"cookTimeMins"`
		PrepTimeHours string `json:"prepTimeHours" form:"prepTimeHours"`
		PrepTimeMins  string `json:"prepTimeMins" form:"prepTimeMins"`
		Ingredients   string `json:"ingredients" form:"ingredients"`
		Steps         string `json:"steps" form:"steps"`
		Notes         string `json:"notes" form:"notes"`
		Tags          string `json:"tags" form:"tags"`
	}

	RecipeIngredientResponse struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Quantity *float64 `json:"quantity,omitempty"`
		Unit     string   `json:"unit,omitempty"`
		Group    *string  `json:"group,omitempty"`
	}

	StepResponse struct {
		ID      string `json:"id"`
		Content string `json:"content"`
		Order   int    `json:"order"`
	}

	NoteResponse struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	Duration struct {
		Hours    int    `json:"hours"`
		Minutes  int    `json:"minutes"`
		Readable string `json:"readable"`
	}

	Recipe struct {
		ID             string                     `json:"id"`
		Title          string                     `json:"title"`
		Description    string                     `json:"description,omitempty"`
		Servings       *float64                   `json:"servings,omitempty"`
		ImageURL       string                     `json:"image_url,omitempty"`
		CookTimeInMins *int                       `json:"cook_time_in_mins"`
		PrepTimeInMins *int                       `json:"prep_time_in_mins"`
		Ingredients    []RecipeIngredientResponse `json:"ingredients"`
		CreatedAt      time.Time                  `json:"created_at"`
		UpdatedAt      time.Time                  `json:"updated_at"`
	}

	RecipeDetail struct {
		Recipe
		Steps     []StepResponse `json:"steps"`
		Notes     []NoteResponse `json:"notes"`
		Tags      []TagResponse  `json:"tags"`
		CookTime  *Duration      `json:"cook_time,omitempty"`
		PrepTime  *Duration      `json:"prep_time,omitempty"`
		TotalTime *Duration      `json:"total_time,omitempty"`
	}

	RecipeListResponse struct {
		Recipes []Recipe `json:"recipes"`
		Total   int      `json:"total"`
	}
)
