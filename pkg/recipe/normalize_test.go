package recipe

import (
	"testing"

	"Recipe-Box/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadFromForm(t *testing.T) {
	f := domain.RecipeForm{
		Title:        "Pancakes",
		Servings:     "4",
		CookTimeMins: "15",
		Ingredients:  `[{"ingredient":"flour","quantity":"2","unit":"cup"},{"ingredient":"syrup","quantity":"","unit":"","group":"Topping"}]`,
		Steps:        `["Mix","Cook"]`,
		Tags:         `["breakfast"]`,
	}

	p, err := PayloadFromForm(f)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", p.Title)
	assert.Equal(t, "15", p.CookTimeMins)
	require.Len(t, p.Ingredients, 2)
	assert.Nil(t, p.Ingredients[0].Group)
	require.NotNil(t, p.Ingredients[1].Group)
	assert.Equal(t, "Topping", *p.Ingredients[1].Group)
	assert.Equal(t, []string{"Mix", "Cook"}, p.Steps)
	assert.Empty(t, p.Notes)
	assert.Equal(t, []string{"breakfast"}, p.Tags)
}

func TestPayloadFromForm_Malformed(t *testing.T) {
	_, err := PayloadFromForm(domain.RecipeForm{Title: "x", Steps: `["unterminated`})
	require.ErrorIs(t, err, domain.ErrMalformedFormField)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "steps")

	_, err = PayloadFromForm(domain.RecipeForm{Title: "x", Ingredients: `{"ingredient":"flour"}`})
	assert.ErrorIs(t, err, domain.ErrMalformedFormField)
}

func TestBuildRecipe_TimePolicy(t *testing.T) {
	r, err := buildRecipe(domain.RecipePayload{Title: "Tea", PrepTimeMins: "5"})
	require.NoError(t, err)
	assert.Nil(t, r.CookTimeInMins)
	require.NotNil(t, r.PrepTimeInMins)
	assert.Equal(t, 5, *r.PrepTimeInMins)

	r, err = buildRecipe(domain.RecipePayload{Title: "Stew", CookTimeHours: "3"})
	require.NoError(t, err)
	require.NotNil(t, r.CookTimeInMins)
	assert.Equal(t, 180, *r.CookTimeInMins)
}

func TestBuildRecipe_OptionalText(t *testing.T) {
	r, err := buildRecipe(domain.RecipePayload{Title: "Tea", Description: "  ", ImageURL: " http://x/a.png "})
	require.NoError(t, err)
	assert.Nil(t, r.Description)
	require.NotNil(t, r.ImageURL)
	assert.Equal(t, "http://x/a.png", *r.ImageURL)
}

func TestBuildRecipe_TotalFitsColumn(t *testing.T) {
	r, err := buildRecipe(domain.RecipePayload{Title: "Ham", PrepTimeHours: "35791394", PrepTimeMins: "7"})
	require.NoError(t, err)
	require.NotNil(t, r.PrepTimeInMins)
	assert.Equal(t, 2147483647, *r.PrepTimeInMins)

	_, err = buildRecipe(domain.RecipePayload{Title: "Ham", PrepTimeHours: "35791394", PrepTimeMins: "8"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "prepTimeHours", verr.Field)
}

func TestBuildRecipe_ImageKeyNeedsLink(t *testing.T) {
	r, err := buildRecipe(domain.RecipePayload{Title: "Tea", ImageURL: "http://img/recipes/a.png", ImageKey: "recipes/a.png"})
	require.NoError(t, err)
	require.NotNil(t, r.ImageKey)
	assert.Equal(t, "recipes/a.png", *r.ImageKey)

	r, err = buildRecipe(domain.RecipePayload{Title: "Tea", ImageKey: "recipes/a.png"})
	require.NoError(t, err)
	assert.Nil(t, r.ImageKey)
}
