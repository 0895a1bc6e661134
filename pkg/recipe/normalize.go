package recipe

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"Recipe-Box/domain"
	"Recipe-Box/entities"
	"Recipe-Box/pkg/form"
)

// PayloadFromForm decodes the JSON-text collections of a submitted form.
// Empty collection fields decode to empty lists.
func PayloadFromForm(f domain.RecipeForm) (domain.RecipePayload, error) {
	p := domain.RecipePayload{
		Title:         f.Title,
		Description:   f.Description,
		Servings:      f.Servings,
		ImageURL:      f.ImageURL,
		CookTimeHours: f.CookTimeHours,
		CookTimeMins:  f.CookTimeMins,
		PrepTimeHours: f.PrepTimeHours,
		PrepTimeMins:  f.PrepTimeMins,
	}
	if err := decodeField("ingredients", f.Ingredients, &p.Ingredients); err != nil {
		return domain.RecipePayload{}, err
	}
	if err := decodeField("steps", f.Steps, &p.Steps); err != nil {
		return domain.RecipePayload{}, err
	}
	if err := decodeField("notes", f.Notes, &p.Notes); err != nil {
		return domain.RecipePayload{}, err
	}
	if err := decodeField("tags", f.Tags, &p.Tags); err != nil {
		return domain.RecipePayload{}, err
	}
	return p, nil
}

func decodeField(name, raw string, dst any) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w %q: %v", domain.ErrMalformedFormField, name, err)
	}
	return nil
}

func optionalText(s string) *string {
	s = form.TrimText(s)
	if s == "" {
		return nil
	}
	return &s
}

func invalid(field string, err error) error {
	return domain.NewValidationError(field, err.Error())
}

// buildRecipe validates payload and turns it into an unsaved recipe with
// its child rows. Nothing is returned when any field fails.
func buildRecipe(payload domain.RecipePayload) (*entities.Recipe, error) {
	title := form.TrimText(payload.Title)
	if title == "" {
		return nil, invalid(form.FieldTitle, form.ErrTitleRequired)
	}

	servings, err := form.ParseServings(payload.Servings)
	if err != nil {
		return nil, invalid(form.FieldServings, err)
	}
	cook, err := parseTime(form.FieldCookTimeHours, payload.CookTimeHours, form.FieldCookTimeMins, payload.CookTimeMins)
	if err != nil {
		return nil, err
	}
	prep, err := parseTime(form.FieldPrepTimeHours, payload.PrepTimeHours, form.FieldPrepTimeMins, payload.PrepTimeMins)
	if err != nil {
		return nil, err
	}

	recipe := &entities.Recipe{
		Title:          title,
		Description:    optionalText(payload.Description),
		Servings:       servings,
		ImageURL:       optionalText(payload.ImageURL),
		CookTimeInMins: cook,
		PrepTimeInMins: prep,
	}
	if recipe.ImageURL != nil {
		recipe.ImageKey = optionalText(payload.ImageKey)
	}

	for i, in := range payload.Ingredients {
		name := form.NormalizeIngredientName(in.Ingredient)
		if name == "" {
			return nil, domain.NewValidationError(form.FieldIngredient,
				fmt.Sprintf("item %d: %s", i, form.ErrIngredientNameEmpty))
		}
		quantity, err := form.ParseQuantity(in.Quantity)
		if err != nil {
			return nil, domain.NewValidationError(form.FieldQuantity, fmt.Sprintf("item %d: %s", i, err))
		}
		var unit *string
		if u := form.NormalizeUnit(in.Unit); u != "" {
			unit = &u
		}
		recipe.Ingredients = append(recipe.Ingredients, &entities.RecipeIngredient{
			Quantity:   quantity,
			Unit:       unit,
			Group:      form.NormalizeGroup(in.Group),
			Ingredient: &entities.Ingredient{Name: name},
		})
	}

	for i, content := range form.DedupeTexts(payload.Steps) {
		recipe.Steps = append(recipe.Steps, &entities.Step{Content: content, Order: i})
	}
	for _, content := range form.DedupeTexts(payload.Notes) {
		recipe.Notes = append(recipe.Notes, &entities.Note{Content: content})
	}
	for _, title := range form.DedupeTexts(payload.Tags) {
		recipe.Tags = append(recipe.Tags, &entities.Tag{Title: title})
	}
	return recipe, nil
}

func parseTime(hoursField, hours, minutesField, minutes string) (*int, error) {
	h, err := form.ParseTimePart(hours)
	if err != nil {
		return nil, invalid(hoursField, err)
	}
	m, err := form.ParseTimePart(minutes)
	if err != nil {
		return nil, invalid(minutesField, err)
	}
	total := form.TotalMinutes(h, m)
	if total != nil && *total > form.MaxTotalMinutes {
		return nil, invalid(hoursField, form.ErrTimeInvalid)
	}
	return total, nil
}

func toDuration(minutes *int) *domain.Duration {
	if minutes == nil {
		return nil
	}
	h, m := form.SplitMinutes(*minutes)
	return &domain.Duration{Hours: h, Minutes: m, Readable: form.ReadableMinutes(*minutes)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toRecipe(r *entities.Recipe) domain.Recipe {
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		name := ""
		if ri.Ingredient != nil {
			name = ri.Ingredient.Name
		}
		ingredients = append(ingredients, domain.RecipeIngredientResponse{
			ID:       ri.ID.String(),
			Name:     name,
			Quantity: ri.Quantity,
			Unit:     deref(ri.Unit),
			Group:    ri.Group,
		})
	}
	return domain.Recipe{
		ID:             r.ID.String(),
		Title:          r.Title,
		Description:    deref(r.Description),
		Servings:       r.Servings,
		ImageURL:       deref(r.ImageURL),
		CookTimeInMins: r.CookTimeInMins,
		PrepTimeInMins: r.PrepTimeInMins,
		Ingredients:    ingredients,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toRecipeDetail(r *entities.Recipe) domain.RecipeDetail {
	steps := make([]domain.StepResponse, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, domain.StepResponse{ID: s.ID.String(), Content: s.Content, Order: s.Order})
	}
	slices.SortStableFunc(steps, func(a, b domain.StepResponse) int { return a.Order - b.Order })

	notes := make([]domain.NoteResponse, 0, len(r.Notes))
	for _, n := range r.Notes {
		notes = append(notes, domain.NoteResponse{ID: n.ID.String(), Content: n.Content})
	}
	tags := make([]domain.TagResponse, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, domain.TagResponse{ID: t.ID.String(), Title: t.Title})
	}

	var total *int
	if r.CookTimeInMins != nil || r.PrepTimeInMins != nil {
		sum := 0
		if r.CookTimeInMins != nil {
			sum += *r.CookTimeInMins
		}
		if r.PrepTimeInMins != nil {
			sum += *r.PrepTimeInMins
		}
		total = &sum
	}

	return domain.RecipeDetail{
		Recipe:    toRecipe(r),
		Steps:     steps,
		Notes:     notes,
		Tags:      tags,
		CookTime:  toDuration(r.CookTimeInMins),
		PrepTime:  toDuration(r.PrepTimeInMins),
		TotalTime: toDuration(total),
	}
}
