package form

import (
	"encoding/json"
	"fmt"
	"net/url"

	"Recipe-Box/domain"
)

// IDGenerator hands out sequential list ids like "ing-1", "ing-2". The
// ids only key list entries for rendering and removal; they are never
// submitted.
type IDGenerator struct {
	prefix string
	n      int
}

func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

func (g *IDGenerator) Next() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

type Entry struct {
	ID    string
	Value string
}

// TextList is the incremental builder behind the steps, notes and tags
// inputs. Insertion order is kept.
type TextList struct {
	ids     *IDGenerator
	entries []Entry
}

func NewTextList(prefix string) *TextList {
	return &TextList{ids: NewIDGenerator(prefix)}
}

// Add trims raw and appends it unless it is blank or already present.
func (l *TextList) Add(raw string) (Entry, error) {
	value := TrimText(raw)
	if value == "" {
		return Entry{}, ErrEmpty
	}
	for _, e := range l.entries {
		if e.Value == value {
			return Entry{}, ErrDuplicate
		}
	}
	e := Entry{ID: l.ids.Next(), Value: value}
	l.entries = append(l.entries, e)
	return e, nil
}

func (l *TextList) Remove(id string) bool {
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *TextList) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *TextList) Values() []string {
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Value)
	}
	return out
}

func (l *TextList) Len() int { return len(l.entries) }

type IngredientEntry struct {
	ID string
	domain.IngredientInput
}

type IngredientGroup struct {
	Name  string
	Items []IngredientEntry
}

// IngredientList builds the ingredient lines of a recipe, grouped or not.
type IngredientList struct {
	ids     *IDGenerator
	entries []IngredientEntry
}

func NewIngredientList() *IngredientList {
	return &IngredientList{ids: NewIDGenerator("id")}
}

// Add appends an ungrouped ingredient.
func (l *IngredientList) Add(name, quantity, unit string) (IngredientEntry, error) {
	return l.add(nil, name, quantity, unit)
}

// AddGrouped appends an ingredient under group. The label must not be
// blank and is attached as typed.
func (l *IngredientList) AddGrouped(group, name, quantity, unit string) (IngredientEntry, error) {
	if TrimText(group) == "" {
		return IngredientEntry{}, ErrGroupRequired
	}
	return l.add(&group, name, quantity, unit)
}

func (l *IngredientList) add(group *string, name, quantity, unit string) (IngredientEntry, error) {
	name = NormalizeIngredientName(name)
	if name == "" {
		return IngredientEntry{}, ErrIngredientNameEmpty
	}
	quantity = TrimText(quantity)
	if _, err := ParseQuantity(quantity); err != nil {
		return IngredientEntry{}, err
	}
	e := IngredientEntry{
		ID: l.ids.Next(),
		IngredientInput: domain.IngredientInput{
			Ingredient: name,
			Quantity:   quantity,
			Unit:       NormalizeUnit(unit),
			Group:      group,
		},
	}
	l.entries = append(l.entries, e)
	return e, nil
}

func (l *IngredientList) Remove(id string) bool {
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *IngredientList) Len() int { return len(l.entries) }

// Ungrouped returns the ingredients without a group label.
func (l *IngredientList) Ungrouped() []IngredientEntry {
	var out []IngredientEntry
	for _, e := range l.entries {
		if e.Group == nil {
			out = append(out, e)
		}
	}
	return out
}

// Groups partitions grouped ingredients by label, in order of first use.
func (l *IngredientList) Groups() []IngredientGroup {
	var groups []IngredientGroup
	index := make(map[string]int)
	for _, e := range l.entries {
		if e.Group == nil {
			continue
		}
		i, ok := index[*e.Group]
		if !ok {
			i = len(groups)
			index[*e.Group] = i
			groups = append(groups, IngredientGroup{Name: *e.Group})
		}
		groups[i].Items = append(groups[i].Items, e)
	}
	return groups
}

func (l *IngredientList) Inputs() []domain.IngredientInput {
	out := make([]domain.IngredientInput, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.IngredientInput)
	}
	return out
}

// RecipeDraft is the in-progress state of a create or edit form.
type RecipeDraft struct {
	Title         string
	Description   string
	Servings      string
	ImageURL      string
	CookTimeHours string
	CookTimeMins  string
	PrepTimeHours string
	PrepTimeMins  string

	Ingredients *IngredientList
	Steps       *TextList
	Notes       *TextList
	Tags        *TextList
}

func NewRecipeDraft() *RecipeDraft {
	return &RecipeDraft{
		Servings:    "1",
		Ingredients: NewIngredientList(),
		Steps:       NewTextList("step"),
		Notes:       NewTextList("note"),
		Tags:        NewTextList("tag"),
	}
}

// DraftFromRecipe prefills a draft from a stored recipe for editing.
func DraftFromRecipe(r domain.RecipeDetail) *RecipeDraft {
	d := NewRecipeDraft()
	d.Title = r.Title
	d.Description = r.Description
	d.ImageURL = r.ImageURL
	d.Servings = ""
	if r.Servings != nil {
		d.Servings = fmt.Sprintf("%g", *r.Servings)
	}
	if r.CookTimeInMins != nil {
		h, m := SplitMinutes(*r.CookTimeInMins)
		d.CookTimeHours, d.CookTimeMins = fmt.Sprint(h), fmt.Sprint(m)
	}
	if r.PrepTimeInMins != nil {
		h, m := SplitMinutes(*r.PrepTimeInMins)
		d.PrepTimeHours, d.PrepTimeMins = fmt.Sprint(h), fmt.Sprint(m)
	}
	for _, ing := range r.Ingredients {
		quantity := ""
		if ing.Quantity != nil {
			quantity = fmt.Sprintf("%g", *ing.Quantity)
		}
		if ing.Group != nil {
			_, _ = d.Ingredients.AddGrouped(*ing.Group, ing.Name, quantity, ing.Unit)
		} else {
			_, _ = d.Ingredients.Add(ing.Name, quantity, ing.Unit)
		}
	}
	for _, s := range r.Steps {
		_, _ = d.Steps.Add(s.Content)
	}
	for _, n := range r.Notes {
		_, _ = d.Notes.Add(n.Content)
	}
	for _, t := range r.Tags {
		_, _ = d.Tags.Add(t.Title)
	}
	return d
}

// Validate runs every single-field rule and returns the failures by field.
func (d *RecipeDraft) Validate() map[string]error {
	fields := map[string]string{
		FieldTitle:         d.Title,
		FieldServings:      d.Servings,
		FieldCookTimeHours: d.CookTimeHours,
		FieldCookTimeMins:  d.CookTimeMins,
		FieldPrepTimeHours: d.PrepTimeHours,
		FieldPrepTimeMins:  d.PrepTimeMins,
	}
	errs := make(map[string]error)
	for field, value := range fields {
		if err := ValidateField(field, value); err != nil {
			errs[field] = err
		}
	}
	return errs
}

func (d *RecipeDraft) Payload() domain.RecipePayload {
	return domain.RecipePayload{
		Title:         d.Title,
		Description:   d.Description,
		Servings:      d.Servings,
		ImageURL:      d.ImageURL,
		CookTimeHours: d.CookTimeHours,
		CookTimeMins:  d.CookTimeMins,
		PrepTimeHours: d.PrepTimeHours,
		PrepTimeMins:  d.PrepTimeMins,
		Ingredients:   d.Ingredients.Inputs(),
		Steps:         d.Steps.Values(),
		Notes:         d.Notes.Values(),
		Tags:          d.Tags.Values(),
	}
}

// Encode serializes the draft as a form submission, with the nested
// collections as JSON text.
func (d *RecipeDraft) Encode() (url.Values, error) {
	p := d.Payload()
	v := url.Values{}
	v.Set("title", p.Title)
	v.Set("description", p.Description)
	v.Set("servings", p.Servings)
	v.Set("image_url", p.ImageURL)
	v.Set("cookTimeHours", p.CookTimeHours)
	v.Set("cookTimeMins", p.CookTimeMins)
	v.Set("prepTimeHours", p.PrepTimeHours)
	v.Set("prepTimeMins", p.PrepTimeMins)

	nested := map[string]any{
		"ingredients": p.Ingredients,
		"steps":       p.Steps,
		"notes":       p.Notes,
		"tags":        p.Tags,
	}
	for key, value := range nested {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		v.Set(key, string(raw))
	}
	return v, nil
}
