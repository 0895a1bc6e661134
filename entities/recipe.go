// File: entities/recipe.go
package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe.ImageKey is set only when the image was uploaded together with the
// recipe. Only such objects are removed when the recipe lets go of them.
type Recipe struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string    `gorm:"not null" json:"title"`
	Description    *string   `json:"description,omitempty"`
	Servings       *float64  `json:"servings,omitempty"`
	ImageURL       *string   `json:"image_url,omitempty"`
	ImageKey       *string   `json:"-"`
	CookTimeInMins *int      `json:"cook_time_in_mins,omitempty"`
	PrepTimeInMins *int      `json:"prep_time_in_mins,omitempty"`

	User        *User               `gorm:"foreignKey:UserID" json:"-"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Steps       []*Step             `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps"`
	Notes       []*Note             `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"notes"`
	Tags        []*Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Timestamp
}

// Ingredient rows are shared between recipes and keyed by name.
type Ingredient struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null" json:"ingredient_id"`
	Quantity     *float64  `json:"quantity,omitempty"`
	Unit         *string   `json:"unit,omitempty"`
	Group        *string   `gorm:"column:ingredient_group" json:"group,omitempty"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

type Step struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Order    int       `gorm:"column:position;not null" json:"order"`
}

type Note struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
}

// Tag rows are shared between recipes and keyed by title.
type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title string    `gorm:"uniqueIndex;not null" json:"title"`
}

func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (i *Ingredient) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (ri *RecipeIngredient) BeforeCreate(_ *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

func (s *Step) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (n *Note) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (t *Tag) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
