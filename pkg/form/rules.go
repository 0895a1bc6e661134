// Package form holds the input normalization rules shared by the recipe
// form builders and the server-side payload parser, so both sides trim,
// fold, dedupe and validate the same way.
package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmpty               = errors.New("value is empty")
	ErrDuplicate           = errors.New("value already in list")
	ErrGroupRequired       = errors.New("group name is required")
	ErrTitleRequired       = errors.New("title is required")
	ErrServingsInvalid     = errors.New("servings must be a number >= 1")
	ErrQuantityInvalid     = errors.New("quantity must be a number greater than 0")
	ErrTimeInvalid         = errors.New("time must be a whole number >= 0")
	ErrUnknownField        = errors.New("unknown field")
	ErrIngredientNameEmpty = errors.New("ingredient name is required")
)

// Field names understood by ValidateField.
const (
	FieldTitle         = "title"
	FieldServings      = "servings"
	FieldQuantity      = "quantity"
	FieldGroupQuantity = "groupQuantity"
	FieldCookTimeHours = "cookTimeHours"
	FieldCookTimeMins  = "cookTimeMins"
	FieldPrepTimeHours = "prepTimeHours"
	FieldPrepTimeMins  = "prepTimeMins"
	FieldDescription   = "description"
	FieldGroup         = "group"
	FieldUnit          = "unit"
	FieldIngredient    = "ingredient"
	FieldStep          = "step"
	FieldNote          = "note"
	FieldTag           = "tag"
)

func TrimText(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeIngredientName trims and case-folds so that "Flour " and
// "flour" resolve to the same shared ingredient row.
func NormalizeIngredientName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func NormalizeUnit(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeGroup returns nil for an absent or blank group label and the
// label unchanged otherwise.
func NormalizeGroup(group *string) *string {
	if group == nil || strings.TrimSpace(*group) == "" {
		return nil
	}
	g := *group
	return &g
}

// DedupeTexts trims every value, drops blanks and keeps the first
// occurrence of each exact match.
func DedupeTexts(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		t := TrimText(v)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseQuantity returns nil for an empty value. Anything else must be a
// number greater than zero.
func ParseQuantity(raw string) (*float64, error) {
	raw = TrimText(raw)
	if raw == "" {
		return nil, nil
	}
	v, ok := parseNumber(raw)
	if !ok || v <= 0 {
		return nil, ErrQuantityInvalid
	}
	return &v, nil
}

// ParseServings returns nil for an empty value. Anything else must be a
// number >= 1.
func ParseServings(raw string) (*float64, error) {
	raw = TrimText(raw)
	if raw == "" {
		return nil, nil
	}
	v, ok := parseNumber(raw)
	if !ok || v < 1 {
		return nil, ErrServingsInvalid
	}
	return &v, nil
}

// ParseTimePart parses one hours or minutes input. Empty means absent.
func ParseTimePart(raw string) (*int, error) {
	raw = TrimText(raw)
	if raw == "" {
		return nil, nil
	}
	v, ok := parseNumber(raw)
	if !ok || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return nil, ErrTimeInvalid
	}
	n := int(v)
	return &n, nil
}

// MaxTotalMinutes is the largest cook or prep total that can be stored.
const MaxTotalMinutes = math.MaxInt32

// TotalMinutes combines an hours and minutes pair. When both are absent
// the total is absent too; otherwise the missing half counts as zero.
func TotalMinutes(hours, minutes *int) *int {
	if hours == nil && minutes == nil {
		return nil
	}
	total := 0
	if hours != nil {
		total += *hours * 60
	}
	if minutes != nil {
		total += *minutes
	}
	return &total
}

// SplitMinutes is the inverse of TotalMinutes, used to prefill edit forms.
func SplitMinutes(total int) (hours, minutes int) {
	return total / 60, total % 60
}

// ReadableMinutes formats minutes as H:MM, e.g. 125 -> "2:05".
func ReadableMinutes(total int) string {
	hours, minutes := SplitMinutes(total)
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// ValidateField applies the single-field rule for a form input. It is the
// check run by the debounced per-field validation.
func ValidateField(field, value string) error {
	switch field {
	case FieldTitle:
		if TrimText(value) == "" {
			return ErrTitleRequired
		}
		return nil
	case FieldServings:
		_, err := ParseServings(value)
		return err
	case FieldQuantity, FieldGroupQuantity:
		_, err := ParseQuantity(value)
		return err
	case FieldCookTimeHours, FieldCookTimeMins, FieldPrepTimeHours, FieldPrepTimeMins:
		_, err := ParseTimePart(value)
		return err
	case FieldDescription, FieldGroup, FieldUnit, FieldIngredient, FieldStep, FieldNote, FieldTag:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}
