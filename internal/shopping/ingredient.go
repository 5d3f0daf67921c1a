// Package shopping aggregates ingredients from recipes linked in the meal
// plan into a deduplicated, filterable shopping list.
package shopping

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/outline"
)

// Ingredient is one structured ingredient line. Quantity fields are nil
// when the source line carried none; Description together with
// UnitOfMeasure (case-insensitive description, exact unit) forms the
// merge key.
type Ingredient struct {
	Description      string   `json:"description"`
	Quantity         *float64 `json:"quantity,omitempty"`
	UnitOfMeasure    string   `json:"unit_of_measure,omitempty"`
	AltQuantity      *float64 `json:"alt_quantity,omitempty"`
	AltUnitOfMeasure string   `json:"alt_unit_of_measure,omitempty"`
}

var (
	listPrefixRe    = regexp.MustCompile(`^\s*[-*+]\s+`)
	checkboxRe      = regexp.MustCompile(`^\[[ xX]\]\s+`)
	parentheticalRe = regexp.MustCompile(`\(([^)]*)\)`)
)

// IsGroupHeader reports whether a line is a section header inside an
// ingredient list (e.g. "For the sauce:" or a bold run) rather than an
// ingredient. Group headers are skipped, not errors.
func IsGroupHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = listPrefixRe.ReplaceAllString(trimmed, "")
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") {
		return true
	}
	return strings.HasSuffix(trimmed, ":")
}

// ParseLine turns one source line into a structured ingredient.
//
// The list-item prefix is stripped first; a line without one is
// ErrNoIngredientPrefix and an empty remainder is ErrEmptyIngredientLine.
// In advanced mode a parenthetical segment becomes the alternate
// quantity/unit (parsed through the grammar against a synthetic
// placeholder), the line is truncated at its first comma, and the final
// description is singularized. A grammar that produces nothing from a
// surviving line is ErrIngredientGrammar — never a silent skip.
func ParseLine(line string, g Grammar, advanced bool) (Ingredient, error) {
	if !listPrefixRe.MatchString(line) {
		return Ingredient{}, fmt.Errorf("shopping: %q: %w", line, apperr.ErrNoIngredientPrefix)
	}
	body := listPrefixRe.ReplaceAllString(line, "")
	body = checkboxRe.ReplaceAllString(body, "")
	body = strings.TrimSpace(body)
	if body == "" {
		return Ingredient{}, fmt.Errorf("shopping: %q: %w", line, apperr.ErrEmptyIngredientLine)
	}

	var alt Ingredient
	if advanced {
		if m := parentheticalRe.FindStringSubmatch(body); m != nil {
			if parsed, err := g.Parse("PLACEHOLDER " + strings.TrimSpace(m[1])); err == nil && len(parsed) > 0 {
				alt.AltQuantity = parsed[0].Quantity
				alt.AltUnitOfMeasure = parsed[0].UnitOfMeasure
			}
			body = strings.TrimSpace(parentheticalRe.ReplaceAllString(body, ""))
		}
		if i := strings.Index(body, ","); i >= 0 {
			body = strings.TrimSpace(body[:i])
		}
	}

	parsed, err := g.Parse(body)
	if err != nil || len(parsed) == 0 || strings.TrimSpace(parsed[0].Description) == "" {
		return Ingredient{}, fmt.Errorf("shopping: %q: %w", line, apperr.ErrIngredientGrammar)
	}

	ing := parsed[0]
	ing.AltQuantity = alt.AltQuantity
	ing.AltUnitOfMeasure = alt.AltUnitOfMeasure
	if advanced {
		ing.Description = Singularize(ing.Description)
	}
	return ing, nil
}

// Singularize applies a small plural-stripping rule set to a description.
// It is intentionally shallow: "tomatoes" → "tomato", "berries" →
// "berry", "eggs" → "egg"; words ending in a double 's' are untouched.
func Singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "oes") && len(s) > 3:
		return s[:len(s)-2]
	case strings.HasSuffix(s, "ss"), strings.HasSuffix(s, "us"):
		return s
	case strings.HasSuffix(s, "s") && len(s) > 1:
		return s[:len(s)-1]
	}
	return s
}

// IngredientLines returns the raw list lines of a recipe's ingredients
// section: every list item between the "Ingredients" heading and the
// next heading of the same or shallower level. Deeper headings are group
// headers inside the section and do not end it. A recipe without such a
// section is ErrMissingIngredientSection.
func IngredientLines(doc string, src outline.Source) ([]string, error) {
	headings := src.Headings(doc)
	start, end, level := -1, len(doc), 0
	for _, h := range headings {
		if start >= 0 {
			if h.Level > level {
				continue
			}
			end = h.Start
			break
		}
		if strings.EqualFold(strings.TrimSpace(h.Text), "Ingredients") {
			start = h.End
			level = h.Level
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("shopping: %w", apperr.ErrMissingIngredientSection)
	}

	var out []string
	for _, line := range strings.Split(doc[start:end], "\n") {
		if listPrefixRe.MatchString(line) {
			out = append(out, line)
		}
	}
	return out, nil
}
