package shopping

import (
	"errors"
	"testing"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/outline"
)

func TestParseLine_Basic(t *testing.T) {
	ing, err := ParseLine("- 2 cups flour", DefaultGrammar{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ing.Description != "flour" {
		t.Errorf("description = %q", ing.Description)
	}
	if ing.Quantity == nil || *ing.Quantity != 2 {
		t.Errorf("quantity = %v", ing.Quantity)
	}
	if ing.UnitOfMeasure != "cup" {
		t.Errorf("unit = %q", ing.UnitOfMeasure)
	}
}

func TestParseLine_NoPrefix(t *testing.T) {
	_, err := ParseLine("2 cups flour", DefaultGrammar{}, false)
	if !errors.Is(err, apperr.ErrNoIngredientPrefix) {
		t.Fatalf("err = %v, want ErrNoIngredientPrefix", err)
	}
}

func TestParseLine_EmptyLine(t *testing.T) {
	_, err := ParseLine("-   ", DefaultGrammar{}, false)
	if !errors.Is(err, apperr.ErrEmptyIngredientLine) {
		t.Fatalf("err = %v, want ErrEmptyIngredientLine", err)
	}
}

func TestParseLine_ChecklistPrefixStripped(t *testing.T) {
	ing, err := ParseLine("- [ ] 3 eggs", DefaultGrammar{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ing.Description != "eggs" || ing.Quantity == nil || *ing.Quantity != 3 {
		t.Errorf("ingredient = %+v", ing)
	}
}

func TestParseLine_AdvancedParenthetical(t *testing.T) {
	ing, err := ParseLine("- 1 cup chickpeas (250 g), drained and rinsed", DefaultGrammar{}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ing.Description != "chickpea" {
		t.Errorf("description = %q, want singularized %q", ing.Description, "chickpea")
	}
	if ing.Quantity == nil || *ing.Quantity != 1 || ing.UnitOfMeasure != "cup" {
		t.Errorf("quantity = %v %q", ing.Quantity, ing.UnitOfMeasure)
	}
	if ing.AltQuantity == nil || *ing.AltQuantity != 250 || ing.AltUnitOfMeasure != "g" {
		t.Errorf("alt = %v %q", ing.AltQuantity, ing.AltUnitOfMeasure)
	}
}

func TestParseLine_AdvancedCommaTruncation(t *testing.T) {
	ing, err := ParseLine("- 2 carrots, finely diced", DefaultGrammar{}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ing.Description != "carrot" {
		t.Errorf("description = %q", ing.Description)
	}
}

func TestParseLine_GrammarFailureSurfaced(t *testing.T) {
	// A quantity with nothing behind it leaves no description.
	_, err := ParseLine("- 42", DefaultGrammar{}, false)
	if !errors.Is(err, apperr.ErrIngredientGrammar) {
		t.Fatalf("err = %v, want ErrIngredientGrammar", err)
	}
}

func TestIsGroupHeader(t *testing.T) {
	cases := map[string]bool{
		"- For the sauce:":  true,
		"- **Toppings**":    true,
		"### Base":          true,
		"- 2 cups flour":    false,
		"- salt and pepper": false,
	}
	for line, want := range cases {
		if got := IsGroupHeader(line); got != want {
			t.Errorf("IsGroupHeader(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestSingularize(t *testing.T) {
	cases := map[string]string{
		"tomatoes": "tomato",
		"berries":  "berry",
		"eggs":     "egg",
		"molasses": "molasses",
		"flour":    "flour",
		"couscous": "couscous",
	}
	for in, want := range cases {
		if got := Singularize(in); got != want {
			t.Errorf("Singularize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIngredientLines(t *testing.T) {
	doc := "# Minestrone\n\n## Ingredients\n- 2 carrots\n- 1 onion\n\nnot a list line\n## Steps\n- chop everything\n"
	lines, err := IngredientLines(doc, outline.Scanner{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "- 2 carrots" || lines[1] != "- 1 onion" {
		t.Errorf("lines = %q", lines)
	}
}

func TestIngredientLines_GroupSubheadingsKept(t *testing.T) {
	doc := "# Pizza\n\n## Ingredients\n- 1 cup flour\n### Toppings\n- 2 cups cheese\n## Steps\n- bake\n"
	lines, err := IngredientLines(doc, outline.Scanner{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "- 1 cup flour" || lines[1] != "- 2 cups cheese" {
		t.Errorf("lines = %q, want both sides of the subheading", lines)
	}
}

func TestIngredientLines_MissingSection(t *testing.T) {
	_, err := IngredientLines("# Minestrone\n## Steps\n- chop\n", outline.Scanner{})
	if !errors.Is(err, apperr.ErrMissingIngredientSection) {
		t.Fatalf("err = %v, want ErrMissingIngredientSection", err)
	}
}
