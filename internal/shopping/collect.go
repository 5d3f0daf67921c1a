package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/mealplan"
	"github.com/mbracken/skillet/internal/models"
	"github.com/mbracken/skillet/internal/outline"
)

// RecipeSource resolves a plan-note link target to the recipe it names.
// Targets that are not recipes resolve to apperr.ErrNotFound.
type RecipeSource interface {
	Resolve(ctx context.Context, target string) (*models.Recipe, error)
}

// LineError reports one ingredient line that could not be parsed. Parse
// failures are surfaced, never swallowed; the caller decides whether to
// log or abort.
type LineError struct {
	Recipe string
	Line   string
	Err    error
}

func (e LineError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Recipe, e.Line, e.Err)
}

// Aggregator collects ingredients from the recipes linked inside week
// windows of the plan note. The zero value is not usable; construct with
// NewAggregator.
type Aggregator struct {
	recipes  RecipeSource
	grammar  Grammar
	rules    RuleSet
	template string
	advanced bool
}

// NewAggregator builds an aggregator from compiled ignore rules and the
// configured template and parsing mode.
func NewAggregator(recipes RecipeSource, grammar Grammar, rules RuleSet, template string, advanced bool) *Aggregator {
	if template == "" {
		template = DefaultTemplate
	}
	return &Aggregator{
		recipes:  recipes,
		grammar:  grammar,
		rules:    rules,
		template: template,
		advanced: advanced,
	}
}

// CollectWindow gathers, merges, and filters the ingredients of every
// recipe linked within one week's byte range. A link that resolves to no
// recipe is skipped (the plan may link regular notes); every other
// resolution failure aborts. Merging happens inside this window only.
func (a *Aggregator) CollectWindow(ctx context.Context, doc string, src outline.Source, w mealplan.Week) ([]Ingredient, []LineError, error) {
	var collected []Ingredient
	var lineErrs []LineError

	for _, link := range src.Links(doc) {
		if link.Start < w.Start || link.Start >= w.End {
			continue
		}
		recipe, err := a.recipes.Resolve(ctx, link.Target)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return nil, nil, fmt.Errorf("shopping: resolve %q: %w", link.Target, err)
		}
		for _, line := range recipe.Ingredients {
			if IsGroupHeader(line) {
				continue
			}
			ing, err := ParseLine(line, a.grammar, a.advanced)
			if err != nil {
				lineErrs = append(lineErrs, LineError{Recipe: recipe.Title, Line: line, Err: err})
				continue
			}
			collected = append(collected, ing)
		}
	}

	return Filter(Merge(collected), a.rules), lineErrs, nil
}

// RenderWeeks renders the shopping list for the given weeks. A single
// week yields a flat checklist; multiple weeks are kept in their own
// blocks under "## Week of <label>" headers, deduplicated within each
// block only — merging never crosses a week boundary.
func (a *Aggregator) RenderWeeks(ctx context.Context, doc string, src outline.Source, weeks []mealplan.Week) (string, []LineError, error) {
	var b strings.Builder
	var allErrs []LineError

	for i, w := range weeks {
		ingredients, lineErrs, err := a.CollectWindow(ctx, doc, src, w)
		if err != nil {
			return "", nil, err
		}
		allErrs = append(allErrs, lineErrs...)

		if len(weeks) > 1 {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("## Week of ")
			b.WriteString(w.Label)
			b.WriteByte('\n')
		}
		for _, ing := range ingredients {
			b.WriteString(ChecklistLine(ing, a.template))
			b.WriteByte('\n')
		}
	}

	return b.String(), allErrs, nil
}
