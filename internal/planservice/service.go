// Package planservice coordinates the vault, the recipe catalog, and the
// plan-note engine behind the API and MCP surfaces.
package planservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/index"
	"github.com/mbracken/skillet/internal/mealplan"
	"github.com/mbracken/skillet/internal/models"
	"github.com/mbracken/skillet/internal/outline"
	"github.com/mbracken/skillet/internal/shopping"
	"github.com/mbracken/skillet/internal/storage"
)

// Options carries the plan-note and shopping-list settings the service
// operates under. Rules must already be compiled; invalid patterns are a
// startup error, not a per-request one.
type Options struct {
	PlanNote        string
	ShoppingNote    string
	WeekStart       time.Weekday
	WeeksToShow     int
	AdvancedParsing bool
	Template        string
	Rules           shopping.RuleSet
}

// Service coordinates storage, catalog, and plan-note operations.
type Service struct {
	store storage.Provider
	db    *index.DB
	src   outline.Source
	agg   *shopping.Aggregator
	opts  Options

	// now is swappable so tests can pin the current week.
	now func() time.Time
}

// NewService creates a plan service over the given vault and catalog.
func NewService(store storage.Provider, db *index.DB, opts Options) *Service {
	if opts.WeeksToShow <= 0 {
		opts.WeeksToShow = mealplan.DefaultWeeksToShow
	}
	s := &Service{
		store: store,
		db:    db,
		src:   &outline.Scanner{},
		opts:  opts,
		now:   time.Now,
	}
	s.agg = shopping.NewAggregator(catalogSource{db}, shopping.DefaultGrammar{}, opts.Rules, opts.Template, opts.AdvancedParsing)
	return s
}

// catalogSource adapts the recipe catalog to the link resolver the
// shopping aggregator expects.
type catalogSource struct {
	db *index.DB
}

func (c catalogSource) Resolve(_ context.Context, target string) (*models.Recipe, error) {
	row, err := c.db.Resolve(target)
	if err != nil {
		return nil, err
	}
	return &models.Recipe{
		Path:        row.Path,
		Title:       row.Title,
		Tags:        row.Tags,
		Ingredients: row.Ingredients,
		Checksum:    row.Checksum,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// readPlan loads the plan note. A missing note maps to ErrNotFound.
func (s *Service) readPlan() (string, error) {
	data, err := s.store.Read(s.opts.PlanNote)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Weeks returns the current and future weeks of the plan note, oldest
// first. A missing plan note yields no weeks.
func (s *Service) Weeks(_ context.Context) ([]mealplan.Week, error) {
	doc, err := s.readPlan()
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mealplan.ExtractWeeks(doc, s.src, s.opts.WeekStart, s.now())
}

// Calendar builds the grid projection for the month containing ref. A
// missing plan note still yields a full grid of empty days.
func (s *Service) Calendar(_ context.Context, ref time.Time) (mealplan.Calendar, error) {
	items := map[string][]mealplan.Item{}

	doc, err := s.readPlan()
	if err == nil {
		weeks, werr := mealplan.ExtractWeeks(doc, s.src, s.opts.WeekStart, s.now())
		if werr != nil {
			return mealplan.Calendar{}, werr
		}
		items, err = mealplan.ExtractDailyItems(doc, s.src, weeks, s.opts.WeekStart)
		if err != nil {
			return mealplan.Calendar{}, err
		}
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return mealplan.Calendar{}, err
	}

	return mealplan.BuildCalendar(ref, s.opts.WeekStart, items, s.opts.WeeksToShow), nil
}

// AddMeal schedules a meal on the named day of the current week,
// scaffolding the plan note and the week section when absent. The
// read-modify-write is not serialized against concurrent editors; the
// vault is single-user and last write wins, the same as editing the note
// by hand.
func (s *Service) AddMeal(_ context.Context, day, name string) error {
	if _, ok := mealplan.DayNameIndex(day); !ok {
		return fmt.Errorf("planservice: unknown day %q: %w", day, apperr.ErrValidation)
	}
	if name == "" {
		return fmt.Errorf("planservice: empty meal name: %w", apperr.ErrValidation)
	}

	doc, err := s.readPlan()
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	now := s.now()
	doc, err = mealplan.EnsureWeekSection(doc, s.opts.WeekStart, now)
	if err != nil {
		return err
	}
	weeks, err := mealplan.ExtractWeeks(doc, s.src, s.opts.WeekStart, now)
	if err != nil {
		return err
	}
	var current *mealplan.Week
	for i := range weeks {
		if weeks[i].Selected {
			current = &weeks[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("planservice: current week section missing after scaffold: %w", apperr.ErrNotFound)
	}

	doc, err = mealplan.InsertEntry(doc, s.src, *current, day, name)
	if err != nil {
		return err
	}
	return s.store.Write(s.opts.PlanNote, []byte(doc))
}

// ShoppingList aggregates the ingredients of the weeks named by labels
// (all current/future weeks when labels is empty), writes the result to
// the shopping note, and returns the rendered text. Ingredient lines
// that fail to parse are reported alongside, never silently dropped.
func (s *Service) ShoppingList(ctx context.Context, labels []string) (string, []shopping.LineError, error) {
	doc, err := s.readPlan()
	if err != nil {
		return "", nil, err
	}
	weeks, err := mealplan.ExtractWeeks(doc, s.src, s.opts.WeekStart, s.now())
	if err != nil {
		return "", nil, err
	}

	selected := weeks
	if len(labels) > 0 {
		byLabel := make(map[string]mealplan.Week, len(weeks))
		for _, w := range weeks {
			byLabel[w.Label] = w
		}
		selected = selected[:0:0]
		for _, l := range labels {
			w, ok := byLabel[l]
			if !ok {
				return "", nil, fmt.Errorf("planservice: no week %q in plan: %w", l, apperr.ErrNotFound)
			}
			selected = append(selected, w)
		}
	}
	if len(selected) == 0 {
		return "", nil, fmt.Errorf("planservice: plan has no weeks to shop for: %w", apperr.ErrNotFound)
	}

	out, lineErrs, err := s.agg.RenderWeeks(ctx, doc, s.src, selected)
	if err != nil {
		return "", nil, err
	}
	if err := s.store.Write(s.opts.ShoppingNote, []byte(out)); err != nil {
		return "", nil, err
	}
	return out, lineErrs, nil
}

// OpenPlanNote returns the plan note path, creating a scaffolded note
// with the current week when none exists. created reports whether the
// note was just written.
func (s *Service) OpenPlanNote(_ context.Context) (path string, created bool, err error) {
	if s.store.Exists(s.opts.PlanNote) {
		return s.opts.PlanNote, false, nil
	}
	doc, err := mealplan.EnsureWeekSection("", s.opts.WeekStart, s.now())
	if err != nil {
		return "", false, err
	}
	if err := s.store.Create(s.opts.PlanNote, []byte(doc)); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return s.opts.PlanNote, false, nil
		}
		return "", false, err
	}
	return s.opts.PlanNote, true, nil
}

// ShoppingNotePath returns the vault path the shopping list is written to.
func (s *Service) ShoppingNotePath() string {
	return s.opts.ShoppingNote
}

// ReadNote returns the raw content of any vault note.
func (s *Service) ReadNote(_ context.Context, path string) (string, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}
