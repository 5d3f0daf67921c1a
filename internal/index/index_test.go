package index_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/index"
	"github.com/mbracken/skillet/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestUpsertAndGetRecipe(t *testing.T) {
	db := testutil.TestDB(t)

	row := index.RecipeRow{
		Path:        "Recipes/Pasta Carbonara.md",
		Title:       "Pasta Carbonara",
		Checksum:    "abc",
		Tags:        []string{"dinner", "italian"},
		Ingredients: []string{"- 200 g spaghetti", "- 2 eggs"},
	}
	if err := db.UpsertRecipe(row, "body text"); err != nil {
		t.Fatalf("UpsertRecipe() error = %v", err)
	}

	got, err := db.GetRecipe(row.Path)
	if err != nil {
		t.Fatalf("GetRecipe() error = %v", err)
	}
	if got.Title != "Pasta Carbonara" {
		t.Errorf("Title = %q, want %q", got.Title, "Pasta Carbonara")
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0] != "- 200 g spaghetti" {
		t.Errorf("Ingredients = %v", got.Ingredients)
	}
	if len(got.Tags) != 2 || got.Tags[1] != "italian" {
		t.Errorf("Tags = %v", got.Tags)
	}

	// Upsert with a new checksum replaces the entry.
	row.Checksum = "def"
	if err := db.UpsertRecipe(row, "new body"); err != nil {
		t.Fatalf("UpsertRecipe() second error = %v", err)
	}
	sum, err := db.GetChecksum(row.Path)
	if err != nil {
		t.Fatalf("GetChecksum() error = %v", err)
	}
	if sum != "def" {
		t.Errorf("checksum = %q, want %q", sum, "def")
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	db := testutil.TestDB(t)
	if _, err := db.GetRecipe("missing.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetRecipe() error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetChecksum("missing.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetChecksum() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteRecipe(t *testing.T) {
	db := testutil.TestDB(t)
	if err := db.UpsertRecipe(index.RecipeRow{Path: "Recipes/Soup.md", Title: "Soup"}, ""); err != nil {
		t.Fatalf("UpsertRecipe() error = %v", err)
	}
	if err := db.DeleteRecipe("Recipes/Soup.md"); err != nil {
		t.Fatalf("DeleteRecipe() error = %v", err)
	}
	if _, err := db.GetRecipe("Recipes/Soup.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetRecipe() after delete error = %v, want ErrNotFound", err)
	}
	// Deleting again is a no-op.
	if err := db.DeleteRecipe("Recipes/Soup.md"); err != nil {
		t.Errorf("DeleteRecipe() repeat error = %v", err)
	}
}

func TestResolve(t *testing.T) {
	db := testutil.TestDB(t)
	rows := []index.RecipeRow{
		{Path: "Recipes/Pasta Carbonara.md", Title: "Pasta Carbonara"},
		{Path: "Recipes/Curries/Chicken Tikka Masala.md", Title: "Chicken Tikka Masala"},
	}
	for _, r := range rows {
		if err := db.UpsertRecipe(r, ""); err != nil {
			t.Fatalf("UpsertRecipe(%s) error = %v", r.Path, err)
		}
	}

	tests := []struct {
		target string
		want   string
	}{
		{"Recipes/Pasta Carbonara.md", "Recipes/Pasta Carbonara.md"},
		{"Recipes/Pasta Carbonara", "Recipes/Pasta Carbonara.md"},
		{"Pasta Carbonara", "Recipes/Pasta Carbonara.md"},
		{"pasta carbonara", "Recipes/Pasta Carbonara.md"},
		{"Chicken Tikka Masala", "Recipes/Curries/Chicken Tikka Masala.md"},
	}
	for _, tt := range tests {
		got, err := db.Resolve(tt.target)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", tt.target, err)
			continue
		}
		if got.Path != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.target, got.Path, tt.want)
		}
	}

	if _, err := db.Resolve("Beef Wellington"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Resolve(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := db.Resolve("  "); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Resolve(blank) error = %v, want ErrNotFound", err)
	}
}

func TestListRecipes(t *testing.T) {
	db := testutil.TestDB(t)
	rows := []index.RecipeRow{
		{Path: "Recipes/Zucchini Bake.md", Title: "Zucchini Bake", Tags: []string{"vegetarian"}},
		{Path: "Recipes/Apple Pie.md", Title: "Apple Pie", Tags: []string{"dessert"}},
		{Path: "Recipes/Miso Soup.md", Title: "Miso Soup", Tags: []string{"vegetarian", "soup"}},
	}
	for _, r := range rows {
		if err := db.UpsertRecipe(r, ""); err != nil {
			t.Fatalf("UpsertRecipe(%s) error = %v", r.Path, err)
		}
	}

	got, total, err := db.ListRecipes(10, 0, "")
	if err != nil {
		t.Fatalf("ListRecipes() error = %v", err)
	}
	if total != 3 || len(got) != 3 {
		t.Fatalf("ListRecipes() total = %d, len = %d, want 3", total, len(got))
	}
	if got[0].Title != "Apple Pie" || got[2].Title != "Zucchini Bake" {
		t.Errorf("order = [%s %s %s], want title ascending", got[0].Title, got[1].Title, got[2].Title)
	}

	got, total, err = db.ListRecipes(10, 0, "vegetarian")
	if err != nil {
		t.Fatalf("ListRecipes(tag) error = %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Errorf("ListRecipes(vegetarian) total = %d, len = %d, want 2", total, len(got))
	}

	got, total, err = db.ListRecipes(1, 1, "")
	if err != nil {
		t.Fatalf("ListRecipes(page) error = %v", err)
	}
	if total != 3 || len(got) != 1 || got[0].Title != "Miso Soup" {
		t.Errorf("page 2 = %v (total %d), want [Miso Soup] total 3", got, total)
	}
}

func TestSearch(t *testing.T) {
	db := testutil.TestDB(t)
	if err := db.UpsertRecipe(index.RecipeRow{Path: "Recipes/Pasta.md", Title: "Pasta Carbonara"}, "guanciale and pecorino"); err != nil {
		t.Fatalf("UpsertRecipe() error = %v", err)
	}
	if err := db.UpsertRecipe(index.RecipeRow{Path: "Recipes/Soup.md", Title: "Miso Soup"}, "dashi and tofu"); err != nil {
		t.Fatalf("UpsertRecipe() error = %v", err)
	}

	hits, err := db.Search("pecorino", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 1 || hits[0].Path != "Recipes/Pasta.md" {
		t.Errorf("Search(pecorino) = %v, want the pasta recipe", hits)
	}

	hits, err = db.Search("", 10)
	if err != nil {
		t.Fatalf("Search(empty) error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Search(empty) = %v, want none", hits)
	}
}

func TestSyncAll(t *testing.T) {
	store, _ := testutil.TestVault(t, map[string]string{
		"Meal Plan.md": "## Week of January 8th\n",
		"Recipes/Pasta Carbonara.md": `# Pasta Carbonara

## Ingredients

- 200 g spaghetti
- 2 eggs
`,
		"Recipes/Plain Note.md": "just prose, no ingredient section\n",
	})
	db := testutil.TestDB(t)

	if err := index.SyncAll(context.Background(), db, store, "Recipes", discardLogger()); err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}

	r, err := db.GetRecipe("Recipes/Pasta Carbonara.md")
	if err != nil {
		t.Fatalf("GetRecipe() error = %v", err)
	}
	if len(r.Ingredients) != 2 || r.Ingredients[0] != "- 200 g spaghetti" {
		t.Errorf("Ingredients = %v", r.Ingredients)
	}

	// Notes without an Ingredients section are indexed with none.
	r, err = db.GetRecipe("Recipes/Plain Note.md")
	if err != nil {
		t.Fatalf("GetRecipe(plain) error = %v", err)
	}
	if len(r.Ingredients) != 0 {
		t.Errorf("plain note Ingredients = %v, want none", r.Ingredients)
	}

	// The plan note outside the recipe folder is not indexed.
	if _, err := db.GetRecipe("Meal Plan.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetRecipe(plan note) error = %v, want ErrNotFound", err)
	}

	// Removing a file on disk removes it from the catalog on resync.
	if err := store.Delete("Recipes/Plain Note.md"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := index.SyncAll(context.Background(), db, store, "Recipes", discardLogger()); err != nil {
		t.Fatalf("SyncAll() second error = %v", err)
	}
	if _, err := db.GetRecipe("Recipes/Plain Note.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetRecipe(removed) error = %v, want ErrNotFound", err)
	}
}
