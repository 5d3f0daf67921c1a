package index

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/checksum"
	"github.com/mbracken/skillet/internal/outline"
	"github.com/mbracken/skillet/internal/shopping"
	"github.com/mbracken/skillet/internal/storage"
)

// SyncAll reconciles the catalog with the recipe folder on disk. Files
// whose checksum changed are re-indexed, files that disappeared are
// removed. Safe to run at startup and after watcher gaps.
func SyncAll(ctx context.Context, db *DB, store storage.Provider, recipeDir string, logger *slog.Logger) error {
	files, err := store.List(recipeDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("recipe folder does not exist yet", "dir", recipeDir)
			return nil
		}
		return fmt.Errorf("index: list recipe folder: %w", err)
	}
	indexed, err := db.AllChecksums()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(files))
	var synced, removed int
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[f.Path] = true
		if indexed[f.Path] == f.Checksum {
			continue
		}
		if err := IndexFile(db, store, f.Path); err != nil {
			logger.Warn("failed to index recipe", "path", f.Path, "error", err)
			continue
		}
		synced++
	}

	for p := range indexed {
		if seen[p] {
			continue
		}
		if err := db.DeleteRecipe(p); err != nil {
			logger.Warn("failed to remove stale recipe", "path", p, "error", err)
			continue
		}
		removed++
	}

	if synced > 0 || removed > 0 {
		logger.Info("recipe catalog synced", "indexed", synced, "removed", removed, "total", len(files))
	}
	return nil
}

// IndexFile reads one file and upserts its catalog entry. Notes without
// an Ingredients section are still indexed so title search works; they
// just carry no cached ingredient lines.
func IndexFile(db *DB, store storage.Provider, p string) error {
	data, err := store.Read(p)
	if err != nil {
		return err
	}
	meta := outline.ParseMeta(data)

	title := meta.Title
	if title == "" {
		title = strings.TrimSuffix(path.Base(p), ".md")
	}

	lines, err := shopping.IngredientLines(meta.Body, &outline.Scanner{})
	if err != nil && !errors.Is(err, apperr.ErrMissingIngredientSection) {
		return err
	}

	return db.UpsertRecipe(RecipeRow{
		Path:        p,
		Title:       title,
		Checksum:    checksum.Sum(data),
		Tags:        meta.Tags,
		Ingredients: lines,
	}, meta.Body)
}
