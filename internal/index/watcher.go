package index

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/storage"
)

// debounceWindow coalesces editor write bursts (atomic saves emit
// several events per file) into a single reconcile pass.
const debounceWindow = 200 * time.Millisecond

// EventCallback receives a change notification after the catalog has
// been updated. kind is one of recipe.created, recipe.updated,
// recipe.deleted or plan.updated; path is vault-relative.
type EventCallback func(kind, path string)

// Watch observes the vault root and keeps the recipe catalog in sync
// with edits made outside the API. Blocks until ctx is cancelled.
func Watch(ctx context.Context, db *DB, store storage.Provider, root, recipeDir, planNote string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirs(w, root); err != nil {
		return err
	}

	dirty := make(map[string]bool)
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			rel, err := filepath.Rel(root, ev.Name)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			rel = filepath.ToSlash(rel)
			if hiddenPath(rel) {
				continue
			}

			// New directories must be registered before files
			// inside them produce events.
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addDirs(w, ev.Name)
					continue
				}
			}

			if !strings.HasSuffix(rel, ".md") {
				continue
			}
			dirty[rel] = true
			flush = time.After(debounceWindow)
		case <-flush:
			flush = nil
			for rel := range dirty {
				reconcile(db, store, rel, recipeDir, planNote, logger, cb)
			}
			dirty = make(map[string]bool)
		}
	}
}

// reconcile settles one dirty path against the current state on disk.
// Renames arrive as a remove of the old path and a create of the new
// one, so presence on disk is the source of truth.
func reconcile(db *DB, store storage.Provider, rel, recipeDir, planNote string, logger *slog.Logger, cb EventCallback) {
	if rel == planNote {
		if cb != nil {
			cb("plan.updated", rel)
		}
		return
	}
	if !underDir(rel, recipeDir) {
		return
	}

	if !store.Exists(rel) {
		if err := db.DeleteRecipe(rel); err != nil {
			logger.Warn("failed to deindex recipe", "path", rel, "error", err)
			return
		}
		if cb != nil {
			cb("recipe.deleted", rel)
		}
		return
	}

	_, err := db.GetChecksum(rel)
	known := err == nil
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		logger.Warn("failed to query catalog", "path", rel, "error", err)
		return
	}

	if err := IndexFile(db, store, rel); err != nil {
		logger.Warn("failed to index recipe", "path", rel, "error", err)
		return
	}
	if cb == nil {
		return
	}
	if known {
		cb("recipe.updated", rel)
	} else {
		cb("recipe.created", rel)
	}
}

func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}

func underDir(rel, dir string) bool {
	if dir == "" || dir == "." {
		return true
	}
	return strings.HasPrefix(rel, strings.TrimSuffix(dir, "/")+"/")
}

func hiddenPath(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part != "." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
