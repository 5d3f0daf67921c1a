// Package testutil holds shared helpers for package tests.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mbracken/skillet/internal/index"
	"github.com/mbracken/skillet/internal/storage"
)

// QuietLogger returns a logger that only emits errors.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestDB opens a throwaway catalog database in a temp directory and
// closes it when the test finishes.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "skillet-test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temp vault populated with the given files and
// returns a storage provider rooted at it. Keys are vault-relative
// paths, values the file contents.
func TestVault(t *testing.T, files map[string]string) (*storage.FS, string) {
	t.Helper()
	root := t.TempDir()
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	return store, root
}
