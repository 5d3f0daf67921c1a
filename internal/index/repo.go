package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/mbracken/skillet/internal/apperr"
)

// RecipeRow is a catalog entry for one recipe file.
type RecipeRow struct {
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Checksum    string    `json:"checksum"`
	Tags        []string  `json:"tags"`
	Ingredients []string  `json:"ingredients"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertRecipe inserts or replaces a catalog entry and its search text.
func (db *DB) UpsertRecipe(r RecipeRow, body string) error {
	tags, err := json.Marshal(r.Tags)
	if err != nil {
		return fmt.Errorf("index: marshal tags: %w", err)
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	ingredients, err := json.Marshal(r.Ingredients)
	if err != nil {
		return fmt.Errorf("index: marshal ingredients: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO recipes (path, title, checksum, tags, ingredients, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			checksum = excluded.checksum,
			tags = excluded.tags,
			ingredients = excluded.ingredients,
			body = excluded.body,
			updated_at = CURRENT_TIMESTAMP
	`, r.Path, r.Title, r.Checksum, string(tags), string(ingredients), body)
	if err != nil {
		return fmt.Errorf("index: upsert recipe %s: %w", r.Path, err)
	}

	if err := upsertFTS(tx, r.Path, r.Title, body); err != nil {
		return fmt.Errorf("index: upsert fts %s: %w", r.Path, err)
	}

	return tx.Commit()
}

// DeleteRecipe removes a catalog entry. Deleting a path that is not
// indexed is not an error.
func (db *DB) DeleteRecipe(p string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM recipes WHERE path = ?`, p); err != nil {
		return fmt.Errorf("index: delete recipe %s: %w", p, err)
	}
	if err := deleteFTS(tx, p); err != nil {
		return fmt.Errorf("index: delete fts %s: %w", p, err)
	}
	return tx.Commit()
}

// GetRecipe returns the catalog entry at path.
func (db *DB) GetRecipe(p string) (*RecipeRow, error) {
	row := db.conn.QueryRow(`
		SELECT path, title, checksum, tags, ingredients, updated_at
		FROM recipes WHERE path = ?
	`, p)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return r, err
}

// GetChecksum returns the stored checksum for path, or ErrNotFound.
func (db *DB) GetChecksum(p string) (string, error) {
	var sum string
	err := db.conn.QueryRow(`SELECT checksum FROM recipes WHERE path = ?`, p).Scan(&sum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum %s: %w", p, err)
	}
	return sum, nil
}

// AllChecksums returns path -> checksum for every indexed recipe.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]string)
	for rows.Next() {
		var p, sum string
		if err := rows.Scan(&p, &sum); err != nil {
			return nil, fmt.Errorf("index: scan checksum: %w", err)
		}
		sums[p] = sum
	}
	return sums, rows.Err()
}

// ListRecipes returns a page of catalog entries ordered by title, with
// the total count. An empty tag matches all recipes.
func (db *DB) ListRecipes(limit, offset int, tag string) ([]RecipeRow, int, error) {
	where := ""
	args := []any{}
	if tag != "" {
		// Tags are stored as a JSON array of strings.
		where = `WHERE tags LIKE ?`
		args = append(args, `%"`+tag+`"%`)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM recipes `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count recipes: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := db.conn.Query(`
		SELECT path, title, checksum, tags, ingredients, updated_at
		FROM recipes `+where+`
		ORDER BY title COLLATE NOCASE ASC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list recipes: %w", err)
	}
	defer rows.Close()

	var out []RecipeRow
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *r)
	}
	return out, total, rows.Err()
}

// Resolve maps a wikilink target to a catalog entry. Targets may be a
// full vault path, a path without the .md extension, a recipe title, or
// a bare file stem. Returns ErrNotFound when nothing matches.
func (db *DB) Resolve(target string) (*RecipeRow, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, apperr.ErrNotFound
	}

	candidates := []string{target}
	if !strings.HasSuffix(target, ".md") {
		candidates = append(candidates, target+".md")
	}
	for _, c := range candidates {
		r, err := db.GetRecipe(c)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
	}

	row := db.conn.QueryRow(`
		SELECT path, title, checksum, tags, ingredients, updated_at
		FROM recipes WHERE title = ? COLLATE NOCASE
		ORDER BY path ASC LIMIT 1
	`, target)
	r, err := scanRecipe(row)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Fall back to matching the file stem, the way bare wikilinks
	// reference notes in nested folders.
	stem := strings.TrimSuffix(target, ".md")
	rows, err := db.conn.Query(`SELECT path, title, checksum, tags, ingredients, updated_at FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("index: resolve %s: %w", target, err)
	}
	defer rows.Close()
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		base := strings.TrimSuffix(path.Base(r.Path), ".md")
		if strings.EqualFold(base, stem) {
			return r, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, apperr.ErrNotFound
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s rowScanner) (*RecipeRow, error) {
	var r RecipeRow
	var tags, ingredients string
	if err := s.Scan(&r.Path, &r.Title, &r.Checksum, &tags, &ingredients, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
		return nil, fmt.Errorf("index: unmarshal tags for %s: %w", r.Path, err)
	}
	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("index: unmarshal ingredients for %s: %w", r.Path, err)
	}
	return &r, nil
}
