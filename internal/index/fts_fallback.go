//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

// Builds without the sqlite_fts5 tag fall back to LIKE matching over
// the recipes table. No shadow table is needed.

func initFTS(conn *sql.DB) error { return nil }

func upsertFTS(tx *sql.Tx, path, title, body string) error { return nil }

func deleteFTS(tx *sql.Tx, path string) error { return nil }

// Search runs a case-insensitive substring match over recipe titles
// and bodies.
func (db *DB) Search(query string, limit int) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := db.conn.Query(`
		SELECT path, title, substr(body, 1, 120)
		FROM recipes
		WHERE lower(title) LIKE ? OR lower(body) LIKE ?
		ORDER BY title COLLATE NOCASE ASC
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("index: like search: %w", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.Path, &h.Title, &h.Snippet); err != nil {
			return nil, fmt.Errorf("index: scan search hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
