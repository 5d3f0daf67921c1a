//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

const ftsSchemaSQL = `
CREATE VIRTUAL TABLE IF NOT EXISTS recipes_fts USING fts5(
	path UNINDEXED,
	title,
	body,
	tokenize = 'porter unicode61'
);
`

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(ftsSchemaSQL)
	return err
}

func upsertFTS(tx *sql.Tx, path, title, body string) error {
	if _, err := tx.Exec(`DELETE FROM recipes_fts WHERE path = ?`, path); err != nil {
		return err
	}
	_, err := tx.Exec(`INSERT INTO recipes_fts (path, title, body) VALUES (?, ?, ?)`, path, title, body)
	return err
}

func deleteFTS(tx *sql.Tx, path string) error {
	_, err := tx.Exec(`DELETE FROM recipes_fts WHERE path = ?`, path)
	return err
}

// Search runs an FTS5 match over recipe titles and bodies.
func (db *DB) Search(query string, limit int) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	rows, err := db.conn.Query(`
		SELECT path, title, snippet(recipes_fts, 2, '<b>', '</b>', '…', 12)
		FROM recipes_fts
		WHERE recipes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, escapeFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("index: fts search: %w", err)
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

// escapeFTSQuery quotes each term so user input cannot inject FTS5
// query syntax.
func escapeFTSQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
