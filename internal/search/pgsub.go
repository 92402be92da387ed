package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PgSubstring implements the search contract directly in PostgreSQL
// with ILIKE, as the fallback when Meilisearch is not available.
type PgSubstring struct {
	db *sql.DB
}

// NewPgSubstring creates a PostgreSQL substring searcher.
func NewPgSubstring(db *sql.DB) *PgSubstring {
	return &PgSubstring{db: db}
}

// likeEscaper neutralizes LIKE metacharacters so the query is matched
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns published documents containing the query in their
// title, subtitle, or content, newest first.
func (p *PgSubstring) Search(ctx context.Context, query string, limit int) ([]DocumentRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = MaxResults
	}

	pattern := "%" + likeEscaper.Replace(query) + "%"

	rows, err := p.db.QueryContext(ctx, `
		SELECT d.id, d.title, COALESCE(d.subtitle, ''), d.slug, d.content,
			COALESCE(c.id, ''), COALESCE(c.name, ''), COALESCE(c.slug, ''),
			EXTRACT(EPOCH FROM d.updated_at)::bigint
		FROM documents d
		LEFT JOIN categories c ON c.id = d.category_id
		WHERE d.published = TRUE
			AND (d.title ILIKE $1 OR d.subtitle ILIKE $1 OR d.content ILIKE $1)
		ORDER BY d.updated_at DESC
		LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("substring search: %w", err)
	}
	defer rows.Close()

	var records []DocumentRecord
	for rows.Next() {
		var r DocumentRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Subtitle, &r.Slug, &r.Content,
			&r.CategoryID, &r.CategoryName, &r.CategorySlug, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// LoadPublished returns all published documents for reindexing.
func (p *PgSubstring) LoadPublished(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT d.id, d.title, COALESCE(d.subtitle, ''), d.slug, d.content,
			COALESCE(c.id, ''), COALESCE(c.name, ''), COALESCE(c.slug, ''),
			EXTRACT(EPOCH FROM d.updated_at)::bigint
		FROM documents d
		LEFT JOIN categories c ON c.id = d.category_id
		WHERE d.published = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("load published documents: %w", err)
	}
	defer rows.Close()

	records := make([]DocumentRecord, 0)
	for rows.Next() {
		var r DocumentRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Subtitle, &r.Slug, &r.Content,
			&r.CategoryID, &r.CategoryName, &r.CategorySlug, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan published document: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
