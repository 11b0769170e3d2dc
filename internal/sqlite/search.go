package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/repository"
)

// SearchRepository implements repository.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Reindex replaces the indexed entries with grantees.
func (r *SearchRepository) Reindex(ctx context.Context, grantees []grant.Grantee) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reindex: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM grantee_index"); err != nil {
		return fmt.Errorf("failed to clear search index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO grantee_index (id, name, county, city, focus_area, description, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare index insert: %w", err)
	}
	defer stmt.Close()

	for i, g := range grantees {
		if _, err := stmt.ExecContext(ctx, i+1, g.Name, g.County, g.City, g.FocusArea, searchText(g), g.Status); err != nil {
			return fmt.Errorf("failed to index %q: %w", g.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO grantee_fts(grantee_fts) VALUES('rebuild')"); err != nil {
		return fmt.Errorf("failed to rebuild search index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reindex: %w", err)
	}
	return nil
}

// Search performs a full-text search over indexed grantees. Every word of the
// query must match, as a prefix.
func (r *SearchRepository) Search(ctx context.Context, query string, opts repository.SearchOptions) ([]grant.SearchHit, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, fmt.Errorf("%w: empty query", repository.ErrInvalidQuery)
	}

	baseQuery := `
		SELECT
			g.name, g.county, g.city, g.focus_area, g.status,
			snippet(grantee_fts, 4, '[', ']', '...', 12) AS snippet,
			bm25(grantee_fts) AS rank
		FROM grantee_fts
		JOIN grantee_index g ON g.id = grantee_fts.rowid
		WHERE grantee_fts MATCH ?
	`
	args := []any{match}

	if opts.County != "" {
		baseQuery += " AND g.county = ?"
		args = append(args, opts.County)
	}
	if opts.Status != "" {
		baseQuery += " AND g.status = ?"
		args = append(args, opts.Status)
	}

	baseQuery += " ORDER BY rank, g.id"
	baseQuery += limitOffset(opts.Limit, opts.Offset, &args)

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		if isFTSSyntaxError(err) {
			return nil, fmt.Errorf("%w: %v", repository.ErrInvalidQuery, err)
		}
		return nil, fmt.Errorf("failed to search grantees: %w", err)
	}
	defer rows.Close()

	var results []grant.SearchHit
	for rows.Next() {
		var hit grant.SearchHit
		if err := rows.Scan(
			&hit.Name,
			&hit.County,
			&hit.City,
			&hit.FocusArea,
			&hit.Status,
			&hit.Snippet,
			&hit.Rank,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		// bm25 scores better matches lower.
		hit.Rank = -hit.Rank
		results = append(results, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

// searchText is the description indexed for an entry, including the
// descriptions and project names of its grants.
func searchText(g grant.Grantee) string {
	parts := []string{g.Description}
	for _, gr := range g.Grants {
		if gr.ProjectName != "" {
			parts = append(parts, gr.ProjectName)
		}
		if gr.Description != "" && gr.Description != g.Description {
			parts = append(parts, gr.Description)
		}
	}
	return strings.Join(parts, " ")
}

// ftsQuery turns free text into an FTS5 query of quoted prefix terms, so user
// input cannot produce query syntax.
func ftsQuery(q string) string {
	var terms []string
	for _, word := range strings.Fields(q) {
		word = strings.ReplaceAll(word, `"`, "")
		if word == "" {
			continue
		}
		terms = append(terms, `"`+word+`"*`)
	}
	return strings.Join(terms, " ")
}
