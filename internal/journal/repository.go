// internal/journal/repository.go
//
// Read-only queries for the journal.  Only live articles are visible, and
// an article belongs to the site whose index it hangs under.

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Reader is what the HTTP component needs.
type Reader interface {
	IndexBySite(ctx context.Context, siteID uint64) (*Index, error)
	Articles(ctx context.Context, siteID uint64) ([]Article, error)
	BySlug(ctx context.Context, siteID uint64, slug string) (*Article, error)
}

// Repository is the sqlx-backed Reader.
type Repository struct {
	db sqlx.QueryerContext
}

// NewRepository wraps db.
func NewRepository(db sqlx.QueryerContext) *Repository {
	return &Repository{db: db}
}

const articleColumns = `
    SELECT id, site_id, slug, category, title, excerpt, meta, hero_image,
           body_html, images, videos, published_at
    FROM   journal_article`

// IndexBySite returns the live index, or nil when the site has none.
func (r *Repository) IndexBySite(ctx context.Context, siteID uint64) (*Index, error) {
	const q = `
        SELECT site_id, label, title, subtitle, intro
        FROM   journal_index
        WHERE  site_id = ? AND live = TRUE`
	var idx Index
	err := sqlx.GetContext(ctx, r.db, &idx, q, siteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal index %d: %w", siteID, err)
	}
	return &idx, nil
}

// Articles lists live articles, newest first.
func (r *Repository) Articles(ctx context.Context, siteID uint64) ([]Article, error) {
	q := articleColumns + `
    WHERE  site_id = ? AND live = TRUE
    ORDER  BY published_at DESC, id DESC`
	var rows []Article
	if err := sqlx.SelectContext(ctx, r.db, &rows, q, siteID); err != nil {
		return nil, fmt.Errorf("journal articles %d: %w", siteID, err)
	}
	return rows, nil
}

// BySlug returns one live article, or nil when none matches.
func (r *Repository) BySlug(ctx context.Context, siteID uint64, slug string) (*Article, error) {
	q := articleColumns + `
    WHERE  site_id = ? AND slug = ? AND live = TRUE
    LIMIT  1`
	var a Article
	err := sqlx.GetContext(ctx, r.db, &a, q, siteID, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal article %q: %w", slug, err)
	}
	return &a, nil
}
