// internal/site/repository.go
//
// Site row lookups.  Both helpers take sqlx.QueryerContext so they run
// equally against the pool or inside a transaction.

package site

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no active site matches the host.
var ErrNotFound = errors.New("site not found")

// AllActive returns every site that is neither suspended nor deleted.
// cmd/web logs the list at boot so operators see which hosts will answer.
func AllActive(ctx context.Context, db sqlx.QueryerContext) ([]Record, error) {
	const q = `
        SELECT id, host, title, locale, suspended_at, deleted_at
        FROM   site
        WHERE  suspended_at IS NULL
          AND  deleted_at   IS NULL
        ORDER  BY host`
	var rows []Record
	if err := sqlx.SelectContext(ctx, db, &rows, q); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return rows, nil
}

// ByHost fetches a single site row that is not suspended or deleted.
func ByHost(ctx context.Context, db sqlx.QueryerContext, host string) (*Record, error) {
	const q = `
        SELECT id, host, title, locale, suspended_at, deleted_at
        FROM   site
        WHERE  host = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	var rec Record
	if err := sqlx.GetContext(ctx, db, &rec, q, host); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("site by host %q: %w", host, err)
	}
	return &rec, nil
}
