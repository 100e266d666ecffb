// internal/content/loader.go
//
// Database-backed Loader: one site row plus its settings.

package content

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/site"
)

// DBLoader returns a Loader reading from db.
//
//  1. Fetch the active site row.
//  2. Fetch key-value settings.
func DBLoader(db sqlx.QueryerContext) Loader {
	return func(ctx context.Context, host string) (*Site, error) {
		rec, err := site.ByHost(ctx, db, host)
		if err != nil {
			return nil, err
		}
		cfg, err := site.ConfigBySite(ctx, db, rec.ID)
		if err != nil {
			return nil, err
		}
		return &Site{Record: *rec, Settings: cfg}, nil
	}
}
