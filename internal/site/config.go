// internal/site/config.go
//
// Per-site key-value settings from the `site_config` table.
//
// Context
// -------
// Every site keeps its editable content (main-page copy, image keys, the
// membership question list) as string settings.  The content cache runs
// this query once per cold load and keeps the map in memory, so requests
// never touch site_config directly.
//
// Notes
// -----
//   - Keys are case-sensitive and unique per site (primary key).
//   - The helper never logs; callers wrap errors if they need more detail.
package site

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ConfigBySite returns a map[key]value for one site_id.
func ConfigBySite(ctx context.Context, db sqlx.QueryerContext, siteID uint64) (map[string]string, error) {
	const q = "SELECT `key`, value FROM site_config WHERE site_id = ?"

	// Small cap avoids reallocations for sites with few settings.
	rows := make([]struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}, 0, 8)

	if err := sqlx.SelectContext(ctx, db, &rows, q, siteID); err != nil {
		return nil, fmt.Errorf("site config %d: %w", siteID, err)
	}

	cfg := make(map[string]string, len(rows))
	for _, r := range rows {
		cfg[r.Key] = r.Value
	}
	return cfg, nil
}
