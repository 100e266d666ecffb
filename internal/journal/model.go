// Package journal serves the "Jurnal" article archive: the index header,
// the live article list, single articles by slug, and the sitemap that
// points search engines at them.
package journal

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Index is the archive header of one site.
type Index struct {
	SiteID   uint64 `db:"site_id"`
	Label    string `db:"label"`
	Title    string `db:"title"`
	Subtitle string `db:"subtitle"`
	Intro    string `db:"intro"`
}

// Article is one journal_article row.
type Article struct {
	ID          uint64     `db:"id"`
	SiteID      uint64     `db:"site_id"`
	Slug        string     `db:"slug"`
	Category    string     `db:"category"`
	Title       string     `db:"title"`
	Excerpt     string     `db:"excerpt"`
	Meta        string     `db:"meta"`
	HeroImage   string     `db:"hero_image"`
	BodyHTML    string     `db:"body_html"`
	Images      RefList    `db:"images"`
	Videos      RefList    `db:"videos"`
	PublishedAt *time.Time `db:"published_at"`
}

// RefList is a JSON column holding a list of references.  Entries may be
// plain strings or blocks such as {"type": "video", "value": "https://…"};
// blank and unreadable entries are dropped.
type RefList []string

// Scan implements sql.Scanner.
func (l *RefList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("RefList: unsupported type %T", src)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("RefList: %w", err)
	}
	out := make(RefList, 0, len(entries))
	for _, e := range entries {
		if ref := refFrom(e); ref != "" {
			out = append(out, ref)
		}
	}
	*l = out
	return nil
}

// Value implements driver.Valuer.
func (l RefList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

func refFrom(e json.RawMessage) string {
	var s string
	if json.Unmarshal(e, &s) == nil {
		return strings.TrimSpace(s)
	}
	var blk struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
		Image string `json:"image"`
	}
	if json.Unmarshal(e, &blk) != nil {
		return ""
	}
	if v, ok := blk.Value.(string); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(blk.Image)
}
