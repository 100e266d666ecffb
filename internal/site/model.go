package site

import "time"

// Record mirrors one row in the `site` table.  The operational state is
// captured by two nullable timestamps:
//
//   - SuspendedAt – site is temporarily disabled.
//   - DeletedAt   – site is permanently removed.
//
// Either timestamp being non-NULL prevents the content cache from serving
// the site.
type Record struct {
	ID          uint64     `db:"id"`
	Host        string     `db:"host"`
	Title       string     `db:"title"`
	Locale      string     `db:"locale"`
	SuspendedAt *time.Time `db:"suspended_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}
