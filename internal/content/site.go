// internal/content/site.go
//
// Loaded site content.  One *Site is shared by every request for the same
// host until the cache refreshes or evicts it, so it must be treated as
// read-only.

package content

import (
	"github.com/FlorinRO/ateliere-la-scanteia/internal/site"
)

// Site bundles the site row with its key-value settings.
type Site struct {
	Record   site.Record
	Settings Settings
}

// Settings is the site_config map.
type Settings map[string]string

// Lookup returns the stored value and whether the key exists.
func (s Settings) Lookup(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// String returns the stored value, or fallback when the key is absent.  A
// stored empty string is returned as-is.
func (s Settings) String(key, fallback string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return fallback
}
