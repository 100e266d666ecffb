//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types and helpers that collect per-request metadata
//  (client IP, user-agent fingerprint, geolocation, and timestamp).
//  These structs are inert.  They hold no database handles or large
//  buffers, so they are safe to log or JSON-encode.
//
//  Dependencies
//  • internal/ua                        (uasurfer wrapper)
//  • github.com/oschwald/geoip2-golang  (MaxMind lookup, optional)
//

package requestinfo

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/ua"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// Geo holds IP-based geolocation hints.  Fields stay empty when no
// database is loaded or the address has no match.
type Geo struct {
	CountryISO string
	City       string
}

// RequestInfo is attached to the request context by Enrich.
type RequestInfo struct {
	IP          string // "" when unknown
	UserAgent   string // raw header, trimmed
	UA          ua.Info
	PrimaryLang string
	Geo         Geo
	Timestamp   time.Time
}

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is a singleton MaxMind handle, safe for concurrent reads.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database.  An empty path disables geo
// lookups; a bad path is returned as an error for the caller to log.
func InitGeo(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open GeoLite2 DB: %w", err)
	}
	geoReader = r
	return nil
}

//
//  -----------------------------
//  Public helpers
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer stored by Enrich, or nil.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// WithInfo returns a copy of ctx carrying info.
func WithInfo(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// ClientIP returns the first X-Forwarded-For entry when the header is
// present and that entry parses as an IP, else the host part of
// RemoteAddr.  It returns "" when neither yields an address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return ""
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// primaryLang extracts the first language subtag before any ";q=" rule.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag, _, _ := strings.Cut(al, ",")
	tag, _, _ = strings.Cut(strings.TrimSpace(tag), ";")
	return strings.ToLower(tag)
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip string) Geo {
	parsed := net.ParseIP(ip)
	if geoReader == nil || parsed == nil {
		return Geo{}
	}
	rec, err := geoReader.City(parsed)
	if err != nil {
		return Geo{}
	}
	return Geo{
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
