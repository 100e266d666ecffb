// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
This handler sits right after the request logger and before site lookup.
For every request it:

  1. Resolves the client IP (first X-Forwarded-For entry, else the peer).
  2. Parses the User-Agent header and Accept-Language list.
  3. Performs a GeoLite2 lookup when a database is loaded.
  4. Stores a `*RequestInfo` in the request context so the intake
     pipeline and the newsletter flow read IP and UA from one place.

Instrumentation
---------------
At DEBUG level each invocation logs client IP, country, browser family,
device class, and bot flag.
*/
package requestinfo

import (
	"net/http"
	"strings"
	"time"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/ua"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich wraps an http.Handler, attaches *RequestInfo, and forwards.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		raw := strings.TrimSpace(r.UserAgent())

		info := &RequestInfo{
			IP:          ip,
			UserAgent:   raw,
			UA:          ua.Parse(raw),
			PrimaryLang: primaryLang(r.Header.Get("Accept-Language")),
			Geo:         lookupGeo(ip),
			Timestamp:   time.Now().UTC(),
		}

		logger.FromContext(r.Context()).Debugw("request info",
			"ip", info.IP,
			"country", info.Geo.CountryISO,
			"browser", info.UA.Browser,
			"device", info.UA.Device,
			"bot", info.UA.IsBot,
		)

		next.ServeHTTP(w, r.WithContext(WithInfo(r.Context(), info)))
	})
}
