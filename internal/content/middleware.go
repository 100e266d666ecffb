// internal/content/middleware.go
//
// Request-scoped site content.  The middleware resolves the Host header to
// a lookup host, loads the site through the cache, and stores it in the
// request context.  Handlers read it with FromContext and never touch the
// cache or the database directly.

package content

import (
	"context"
	"errors"
	"net/http"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpx"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/site"
)

type ctxKey struct{}

// Source is what the middleware needs from a cache.
type Source interface {
	Get(ctx context.Context, host string) (*Site, error)
}

// WithSite returns a copy of ctx carrying s.
func WithSite(ctx context.Context, s *Site) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the Site stored by Middleware, or nil.
func FromContext(ctx context.Context) *Site {
	s, _ := ctx.Value(ctxKey{}).(*Site)
	return s
}

// Middleware injects the request host's Site.  Unknown hosts answer 404.
func Middleware(src Source, localhostAlias string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := site.LookupHost(r.Host, localhostAlias)
			s, err := src.Get(r.Context(), host)
			if errors.Is(err, ErrNotFound) {
				httpx.Detail(w, http.StatusNotFound, "Unknown site.")
				return
			}
			if err != nil {
				httpx.Internal(w, r, "site content load failed", err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSite(r.Context(), s)))
		})
	}
}
