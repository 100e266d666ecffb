// internal/httpapi/router.go
//
// Root HTTP handler.
//
// Request life-cycle
// ------------------
//
//  1. Request id, access log with a request-scoped zap logger, panic
//     recovery.
//  2. HTTPS redirect (when enabled), security headers, CORS for the
//     React frontend.
//  3. Request info: client IP, user agent, optional geo.
//  4. Operational endpoints that do not need a site: /metrics, /healthz.
//  5. Site lookup by Host → *content.Site in the context (404 for unknown
//     hosts), then every registered component under /api/<name>, plus
//     robots.txt and sitemap.xml.

package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/component"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/content"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpx"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/middleware"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/requestinfo"
)

// Pinger reports backend health; *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the router wires together.
type Deps struct {
	Log            *zap.SugaredLogger
	Sites          content.Source
	LocalhostAlias string
	Components     *component.Registry
	SEO            SEO // optional
	DB             Pinger
	ForceHTTPS     bool
	CORSOrigins    []string
}

// SEO serves the crawler files of a site.
type SEO interface {
	Robots(w http.ResponseWriter, r *http.Request)
	Sitemap(w http.ResponseWriter, r *http.Request)
}

// New builds the root handler.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(d.Log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.ForceHTTPS(d.ForceHTTPS))
	r.Use(middleware.Security)
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(requestinfo.Enrich)

	r.NotFound(httpx.NotFound)
	r.MethodNotAllowed(httpx.MethodNotAllowed)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthz(d.DB))

	r.Group(func(sr chi.Router) {
		sr.Use(content.Middleware(d.Sites, d.LocalhostAlias))

		if d.SEO != nil {
			sr.Get("/robots.txt", d.SEO.Robots)
			sr.Get("/sitemap.xml", d.SEO.Sitemap)
		}
		for _, c := range d.Components.All() {
			sr.Mount("/api/"+c.Name(), c.Routes())
			d.Log.Debugw("component mounted", "name", c.Name())
		}
	})

	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				logger.FromContext(r.Context()).Errorw("healthz ping failed", "err", err)
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}
