package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/component"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/content"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpx"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/site"
)

type fakeSites map[string]*content.Site

func (f fakeSites) Get(_ context.Context, host string) (*content.Site, error) {
	if s, ok := f[host]; ok {
		return s, nil
	}
	return nil, content.ErrNotFound
}

type echo struct{}

func (echo) Name() string { return "echo" }
func (echo) Routes() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		s := content.FromContext(r.Context())
		httpx.JSON(w, http.StatusOK, map[string]any{"site": s.Record.Host})
	})
	return r
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func newHandler(db Pinger) http.Handler {
	var reg component.Registry
	reg.Register(echo{})
	return New(Deps{
		Log:            zap.NewNop().Sugar(),
		Sites:          fakeSites{"atelierelascanteia.ro": {Record: site.Record{ID: 1, Host: "atelierelascanteia.ro"}}},
		LocalhostAlias: "atelierelascanteia.ro",
		Components:     &reg,
		DB:             db,
	})
}

func request(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestComponentMountedUnderAPI(t *testing.T) {
	h := newHandler(nil)

	rec := request(h, http.MethodGet, "http://atelierelascanteia.ro/api/echo/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"site":"atelierelascanteia.ro"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	rec = request(h, http.MethodGet, "http://localhost:8080/api/echo/")
	assert.Equal(t, http.StatusOK, rec.Code, "localhost aliases to the configured site")

	rec = request(h, http.MethodPost, "http://atelierelascanteia.ro/api/echo/")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"detail":"Method not allowed"}`, rec.Body.String())
}

func TestUnknownHost(t *testing.T) {
	rec := request(newHandler(nil), http.MethodGet, "http://evil.example/api/echo/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Unknown site."}`, rec.Body.String())
}

func TestHealthzAndMetrics(t *testing.T) {
	rec := request(newHandler(pinger{}), http.MethodGet, "http://anyhost/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(newHandler(pinger{err: errors.New("dial tcp db.internal:3306: connection refused")}), http.MethodGet, "http://anyhost/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "db.internal")

	rec = request(newHandler(nil), http.MethodGet, "http://anyhost/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "scanteia_"), "custom collectors are exported")
}
