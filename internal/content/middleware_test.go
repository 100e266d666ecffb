package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/media"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/site"
)

type mapSource map[string]*Site

func (m mapSource) Get(_ context.Context, host string) (*Site, error) {
	if host == "broken.example" {
		return nil, errors.New("db down")
	}
	s, ok := m[host]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func TestMiddlewareInjectsSite(t *testing.T) {
	src := mapSource{"atelierelascanteia.ro": {Record: site.Record{ID: 3}}}
	var got *Site
	h := Middleware(src, "atelierelascanteia.ro")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "http://localhost:8080/api/mainpage/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.Equal(t, uint64(3), got.Record.ID)
}

func TestMiddlewareUnknownAndBroken(t *testing.T) {
	h := Middleware(mapSource{}, "")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://unknown.example/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://broken.example/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestComponentMainPage(t *testing.T) {
	comp := &Component{Media: media.PublicResolver{}}
	h := comp.Routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSite(req.Context(), &Site{Settings: Settings{"hero_title": "X"}}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"X"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"detail":"Method not allowed"}`, rec.Body.String())
}
