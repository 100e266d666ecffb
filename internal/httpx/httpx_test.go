package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowed(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"detail":"Method not allowed"}`, rec.Body.String())
}

func TestReadBodyLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	big := strings.NewReader(strings.Repeat("x", MaxBodyBytes+1))
	_, err := ReadBody(rec, httptest.NewRequest(http.MethodPost, "/", big))
	require.Error(t, err)

	b, err := ReadBody(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(b))
}

func TestBaseURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://atelierelascanteia.ro/x", nil)
	assert.Equal(t, "http://atelierelascanteia.ro", BaseURL(r))
	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://atelierelascanteia.ro", BaseURL(r))
}
