package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name, xff, remote, want string
	}{
		{"first forwarded entry", "203.0.113.7, 10.0.0.1", "10.0.0.2:5555", "203.0.113.7"},
		{"forwarded with spaces", "  198.51.100.4 ", "10.0.0.2:5555", "198.51.100.4"},
		{"no header", "", "192.0.2.10:443", "192.0.2.10"},
		{"garbage header", "unknown", "192.0.2.10:443", "192.0.2.10"},
		{"ipv6 peer", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"nothing usable", "", "pipe", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = c.remote
			if c.xff != "" {
				r.Header.Set("X-Forwarded-For", c.xff)
			}
			assert.Equal(t, c.want, ClientIP(r))
		})
	}
}

func TestEnrich(t *testing.T) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	r.Header.Set("User-Agent", "  Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15 ")
	r.Header.Set("Accept-Language", "ro-RO,ro;q=0.9,en;q=0.8")
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, got)
	assert.Equal(t, "192.0.2.1", got.IP)
	assert.Equal(t, "ro-ro", got.PrimaryLang)
	assert.NotEmpty(t, got.UserAgent)
	assert.Equal(t, "Desktop", got.UA.Device)
	assert.Empty(t, got.Geo.CountryISO)
}

func TestInitGeoOptional(t *testing.T) {
	assert.NoError(t, InitGeo(""))
	assert.Error(t, InitGeo("/does/not/exist.mmdb"))
}
