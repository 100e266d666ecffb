// Package httpx holds the small JSON response helpers shared by every
// component's handlers.
package httpx

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
)

// MaxBodyBytes caps request bodies read by ReadBody.
const MaxBodyBytes = 1 << 20

// JSON writes payload with status code.
func JSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // body_html and quotes stay readable
	_ = enc.Encode(payload)
}

// Detail writes {"detail": msg}.
func Detail(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]any{"detail": msg})
}

// MethodNotAllowed answers 405 with the JSON body the frontend expects.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	Detail(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound answers 404 {"detail": "Not found"}.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	Detail(w, http.StatusNotFound, "Not found")
}

// Internal logs err with the request logger and answers a generic 500.
func Internal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.FromContext(r.Context()).Errorw(msg, "err", err, "path", r.URL.Path)
	Detail(w, http.StatusInternalServerError, "Internal server error")
}

// ReadBody returns at most MaxBodyBytes of the request body.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
}

// BaseURL returns scheme://host of r.  A TLS-terminating proxy is trusted
// through X-Forwarded-Proto.
func BaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
