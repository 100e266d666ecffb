package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmPage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := Render(rec, http.StatusBadRequest, "newsletter_confirm.html", map[string]any{
		"OK":      false,
		"Title":   "Link invalid",
		"Message": "Link invalid sau deja folosit.",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Link invalid sau deja folosit.")
	assert.NotContains(t, rec.Body.String(), `class="cta"`)
}

func TestRenderEscapes(t *testing.T) {
	out, err := RenderToString("newsletter_confirm_email.html", map[string]any{
		"ConfirmURL": `https://x.ro/api/newsletter/confirm/?token=a"b`,
	})
	require.NoError(t, err)
	assert.NotContains(t, out, `a"b`)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := RenderToString("missing.html", nil)
	assert.Error(t, err)
}

func TestDateFunc(t *testing.T) {
	date := funcs["date"].(func(string, time.Time) string)
	assert.Equal(t, "", date("2006", time.Time{}))
	assert.Equal(t, "05 Mar 2026, 14:07", date("02 Jan 2006, 15:04", time.Date(2026, 3, 5, 14, 7, 0, 0, time.UTC)))
}
