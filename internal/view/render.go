// internal/view/render.go
//
// Central view engine: embedded html/template set with a small func-map.
//
// Public helpers
// --------------
//   - Render         – write rendered HTML to an http.ResponseWriter.
//   - RenderToString – return the rendered markup (e-mails).
//
// Templates live in templates/*.html and are parsed once, on first use,
// as one set so sub-templates ({{ template "footer" . }}) work.  Callers
// pass the file name, e.g. "newsletter_confirm.html".

package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	once    sync.Once
	set     *template.Template
	loadErr error
)

// funcs exposed to every template.
var funcs = template.FuncMap{
	// date renders t in the given layout; the zero time renders "".
	"date": func(layout string, t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	},
}

func load() (*template.Template, error) {
	once.Do(func() {
		set, loadErr = template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	})
	return set, loadErr
}

// RenderToString executes the named template into a string.
func RenderToString(name string, data any) (string, error) {
	t, err := load()
	if err != nil {
		return "", fmt.Errorf("parse templates: %w", err)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Render writes the named template with status code.  The body is rendered
// into memory first so a template error never produces a half page.
func Render(w http.ResponseWriter, code int, name string, data any) error {
	out, err := RenderToString(name, data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err = w.Write([]byte(out))
	return err
}
