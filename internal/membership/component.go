// internal/membership/component.go
//
// HTTP surface of the membership form, mounted at /api/membrii.
//
//   GET  /questions/     → {"items": [...]} active catalog questions
//   POST /applications/  → 201 {"ok": true, "id": N}
//
// Errors use the {"error": ...} shape the React form already reads.

package membership

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/apperr"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/content"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpx"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/question"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/requestinfo"
)

// Component exposes the intake Service over HTTP.
type Component struct {
	Service *Service
}

func (c *Component) Name() string { return "membrii" }

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	r.Get("/questions/", c.questions)
	r.Post("/applications/", c.apply)
	return r
}

func (c *Component) questions(w http.ResponseWriter, r *http.Request) {
	defs := question.FromSettings(r.Context(), siteSettings(r))
	httpx.JSON(w, http.StatusOK, map[string]any{"items": defs})
}

func (c *Component) apply(w http.ResponseWriter, r *http.Request) {
	body, err := httpx.ReadBody(w, r)
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON body."})
		return
	}

	defs := question.FromSettings(r.Context(), siteSettings(r))
	id, err := c.Service.Submit(r.Context(), body, metaFrom(r), defs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"ok": true, "id": id})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		body := map[string]any{"error": ve.Message}
		if ve.Kind == apperr.MissingFields {
			body["fields"] = ve.Fields
		}
		httpx.JSON(w, http.StatusBadRequest, body)
		return
	}
	if se, ok := apperr.AsServer(err); ok {
		body := map[string]any{"error": se.Message}
		if se.Err != nil {
			body["detail"] = se.Err.Error()
		}
		httpx.JSON(w, http.StatusInternalServerError, body)
		return
	}
	logger.FromContext(r.Context()).Errorw("membership application failed", "err", err)
	httpx.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
}

func siteSettings(r *http.Request) map[string]string {
	if s := content.FromContext(r.Context()); s != nil {
		return s.Settings
	}
	return nil
}

// metaFrom reads IP and user agent from the request-info middleware,
// falling back to the raw request.
func metaFrom(r *http.Request) RequestMeta {
	if info := requestinfo.FromContext(r.Context()); info != nil {
		return RequestMeta{IP: info.IP, UserAgent: info.UserAgent}
	}
	return RequestMeta{IP: requestinfo.ClientIP(r), UserAgent: r.UserAgent()}
}
