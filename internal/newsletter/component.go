// internal/newsletter/component.go
//
// HTTP surface of the newsletter, mounted at /api/newsletter.
//
//   POST /subscribe/        → 201|200 {"ok","created","status","message"}
//   GET  /confirm/?token=…  → HTML result page
//
// Subscribe errors use {"detail": ...}; the confirm page always renders
// HTML, even for failures, because it is opened from an email client.

package newsletter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/apperr"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpx"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/requestinfo"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/view"
)

const confirmTemplate = "newsletter_confirm.html"

// Component exposes the Service over HTTP.
type Component struct {
	Service *Service
}

func (c *Component) Name() string { return "newsletter" }

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	r.Post("/subscribe/", c.subscribe)
	r.Get("/confirm/", c.confirm)
	return r
}

func (c *Component) subscribe(w http.ResponseWriter, r *http.Request) {
	body, err := httpx.ReadBody(w, r)
	if err != nil {
		httpx.Detail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	email, ok := emailFrom(body)
	if !ok {
		httpx.Detail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	res, err := c.Service.Subscribe(r.Context(), email, metaFrom(r))
	if err != nil {
		if ve, ok := apperr.AsValidation(err); ok {
			httpx.Detail(w, http.StatusBadRequest, ve.Message)
			return
		}
		if se, ok := apperr.AsServer(err); ok {
			out := map[string]any{"detail": se.Message}
			if se.Err != nil {
				out["error"] = se.Err.Error()
			}
			httpx.JSON(w, http.StatusInternalServerError, out)
			return
		}
		httpx.Internal(w, r, "newsletter subscribe failed", err)
		return
	}

	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}
	httpx.JSON(w, code, map[string]any{
		"ok":      true,
		"created": res.Created,
		"status":  res.Status,
		"message": res.Message,
	})
}

// confirmPage is the template model.
type confirmPage struct {
	OK       bool
	Title    string
	Message  string
	CTAURL   string
	CTALabel string
}

var errorTitles = map[apperr.Kind]string{
	apperr.MissingToken: "Token lipsă",
	apperr.InvalidToken: "Link invalid",
	apperr.TokenExpired: "Link expirat",
}

func (c *Component) confirm(w http.ResponseWriter, r *http.Request) {
	err := c.Service.Confirm(r.Context(), r.URL.Query().Get("token"), time.Now())

	code, page := http.StatusOK, confirmPage{
		OK:       true,
		Title:    "Abonarea a fost confirmată",
		Message:  "Mulțumim! De acum primești update-uri despre sesiuni și locuri disponibile.",
		CTAURL:   "/",
		CTALabel: "Înapoi pe site",
	}
	if err != nil {
		if ve, ok := apperr.AsValidation(err); ok {
			code, page = http.StatusBadRequest, confirmPage{Title: errorTitles[ve.Kind], Message: ve.Message}
		} else {
			logger.FromContext(r.Context()).Errorw("newsletter confirm failed", "err", err)
			code, page = http.StatusInternalServerError, confirmPage{
				Title:   "Eroare",
				Message: "A apărut o eroare. Încearcă din nou mai târziu.",
			}
		}
	}

	if err := view.Render(w, code, confirmTemplate, page); err != nil {
		httpx.Internal(w, r, "render confirm page", err)
	}
}

// emailFrom decodes {"email": ...}.  An empty body is an empty object; a
// non-string email reads as empty.
func emailFrom(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", true
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil || m == nil {
		return "", false
	}
	s, _ := m["email"].(string)
	return s, true
}

func metaFrom(r *http.Request) RequestMeta {
	meta := RequestMeta{BaseURL: httpx.BaseURL(r)}
	if info := requestinfo.FromContext(r.Context()); info != nil {
		meta.IP, meta.UserAgent = info.IP, info.UserAgent
		return meta
	}
	meta.IP, meta.UserAgent = requestinfo.ClientIP(r), r.UserAgent()
	return meta
}
