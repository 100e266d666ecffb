// internal/journal/component.go
//
// Journal component, mounted at /api/jurnal.
//
//   GET /         → {"index": {...} | null, "items": [...]}
//   GET /{slug}/  → {"detail": {...}} or 404 {"detail": null}
//
// Without a live index the archive is empty and every slug is a 404.

package journal

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/content"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpx"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/media"
)

// Component serves journal JSON for the request's site.
type Component struct {
	Reader Reader
	Media  media.Resolver
}

func (c *Component) Name() string { return "jurnal" }

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	r.Get("/", c.list)
	r.Get("/{slug}/", c.detail)
	return r
}

type indexJSON struct {
	Label    string `json:"label"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Intro    string `json:"intro"`
}

type itemJSON struct {
	Slug     string   `json:"slug"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Image    *string  `json:"image"`
	Images   []string `json:"images"`
	Videos   []string `json:"videos"`
	Excerpt  string   `json:"excerpt"`
	Meta     string   `json:"meta"`
}

type detailJSON struct {
	itemJSON
	BodyHTML string `json:"body_html"`
}

func (c *Component) list(w http.ResponseWriter, r *http.Request) {
	s := content.FromContext(r.Context())
	if s == nil {
		httpx.NotFound(w, r)
		return
	}
	idx, err := c.Reader.IndexBySite(r.Context(), s.Record.ID)
	if err != nil {
		httpx.Internal(w, r, "journal index failed", err)
		return
	}
	if idx == nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"index": nil, "items": []itemJSON{}})
		return
	}

	articles, err := c.Reader.Articles(r.Context(), s.Record.ID)
	if err != nil {
		httpx.Internal(w, r, "journal list failed", err)
		return
	}
	items := make([]itemJSON, 0, len(articles))
	for i := range articles {
		items = append(items, c.item(r.Context(), &articles[i]))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"index": indexJSON{Label: idx.Label, Title: idx.Title, Subtitle: idx.Subtitle, Intro: idx.Intro},
		"items": items,
	})
}

func (c *Component) detail(w http.ResponseWriter, r *http.Request) {
	s := content.FromContext(r.Context())
	if s == nil {
		httpx.JSON(w, http.StatusNotFound, map[string]any{"detail": nil})
		return
	}
	idx, err := c.Reader.IndexBySite(r.Context(), s.Record.ID)
	if err != nil {
		httpx.Internal(w, r, "journal index failed", err)
		return
	}
	if idx == nil {
		httpx.JSON(w, http.StatusNotFound, map[string]any{"detail": nil})
		return
	}

	a, err := c.Reader.BySlug(r.Context(), s.Record.ID, chi.URLParam(r, "slug"))
	if err != nil {
		httpx.Internal(w, r, "journal detail failed", err)
		return
	}
	if a == nil {
		httpx.JSON(w, http.StatusNotFound, map[string]any{"detail": nil})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"detail": detailJSON{itemJSON: c.item(r.Context(), a), BodyHTML: a.BodyHTML},
	})
}

func (c *Component) item(ctx context.Context, a *Article) itemJSON {
	return itemJSON{
		Slug:     a.Slug,
		Category: a.Category,
		Title:    a.Title,
		Image:    c.Media.URL(ctx, a.HeroImage),
		Images:   c.images(ctx, a),
		Videos:   videos(a),
		Excerpt:  a.Excerpt,
		Meta:     a.Meta,
	}
}

// images lists the hero image first, then gallery images, without repeats.
func (c *Component) images(ctx context.Context, a *Article) []string {
	out := make([]string, 0, len(a.Images)+1)
	seen := map[string]bool{}
	add := func(ref string) {
		u := c.Media.URL(ctx, ref)
		if u == nil || seen[*u] {
			return
		}
		seen[*u] = true
		out = append(out, *u)
	}
	add(a.HeroImage)
	for _, ref := range a.Images {
		add(ref)
	}
	return out
}

func videos(a *Article) []string {
	if a.Videos == nil {
		return []string{}
	}
	return a.Videos
}
