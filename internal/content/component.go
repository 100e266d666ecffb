// internal/content/component.go
//
// Main page component: GET /api/mainpage/.

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpx"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/media"
)

// Component serves the main page document for the request's site.
type Component struct {
	Media media.Resolver
}

func (c *Component) Name() string { return "mainpage" }

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	r.Get("/", c.mainPage)
	return r
}

func (c *Component) mainPage(w http.ResponseWriter, r *http.Request) {
	s := FromContext(r.Context())
	if s == nil {
		httpx.NotFound(w, r)
		return
	}
	httpx.JSON(w, http.StatusOK, BuildMainPage(r.Context(), s.Settings, c.Media))
}
