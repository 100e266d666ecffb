// internal/journal/sitemap.go
//
// robots.txt and sitemap.xml for the request's site.  The sitemap lists
// the journal index and every live article with its publish date.

package journal

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/content"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpx"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// Sitemap writes sitemap.xml.
func (c *Component) Sitemap(w http.ResponseWriter, r *http.Request) {
	s := content.FromContext(r.Context())
	if s == nil {
		httpx.NotFound(w, r)
		return
	}
	base := httpx.BaseURL(r)
	set := urlset{XMLNS: sitemapNS, URLs: []sitemapURL{}}

	idx, err := c.Reader.IndexBySite(r.Context(), s.Record.ID)
	if err != nil {
		httpx.Internal(w, r, "sitemap index failed", err)
		return
	}
	if idx != nil {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + "/jurnal/", ChangeFreq: "weekly", Priority: 0.6})

		articles, err := c.Reader.Articles(r.Context(), s.Record.ID)
		if err != nil {
			httpx.Internal(w, r, "sitemap articles failed", err)
			return
		}
		for _, a := range articles {
			u := sitemapURL{Loc: base + "/jurnal/" + a.Slug + "/", ChangeFreq: "weekly", Priority: 0.7}
			if a.PublishedAt != nil {
				u.LastMod = a.PublishedAt.UTC().Format("2006-01-02")
			}
			set.URLs = append(set.URLs, u)
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		httpx.Internal(w, r, "sitemap encode failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

// Robots writes robots.txt pointing at the sitemap.
func (c *Component) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", httpx.BaseURL(r))
}
