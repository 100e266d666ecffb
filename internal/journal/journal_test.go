package journal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/content"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/media"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/site"
)

type fakeReader struct {
	index    *Index
	articles []Article
}

func (f *fakeReader) IndexBySite(context.Context, uint64) (*Index, error) { return f.index, nil }
func (f *fakeReader) Articles(context.Context, uint64) ([]Article, error) { return f.articles, nil }
func (f *fakeReader) BySlug(_ context.Context, _ uint64, slug string) (*Article, error) {
	for i := range f.articles {
		if f.articles[i].Slug == slug {
			return &f.articles[i], nil
		}
	}
	return nil, nil
}

func get(c *Component, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(content.WithSite(req.Context(), &content.Site{Record: site.Record{ID: 1}}))
	rec := httptest.NewRecorder()
	c.Routes().ServeHTTP(rec, req)
	return rec
}

func sampleReader() *fakeReader {
	pub := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return &fakeReader{
		index: &Index{Label: "( ARHIVA SCÂNTEIA )", Title: "Jurnal", Subtitle: "— note despre artă", Intro: "Gânduri"},
		articles: []Article{{
			Slug:        "curaj",
			Category:    "FILOSOFIE",
			Title:       "Curaj",
			Excerpt:     "Despre curaj",
			Meta:        "6 min · Atelier",
			HeroImage:   "jurnal/hero.jpg",
			Images:      RefList{"jurnal/hero.jpg", "jurnal/2.jpg", "https://cdn.example.com/3.jpg"},
			Videos:      RefList{"https://youtu.be/x"},
			BodyHTML:    "<p>Text</p>",
			PublishedAt: &pub,
		}},
	}
}

func TestListAndDetail(t *testing.T) {
	c := &Component{Reader: sampleReader(), Media: media.PublicResolver{BaseURL: "https://media.example.com"}}

	rec := get(c, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
	  "index": {"label":"( ARHIVA SCÂNTEIA )","title":"Jurnal","subtitle":"— note despre artă","intro":"Gânduri"},
	  "items": [{
	    "slug":"curaj","category":"FILOSOFIE","title":"Curaj",
	    "image":"https://media.example.com/jurnal/hero.jpg",
	    "images":["https://media.example.com/jurnal/hero.jpg","https://media.example.com/jurnal/2.jpg","https://cdn.example.com/3.jpg"],
	    "videos":["https://youtu.be/x"],
	    "excerpt":"Despre curaj","meta":"6 min · Atelier"
	  }]
	}`, rec.Body.String())

	rec = get(c, "/curaj/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"body_html":"<p>Text</p>"`)

	rec = get(c, "/nope/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":null}`, rec.Body.String())
}

func TestNoIndex(t *testing.T) {
	c := &Component{Reader: &fakeReader{}, Media: media.PublicResolver{}}

	rec := get(c, "/")
	assert.JSONEq(t, `{"index":null,"items":[]}`, rec.Body.String())

	rec = get(c, "/anything/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMissingHeroIsNull(t *testing.T) {
	r := sampleReader()
	r.articles[0].HeroImage = ""
	r.articles[0].Videos = nil
	c := &Component{Reader: r, Media: media.PublicResolver{BaseURL: "https://m"}}

	rec := get(c, "/curaj/")
	assert.Contains(t, rec.Body.String(), `"image":null`)
	assert.Contains(t, rec.Body.String(), `"videos":[]`)
}

func TestSitemapAndRobots(t *testing.T) {
	c := &Component{Reader: sampleReader(), Media: media.PublicResolver{}}

	req := httptest.NewRequest(http.MethodGet, "http://atelierelascanteia.ro/sitemap.xml", nil)
	req = req.WithContext(content.WithSite(req.Context(), &content.Site{Record: site.Record{ID: 1}}))
	rec := httptest.NewRecorder()
	c.Sitemap(rec, req)
	assert.Contains(t, rec.Body.String(), "<loc>http://atelierelascanteia.ro/jurnal/curaj/</loc>")
	assert.Contains(t, rec.Body.String(), "<lastmod>2026-02-01</lastmod>")

	rec = httptest.NewRecorder()
	c.Robots(rec, httptest.NewRequest(http.MethodGet, "http://atelierelascanteia.ro/robots.txt", nil))
	assert.Contains(t, rec.Body.String(), "Sitemap: http://atelierelascanteia.ro/sitemap.xml")
}

func TestRefListScan(t *testing.T) {
	var l RefList
	require.NoError(t, l.Scan([]byte(`["a.jpg", " ", {"type":"video","value":"https://v"}, {"image":"b.jpg"}, 7]`)))
	assert.Equal(t, RefList{"a.jpg", "https://v", "b.jpg"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	assert.Error(t, l.Scan([]byte(`{`)))
}

func TestRepositoryQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(sqlx.NewDb(db, "sqlmock"))
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM   journal_index")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"site_id", "label", "title", "subtitle", "intro"}))
	idx, err := repo.IndexBySite(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, idx)

	cols := []string{"id", "site_id", "slug", "category", "title", "excerpt", "meta", "hero_image",
		"body_html", "images", "videos", "published_at"}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER  BY published_at DESC")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 1, "a", "C", "T", "E", "M", "h.jpg", "", []byte(`["g.jpg"]`), nil, time.Now()))
	list, err := repo.Articles(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, RefList{"g.jpg"}, list[0].Images)
	assert.Nil(t, list[0].Videos)

	mock.ExpectQuery(regexp.QuoteMeta("slug = ?")).
		WithArgs(uint64(1), "zzz").
		WillReturnRows(sqlmock.NewRows(cols))
	a, err := repo.BySlug(ctx, 1, "zzz")
	require.NoError(t, err)
	assert.Nil(t, a)

	assert.NoError(t, mock.ExpectationsWereMet())
}
