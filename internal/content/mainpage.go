// internal/content/mainpage.go
//
// Main page document.
//
// Context
//   The React frontend renders the single-page site from one JSON document
//   with five sections.  Every text field comes from the site settings and
//   falls back to the built-in copy in defaults.yaml when the key is
//   absent.  Image fields hold references that the media resolver turns
//   into URLs or null.
//
//   The philosophy section keeps one free-text field.  It is split on blank
//   lines: the first block is the intro, the second paragraph_1, and the
//   rest is joined back as paragraph_2.  Sites that still carry the three
//   legacy fields are joined first and then split the same way.
//
//------------------------------------------------------------------------------

package content

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/media"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var defaultCopy = mustDefaults()

func mustDefaults() map[string]string {
	m := map[string]string{}
	if err := yaml.Unmarshal(defaultsYAML, &m); err != nil {
		panic(fmt.Sprintf("content: defaults.yaml: %v", err))
	}
	return m
}

var blankLines = regexp.MustCompile(`\n\s*\n+`)

/*──────────────────────────── document types ───────────────────────────────*/

type MainPage struct {
	Hero         Hero         `json:"hero"`
	Spatiul      Spatiul      `json:"spatiul"`
	Filosofie    Filosofie    `json:"filosofie"`
	Testimoniale Testimoniale `json:"testimoniale"`
	Manifest     Manifest     `json:"manifest"`
}

type Hero struct {
	Kicker   string  `json:"kicker"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	BgImage  *string `json:"bg_image"`
}

type Stat struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Sublabel string `json:"sublabel"`
}

type Spatiul struct {
	Label          string  `json:"label"`
	Title          string  `json:"title"`
	Paragraph      string  `json:"paragraph"`
	SEOBlurb       string  `json:"seo_blurb"`
	HiddenKeywords string  `json:"hidden_keywords"`
	Image1         *string `json:"image_1"`
	Quote          string  `json:"quote"`
	Stats          []Stat  `json:"stats"`
}

type Filosofie struct {
	Label      string  `json:"label"`
	TitleLine1 string  `json:"title_line_1"`
	TitleLine2 string  `json:"title_line_2"`
	Intro      string  `json:"intro"`
	Paragraph1 string  `json:"paragraph_1"`
	Paragraph2 string  `json:"paragraph_2"`
	CTAText    string  `json:"cta_text"`
	Image2     *string `json:"image_2"`
	Quote      string  `json:"quote"`
}

type Testimonial struct {
	Quote string `json:"quote"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Testimoniale struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

type Card struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Manifest struct {
	Label string `json:"label"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Cards []Card `json:"cards"`
}

/*──────────────────────────── builder ──────────────────────────────────────*/

// BuildMainPage assembles the document from settings.
func BuildMainPage(ctx context.Context, s Settings, res media.Resolver) MainPage {
	get := func(key string) string { return s.String(key, defaultCopy[key]) }
	img := func(key string) *string { return res.URL(ctx, get(key)) }

	stats := make([]Stat, 3)
	for i := range stats {
		n := i + 1
		stats[i] = Stat{
			Value:    get(fmt.Sprintf("spatiul_stat_%d_value", n)),
			Label:    get(fmt.Sprintf("spatiul_stat_%d_label", n)),
			Sublabel: get(fmt.Sprintf("spatiul_stat_%d_sublabel", n)),
		}
	}

	testimonials := make([]Testimonial, 5)
	for i := range testimonials {
		n := i + 1
		testimonials[i] = Testimonial{
			Quote: get(fmt.Sprintf("testimonial_%d_quote", n)),
			Name:  get(fmt.Sprintf("testimonial_%d_name", n)),
			Role:  get(fmt.Sprintf("testimonial_%d_role", n)),
		}
	}

	cards := make([]Card, 3)
	for i := range cards {
		n := i + 1
		cards[i] = Card{
			Title: get(fmt.Sprintf("manifest_card_%d_title", n)),
			Text:  get(fmt.Sprintf("manifest_card_%d_text", n)),
		}
	}

	intro, p1, p2 := SplitPhilosophy(
		get("filosofie_paragraph"),
		get("filosofie_intro"),
		get("filosofie_paragraph_1"),
		get("filosofie_paragraph_2"),
	)

	return MainPage{
		Hero: Hero{
			Kicker:   get("hero_kicker"),
			Title:    get("hero_title"),
			Subtitle: get("hero_subtitle"),
			BgImage:  img("hero_bg_image"),
		},
		Spatiul: Spatiul{
			Label:          get("spatiul_label"),
			Title:          get("spatiul_title"),
			Paragraph:      get("spatiul_paragraph"),
			SEOBlurb:       get("spatiul_seo_blurb"),
			HiddenKeywords: get("spatiul_hidden_keywords"),
			Image1:         img("spatiul_image_1"),
			Quote:          get("spatiul_quote"),
			Stats:          stats,
		},
		Filosofie: Filosofie{
			Label:      get("filosofie_label"),
			TitleLine1: get("filosofie_title_line_1"),
			TitleLine2: get("filosofie_title_line_2"),
			Intro:      intro,
			Paragraph1: p1,
			Paragraph2: p2,
			CTAText:    get("filosofie_cta_text"),
			Image2:     img("filosofie_image_2"),
			Quote:      get("filosofie_quote"),
		},
		Testimoniale: Testimoniale{
			Title: get("testimoniale_title"),
			Items: testimonials,
		},
		Manifest: Manifest{
			Label: get("manifest_label"),
			Title: get("manifest_title"),
			Text:  get("manifest_text"),
			Cards: cards,
		},
	}
}

// SplitPhilosophy returns intro, paragraph_1, and paragraph_2.  The single
// field wins when non-blank; otherwise the legacy fields are joined.
func SplitPhilosophy(single, legacyIntro, legacyP1, legacyP2 string) (string, string, string) {
	raw := strings.TrimSpace(single)
	if raw == "" {
		raw = strings.TrimSpace(strings.Join([]string{
			strings.TrimSpace(legacyIntro),
			strings.TrimSpace(legacyP1),
			strings.TrimSpace(legacyP2),
		}, "\n\n"))
	}

	var parts []string
	for _, p := range blankLines.Split(raw, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var intro, p1, p2 string
	if len(parts) > 0 {
		intro = parts[0]
	}
	if len(parts) > 1 {
		p1 = parts[1]
	}
	if len(parts) > 2 {
		p2 = strings.Join(parts[2:], "\n\n")
	}
	return intro, p1, p2
}
