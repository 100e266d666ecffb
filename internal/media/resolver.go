// internal/media/resolver.go
//
// Image reference → URL resolution.
//
// Context
//   Site settings and journal rows store images as references: either an
//   absolute URL pasted by an editor or an object key such as
//   "images/hero.jpg".  Resolvers turn a reference into the URL the
//   frontend can load, or nil when there is nothing to show, so JSON
//   renders `null` for missing images.
//
//------------------------------------------------------------------------------

package media

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/config"
)

// Resolver maps a stored reference to a public URL.
type Resolver interface {
	URL(ctx context.Context, ref string) *string
}

// PublicResolver joins keys onto a public base URL (CDN or bucket website).
type PublicResolver struct {
	BaseURL string
}

// URL returns nil for blank refs, passes absolute URLs through, and joins
// everything else onto BaseURL.  Without a BaseURL the key is returned
// rooted at "/".
func (p PublicResolver) URL(_ context.Context, ref string) *string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if isAbsolute(ref) {
		return &ref
	}
	base := strings.TrimRight(p.BaseURL, "/")
	u := base + "/" + strings.TrimLeft(ref, "/")
	return &u
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "//")
}

// New builds the resolver selected by cfg.Backend.
func New(ctx context.Context, cfg config.Media, log *zap.SugaredLogger) (Resolver, error) {
	if cfg.Backend == "s3" {
		r, err := NewS3Resolver(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Infow("media resolver online", "backend", "s3", "bucket", cfg.S3Bucket, "ttl", cfg.PresignTTL)
		return r, nil
	}
	log.Infow("media resolver online", "backend", "public", "base_url", cfg.BaseURL)
	return PublicResolver{BaseURL: cfg.BaseURL}, nil
}
