// internal/content/cache.go
//
// Lazy per-host content cache.
//
// Context
// -------
// The first request for a host loads the site row and its settings, then
// stores them in a sync.Map.  Concurrent cold requests for the same host
// collapse into one load through singleflight.  Entries older than MaxAge
// are reloaded on the next request so editor changes show up without a
// restart; if that reload fails the stale copy keeps serving.  The
// evictor (evictor.go) drops hosts that have been idle longer than IdleTTL.
//
// Notes
// -----
//   - Loads run detached from the triggering request's cancellation so
//     one aborted client does not fail every waiter.
//   - Hits, loads, errors, and evictions are Prometheus counters.

package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/metrics"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/site"
)

// ErrNotFound is returned when the host has no active site row.
var ErrNotFound = site.ErrNotFound

// Static defaults used when Options leaves a field zero.
const (
	DefaultIdleTTL       = 30 * time.Minute
	DefaultMaxAge        = 5 * time.Minute
	DefaultMaxEntries    = 100
	DefaultEvictInterval = 5 * time.Minute
	loadTimeout          = 10 * time.Second
)

// Loader produces the content for one lookup host.
type Loader func(ctx context.Context, host string) (*Site, error)

// Options tunes a Cache.
type Options struct {
	IdleTTL       time.Duration
	MaxAge        time.Duration
	MaxEntries    int
	EvictInterval time.Duration
	Log           *zap.SugaredLogger
}

// Cache lazily loads sites, stores them in a sync.Map, and evicts them on
// idle TTL or LRU pressure.
type Cache struct {
	load       Loader
	sfg        singleflight.Group
	m          sync.Map
	idleTTL    time.Duration
	maxAge     time.Duration
	maxEntries int
	log        *zap.SugaredLogger

	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

type entry struct {
	site     *Site
	loadedAt time.Time
	lastSeen int64 // unix nanos, atomic
}

// NewCache constructs a Cache and starts the background evictor.
func NewCache(load Loader, opts Options) *Cache {
	c := &Cache{
		load:       load,
		idleTTL:    orDuration(opts.IdleTTL, DefaultIdleTTL),
		maxAge:     orDuration(opts.MaxAge, DefaultMaxAge),
		maxEntries: opts.MaxEntries,
		log:        opts.Log,
		stop:       make(chan struct{}),
		now:        time.Now,
	}
	if c.maxEntries == 0 {
		c.maxEntries = DefaultMaxEntries
	}
	if c.log == nil {
		c.log = zap.S()
	}
	go c.evictLoop(orDuration(opts.EvictInterval, DefaultEvictInterval))
	return c
}

// Close stops the evictor.  Safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Get returns the Site for host, loading it on demand.
func (c *Cache) Get(ctx context.Context, host string) (*Site, error) {
	now := c.now()
	if v, ok := c.m.Load(host); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, now.UnixNano())
		if now.Sub(ent.loadedAt) < c.maxAge {
			metrics.SiteCacheHitsTotal.Inc()
			return ent.site, nil
		}
	}

	v, err, _ := c.sfg.Do(host, func() (any, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(host); ok {
			if ent := v.(*entry); c.now().Sub(ent.loadedAt) < c.maxAge {
				return ent.site, nil
			}
		}

		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		s, err := c.load(lctx, host)
		if err != nil {
			return c.loadFailed(host, err)
		}

		ent := &entry{site: s, loadedAt: c.now(), lastSeen: c.now().UnixNano()}
		if _, existed := c.m.Swap(host, ent); !existed {
			metrics.ActiveSites.Inc()
			c.log.Infow("site content loaded", "host", host, "site_id", s.Record.ID, "settings", len(s.Settings))
		}
		metrics.SiteLoadTotal.Inc()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Site), nil
}

// loadFailed decides between serving a stale entry and surfacing err.
func (c *Cache) loadFailed(host string, err error) (any, error) {
	if errors.Is(err, ErrNotFound) {
		if _, existed := c.m.LoadAndDelete(host); existed {
			metrics.ActiveSites.Dec()
		}
		return nil, ErrNotFound
	}
	metrics.SiteLoadErrorsTotal.Inc()
	if v, ok := c.m.Load(host); ok {
		c.log.Warnw("site content reload failed, serving stale copy", "host", host, "err", err)
		return v.(*entry).site, nil
	}
	return nil, err
}

// Len reports how many hosts are cached.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool { n++; return true })
	return n
}

func orDuration(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}
