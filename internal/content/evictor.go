// evictor.go houses the eviction loop for Cache.  Every interval it scans
// the map and removes:
//
//   - hosts idle longer than idleTTL
//   - least-recently-used hosts when the map exceeds maxEntries
//
// Each eviction is logged and updates Prometheus counters.
package content

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/metrics"
)

func (c *Cache) evictLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.evictOnce(c.now())
		}
	}
}

// evictOnce runs one idle pass and one LRU pass.
func (c *Cache) evictOnce(now time.Time) {
	var count int

	// ----------------------------------------------------------------
	// Idle eviction pass
	// ----------------------------------------------------------------
	c.m.Range(func(key, value any) bool {
		ent := value.(*entry)
		idle := now.Sub(time.Unix(0, atomic.LoadInt64(&ent.lastSeen)))
		if idle > c.idleTTL {
			c.evict(key.(string), "idle", idle)
			return true
		}
		count++
		return true
	})

	// ----------------------------------------------------------------
	// LRU eviction pass
	// ----------------------------------------------------------------
	if c.maxEntries <= 0 || count <= c.maxEntries {
		return
	}
	type kv struct {
		key string
		at  int64
	}
	all := make([]kv, 0, count)
	c.m.Range(func(key, value any) bool {
		all = append(all, kv{key: key.(string), at: atomic.LoadInt64(&value.(*entry).lastSeen)})
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })
	for i := 0; i < len(all)-c.maxEntries; i++ {
		c.evict(all[i].key, "lru", now.Sub(time.Unix(0, all[i].at)))
	}
}

func (c *Cache) evict(host, reason string, idle time.Duration) {
	if _, ok := c.m.LoadAndDelete(host); !ok {
		return
	}
	c.log.Infow("site content evicted", "host", host, "reason", reason, "idle", idle.Truncate(time.Second))
	metrics.SiteEvictTotal.Inc()
	metrics.ActiveSites.Dec()
}
