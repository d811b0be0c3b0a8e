package filter

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Source is the only contract a threat-intel backing feed must satisfy
// (spec.md: "backing source is out of scope; lookup is the only
// contract").
type Source interface {
	Lookup(ctx context.Context, indicator string) (bool, error)
}

// refreshInterval throttles re-checking an indicator already in cache,
// matching tg_threat_intel_lookup's 900s refresh window.
const refreshInterval = 900 * time.Second

type cacheEntry struct {
	malicious bool
	checkedAt time.Time
}

// ThreatIntelCache is a size-bounded, LRU-evicted indicator -> malicious
// mapping, lazily populated from Source on a miss or a stale hit.
type ThreatIntelCache struct {
	mu     sync.Mutex
	lru    *lru.Cache[string, cacheEntry]
	source Source
}

// NewThreatIntelCache builds a cache bounded to size entries, backed by src.
func NewThreatIntelCache(size int, src Source) *ThreatIntelCache {
	c, _ := lru.New[string, cacheEntry](size)
	return &ThreatIntelCache{lru: c, source: src}
}

// Lookup reports whether indicator is known-malicious, refreshing from the
// backing Source when absent or stale.
func (c *ThreatIntelCache) Lookup(indicator string) bool {
	c.mu.Lock()
	entry, ok := c.lru.Get(indicator)
	c.mu.Unlock()

	if ok && time.Since(entry.checkedAt) < refreshInterval {
		return entry.malicious
	}

	malicious, err := c.source.Lookup(context.Background(), indicator)
	if err != nil {
		// A lookup failure keeps any previous verdict rather than
		// treating a transient error as a negative result.
		if ok {
			return entry.malicious
		}
		return false
	}

	c.mu.Lock()
	c.lru.Add(indicator, cacheEntry{malicious: malicious, checkedAt: time.Now()})
	c.mu.Unlock()

	return malicious
}

// PlaceholderSource is a reference Source implementation checking a fixed
// indicator list, standing in for a real feed client per spec.md §9.
// Lifted from tg_threat_intel_lookup's placeholder set.
type PlaceholderSource struct{}

var placeholderIndicators = map[string]bool{
	"192.168.1.666": true,
	"evil.com":      true,
	"malware.exe":   true,
	"backdoor.dll":  true,
	"c2server.net":  true,
}

func (PlaceholderSource) Lookup(ctx context.Context, indicator string) (bool, error) {
	return placeholderIndicators[indicator], nil
}
