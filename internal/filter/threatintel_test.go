package filter

import (
	"context"
	"testing"
	"time"
)

func TestThreatIntelCacheLookup(t *testing.T) {
	cache := NewThreatIntelCache(10, fakeSource{known: map[string]bool{"evil.com": true}})
	if !cache.Lookup("evil.com") {
		t.Error("expected evil.com to be malicious")
	}
	if cache.Lookup("good.com") {
		t.Error("expected good.com to be clean")
	}
}

type countingSource struct {
	calls int
	known map[string]bool
}

func (c *countingSource) Lookup(ctx context.Context, indicator string) (bool, error) {
	c.calls++
	return c.known[indicator], nil
}

func TestThreatIntelCacheDoesNotRefreshWithinWindow(t *testing.T) {
	src := &countingSource{known: map[string]bool{"evil.com": true}}
	cache := NewThreatIntelCache(10, src)

	cache.Lookup("evil.com")
	cache.Lookup("evil.com")
	cache.Lookup("evil.com")

	if src.calls != 1 {
		t.Errorf("source called %d times, want 1 (cached within refresh window)", src.calls)
	}
}

func TestThreatIntelCacheRefreshesAfterWindow(t *testing.T) {
	src := &countingSource{known: map[string]bool{"evil.com": true}}
	cache := NewThreatIntelCache(10, src)
	cache.Lookup("evil.com")

	cache.mu.Lock()
	entry, _ := cache.lru.Get("evil.com")
	entry.checkedAt = time.Now().Add(-refreshInterval - time.Second)
	cache.lru.Add("evil.com", entry)
	cache.mu.Unlock()

	cache.Lookup("evil.com")
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2 (stale entry should refresh)", src.calls)
	}
}

func TestPlaceholderSourceKnownIndicators(t *testing.T) {
	src := PlaceholderSource{}
	for _, indicator := range []string{"evil.com", "malware.exe", "backdoor.dll", "c2server.net", "192.168.1.666"} {
		malicious, err := src.Lookup(context.Background(), indicator)
		if err != nil || !malicious {
			t.Errorf("expected %q to be malicious, got %v, err=%v", indicator, malicious, err)
		}
	}
	if malicious, _ := src.Lookup(context.Background(), "example.com"); malicious {
		t.Error("unexpected malicious verdict for example.com")
	}
}
