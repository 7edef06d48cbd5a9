package preview

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheStats reports render cache usage.
type CacheStats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
	Len    int `json:"len"`
}

// renderCache keeps rendered page documents keyed by schema fingerprint and
// navigation history. Callers hold the server lock.
type renderCache struct {
	entries *lru.Cache[string, []byte]
	hits    int
	misses  int
}

func newRenderCache(size int) (*renderCache, error) {
	if size <= 0 {
		return &renderCache{}, nil
	}
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &renderCache{entries: entries}, nil
}

// cacheKey includes the whole history because the rendered document embeds
// it; the current page is its last entry.
func cacheKey(fingerprint string, history []string) string {
	return fingerprint + "|" + strings.Join(history, ",")
}

func (c *renderCache) get(key string) ([]byte, bool) {
	if c.entries == nil {
		return nil, false
	}
	body, ok := c.entries.Get(key)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return body, ok
}

func (c *renderCache) add(key string, body []byte) {
	if c.entries == nil {
		return
	}
	c.entries.Add(key, body)
}

func (c *renderCache) purge() {
	if c.entries != nil {
		c.entries.Purge()
	}
}

func (c *renderCache) stats() CacheStats {
	stats := CacheStats{Hits: c.hits, Misses: c.misses}
	if c.entries != nil {
		stats.Len = c.entries.Len()
	}
	return stats
}
