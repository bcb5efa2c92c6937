package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultMaxCacheEntries = 4096

// Cached operation names, used as key prefixes
const (
	opAnalysis    = "analysis"
	opNormalize   = "normalize"
	opWords       = "words"
	opSentences   = "sentences"
	opKeywords    = "keywords"
	opThemes      = "themes"
	opRegional    = "regional"
	opQuality     = "quality"
	opReadability = "readability"
)

// memoCache is a bounded LRU of computed results with an approximate
// memory footprint. It is safe for concurrent use.
type memoCache struct {
	entries    *lru.Cache[string, cacheEntry]
	maxEntries int
	bytes      atomic.Int64
	hits       atomic.Int64
	misses     atomic.Int64
}

type cacheEntry struct {
	value any
	size  int64
}

func newMemoCache(maxEntries int) (*memoCache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	c := &memoCache{maxEntries: maxEntries}
	entries, err := lru.NewWithEvict[string, cacheEntry](maxEntries, func(key string, e cacheEntry) {
		c.bytes.Add(-(int64(len(key)) + e.size))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	c.entries = entries
	return c, nil
}

func (c *memoCache) get(key string) (any, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.value, true
}

func (c *memoCache) add(key string, value any) {
	e := cacheEntry{value: value, size: sizeOf(value)}
	if found, _ := c.entries.ContainsOrAdd(key, e); !found {
		c.bytes.Add(int64(len(key)) + e.size)
	}
}

func (c *memoCache) contains(key string) bool {
	return c.entries.Contains(key)
}

func (c *memoCache) purge() {
	c.entries.Purge()
}

func (c *memoCache) stats() CacheStats {
	return CacheStats{
		Entries:     c.entries.Len(),
		MaxEntries:  c.maxEntries,
		ApproxBytes: c.bytes.Load(),
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
	}
}

// generateCacheKey creates a unique key for an operation and its inputs.
// Each part is length prefixed so no two input lists hash the same bytes.
func generateCacheKey(op string, parts ...string) string {
	h := md5.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:", len(p))
		h.Write([]byte(p))
	}
	return op + ":" + hex.EncodeToString(h.Sum(nil))
}

// sizeOf approximates the bytes held by a cached value
func sizeOf(value any) int64 {
	switch v := value.(type) {
	case string:
		return int64(len(v))
	case int, int64, float64:
		return 8
	case []string:
		return stringsSize(v)
	case []ThemeCount:
		var n int64
		for _, t := range v {
			n += t.size()
		}
		return n
	case RegionalInfo:
		return stringsSize(v.Cantons) + stringsSize(v.Cities) + stringsSize(v.SwissTerms) + 16
	case ContentAnalysis:
		return int64(len(v.Content)+len(v.Title)) + 80 +
			sizeOf(v.GermanKeywords) + sizeOf(v.BusinessThemes) + sizeOf(v.RegionalInfo)
	}
	return 0
}

func stringsSize(s []string) int64 {
	var n int64
	for _, str := range s {
		n += int64(len(str)) + 16
	}
	return n
}
