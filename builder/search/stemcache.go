package search

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Kush-Singh-26/stemr/builder/metrics"
	"github.com/Kush-Singh-26/stemr/porter2"
)

// Stem cache defaults, overridable through ConfigureStemCache.
const (
	DefaultStemCacheTTL  = 30 * time.Minute
	DefaultStemCacheSize = 100000
)

// stemMemo memoizes porter2.Stem across goroutines. The size limit is soft:
// reaching it flushes the whole cache.
type stemMemo struct {
	mu    sync.RWMutex
	items *cache.Cache
	limit int
}

var stems = newStemMemo(DefaultStemCacheTTL, DefaultStemCacheSize)

func newStemMemo(ttl time.Duration, limit int) *stemMemo {
	return &stemMemo{
		items: cache.New(ttl, ttl*2),
		limit: limit,
	}
}

// ConfigureStemCache replaces the process-wide stem cache. A non-positive
// limit disables the size bound.
func ConfigureStemCache(ttl time.Duration, limit int) {
	if ttl <= 0 {
		ttl = DefaultStemCacheTTL
	}
	fresh := newStemMemo(ttl, limit)

	stems.mu.Lock()
	stems.items = fresh.items
	stems.limit = fresh.limit
	stems.mu.Unlock()
}

// StemCached returns porter2.Stem(word), consulting the shared cache first.
func StemCached(word string) string {
	stems.mu.RLock()
	items, limit := stems.items, stems.limit
	stems.mu.RUnlock()

	if v, ok := items.Get(word); ok {
		metrics.Stems.Hits.Inc()
		return v.(string)
	}
	metrics.Stems.Misses.Inc()

	stem := porter2.Stem(word)
	if limit > 0 && items.ItemCount() >= limit {
		items.Flush()
	}
	items.Set(word, stem, cache.DefaultExpiration)
	return stem
}

// StemCacheSize returns the number of memoized stems, expired or not.
func StemCacheSize() int {
	stems.mu.RLock()
	defer stems.mu.RUnlock()
	return stems.items.ItemCount()
}
