// Package metrics tracks index build and stemming counters.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// BuildMetrics tracks performance data during an index build.
// Counters may be updated from any worker goroutine.
type BuildMetrics struct {
	// Timing
	StartTime     time.Time
	EndTime       time.Time
	AnalyzeTime   atomic.Duration
	CacheLoadTime atomic.Duration
	CacheSaveTime atomic.Duration

	// Counters
	DocsIndexed  atomic.Int64
	DocsSkipped  atomic.Int64
	WordsStemmed atomic.Int64
	CacheHits    atomic.Int64
	CacheMisses  atomic.Int64

	// Incremental build info
	IsIncremental bool
	ChangedFiles  []string
	changedMu     sync.Mutex
}

// NewBuildMetrics creates a new metrics instance.
func NewBuildMetrics() *BuildMetrics {
	return &BuildMetrics{
		StartTime: time.Now(),
	}
}

// RecordEnd marks the end of the build.
func (m *BuildMetrics) RecordEnd() {
	m.EndTime = time.Now()
}

// TotalDuration returns the total build duration.
func (m *BuildMetrics) TotalDuration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// CacheHitRate returns the cache hit percentage.
func (m *BuildMetrics) CacheHitRate() float64 {
	hits := m.CacheHits.Load()
	total := hits + m.CacheMisses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// IncrementDocsIndexed increments the indexed documents counter.
func (m *BuildMetrics) IncrementDocsIndexed() {
	m.DocsIndexed.Inc()
}

// IncrementCacheHit increments the cache hit counter.
func (m *BuildMetrics) IncrementCacheHit() {
	m.CacheHits.Inc()
}

// IncrementCacheMiss increments the cache miss counter.
func (m *BuildMetrics) IncrementCacheMiss() {
	m.CacheMisses.Inc()
}

// ChangedFile records a document that had to be re-analyzed.
func (m *BuildMetrics) ChangedFile(path string) {
	m.changedMu.Lock()
	m.ChangedFiles = append(m.ChangedFiles, path)
	m.changedMu.Unlock()
}

// AddWordsStemmed adds n to the stemmed word counter.
func (m *BuildMetrics) AddWordsStemmed(n int) {
	m.WordsStemmed.Add(int64(n))
}

// String returns a formatted summary of the build metrics (minimal single-line format).
func (m *BuildMetrics) String() string {
	hits := m.CacheHits.Load()
	total := hits + m.CacheMisses.Load()

	return fmt.Sprintf("📊 Indexed %d documents, %d words stemmed in %v (cache: %d/%d hits, %.0f%%)\n",
		m.DocsIndexed.Load(),
		m.WordsStemmed.Load(),
		m.TotalDuration(),
		hits,
		total,
		m.CacheHitRate(),
	)
}

// Print outputs the metrics to stdout.
func (m *BuildMetrics) Print() {
	fmt.Println(m.String())
}

// StemCounters counts lookups against the process-wide stem cache.
type StemCounters struct {
	Hits   atomic.Int64
	Misses atomic.Int64
}

// HitRate returns the stem cache hit percentage.
func (c *StemCounters) HitRate() float64 {
	hits := c.Hits.Load()
	total := hits + c.Misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Reset zeroes both counters.
func (c *StemCounters) Reset() {
	c.Hits.Store(0)
	c.Misses.Store(0)
}

// Stems is the shared stem cache counter set.
var Stems StemCounters
