package config

import (
	"time"
)

// BuildConfig contains all tunable indexing and search parameters.
// These can be overridden in stemr.yaml.
type BuildConfig struct {
	// Worker settings
	MaxWorkers int `yaml:"maxWorkers"` // Upper bound for Workers (default: 32)
	Workers    int `yaml:"workers"`    // Analysis workers (default: 12)

	// Analyzer settings
	StopWords     bool          `yaml:"stopWords"`     // Drop English stop words (default: true)
	Stemming      bool          `yaml:"stemming"`      // Apply Porter2 (default: true)
	StemCacheTTL  time.Duration `yaml:"stemCacheTTL"`  // Stem memo entry lifetime (default: 30m)
	StemCacheSize int           `yaml:"stemCacheSize"` // Soft bound on memoized stems (default: 100000)

	// Timeouts
	DebounceDuration time.Duration `yaml:"debounceDuration"` // File watcher debounce (default: 500ms)
	CacheDBTimeout   time.Duration `yaml:"cacheDBTimeout"`   // BoltDB lock timeout (default: 10s)

	// Search settings
	ScoreTitleMatch    float64 `yaml:"scoreTitleMatch"`    // Title match boost (default: 10.0)
	ScoreTagMatch      float64 `yaml:"scoreTagMatch"`      // Tag match boost (default: 5.0)
	ScorePhraseMatch   float64 `yaml:"scorePhraseMatch"`   // Phrase match score (default: 15.0)
	ScoreFuzzyModifier float64 `yaml:"scoreFuzzyModifier"` // Fuzzy match weight (default: 0.7)
	MaxEditDistance    int     `yaml:"maxEditDistance"`    // Max fuzzy edit distance (default: 2)
	MaxResults         int     `yaml:"maxResults"`         // Results per query (default: 10)
}

// DefaultBuildConfig returns the default build configuration
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MaxWorkers: 32,
		Workers:    12,

		StopWords:     true,
		Stemming:      true,
		StemCacheTTL:  30 * time.Minute,
		StemCacheSize: 100000,

		DebounceDuration: 500 * time.Millisecond,
		CacheDBTimeout:   10 * time.Second,

		ScoreTitleMatch:    10.0,
		ScoreTagMatch:      5.0,
		ScorePhraseMatch:   15.0,
		ScoreFuzzyModifier: 0.7,
		MaxEditDistance:    2,
		MaxResults:         10,
	}
}

// validate ensures configuration values are within reasonable bounds
func (c *BuildConfig) validate() {
	// Workers
	c.MaxWorkers = clamp(c.MaxWorkers, 1, 256)
	c.Workers = clamp(c.Workers, 1, c.MaxWorkers)

	// Stem cache
	if c.StemCacheTTL < time.Second {
		c.StemCacheTTL = time.Second
	}
	c.StemCacheSize = clamp(c.StemCacheSize, 1000, 10000000)

	// Timeouts
	c.DebounceDuration = clamp(c.DebounceDuration, 10*time.Millisecond, 5*time.Second)
	if c.CacheDBTimeout < time.Second {
		c.CacheDBTimeout = time.Second
	}

	// Search
	c.MaxEditDistance = clamp(c.MaxEditDistance, 0, 4)
	c.MaxResults = clamp(c.MaxResults, 1, 1000)
	c.ScoreFuzzyModifier = clamp(c.ScoreFuzzyModifier, 0, 1)
	c.ScoreTitleMatch = max(c.ScoreTitleMatch, 0)
	c.ScoreTagMatch = max(c.ScoreTagMatch, 0)
	c.ScorePhraseMatch = max(c.ScorePhraseMatch, 0)
}

func clamp[T int | float64 | time.Duration](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
