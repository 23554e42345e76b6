package cache

// BoltDB bucket names
const (
	BucketDocs   = "docs"   // {DocID} -> DocMeta
	BucketPaths  = "paths"  // {normalized path} -> DocID
	BucketSearch = "search" // {DocID} -> SearchRecord

	// Global metadata
	BucketMeta  = "meta"  // schema_version, cache_id
	BucketStats = "stats" // build_count, last_build, last_gc

	KeySchemaVersion = "schema_version"
	KeyCacheID       = "cache_id"
	KeyBuildCount    = "build_count"
	KeyLastBuild     = "last_build"
	KeyLastGC        = "last_gc"
)

// CategoryText is the store category holding raw document text.
const CategoryText = "text"

// AllBuckets returns all bucket names for initialization
func AllBuckets() []string {
	return []string{
		BucketDocs,
		BucketPaths,
		BucketSearch,
		BucketMeta,
		BucketStats,
	}
}
