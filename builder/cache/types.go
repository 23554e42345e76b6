// Package cache persists per-document analysis results between index builds.
// Metadata lives in BoltDB; raw document text lives in a content-addressed
// store on disk.
package cache

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"
)

// ErrNotFound is returned when a lookup has no cached entry.
var ErrNotFound = errors.New("cache: not found")

// DocMeta stores metadata about a cached document
type DocMeta struct {
	DocID       string   `msgpack:"doc_id"`
	Path        string   `msgpack:"path"`
	ModTime     int64    `msgpack:"mod_time"`
	ContentHash string   `msgpack:"content_hash"` // BLAKE3 of the source file
	TextHash    string   `msgpack:"text_hash"`    // store key of the extracted text
	Title       string   `msgpack:"title"`
	Description string   `msgpack:"description"`
	Tags        []string `msgpack:"tags"`
	WordCount   int      `msgpack:"word_count"`
	IndexedAt   int64    `msgpack:"indexed_at"`
}

// SearchRecord stores the analyzed terms of a document for BM25
type SearchRecord struct {
	WordFreqs       map[string]int `msgpack:"word_freqs"` // stem -> frequency
	DocLen          int            `msgpack:"doc_len"`
	NormalizedTitle string         `msgpack:"normalized_title"`
	NormalizedTags  []string       `msgpack:"normalized_tags"`
}

// CacheStats holds cache statistics
type CacheStats struct {
	TotalDocs     int   `msgpack:"total_docs"`
	TotalSearch   int   `msgpack:"total_search"`
	StoreBytes    int64 `msgpack:"store_bytes"`
	BuildCount    int   `msgpack:"build_count"`
	SchemaVersion int   `msgpack:"schema_version"`
	LastBuildTime int64 `msgpack:"last_build_time"`
	LastGC        int64 `msgpack:"last_gc"`
}

// CompressionType indicates how a blob is stored
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionZstdFast
	CompressionZstdLevel3
)

// Constants for compression thresholds
const (
	RawThreshold  = 8 * 1024   // < 8KB stored raw
	FastZstdMax   = 128 * 1024 // 8KB-128KB use zstd fast
	SchemaVersion = 1
)

// HashContent computes BLAKE3 hash of content and returns hex string
func HashContent(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashString computes BLAKE3 hash of a string
func HashString(s string) string {
	return HashContent([]byte(s))
}

// GenerateDocID derives a stable DocID from a normalized path
func GenerateDocID(normalizedPath string) string {
	return HashString(normalizedPath)[:32]
}

// Encode serializes a value to msgpack bytes
func Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes msgpack bytes to a value
func Decode(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
