package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCache(t *testing.T) *Manager {
	t.Helper()
	m, err := Open(filepath.Join(t.TempDir(), "cache"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func sampleEntry(path, text string) Entry {
	return Entry{
		Meta: &DocMeta{
			Path:        path,
			ContentHash: HashString(text),
			Title:       "Stemming",
			Tags:        []string{"nlp"},
			WordCount:   len(strings.Fields(text)),
		},
		Search: &SearchRecord{
			WordFreqs:       map[string]int{"stem": 2, "connect": 1},
			DocLen:          3,
			NormalizedTitle: "stemming",
			NormalizedTags:  []string{"nlp"},
		},
		Text: text,
	}
}

func TestOpenCreatesLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	m, err := Open(dir, true)
	require.NoError(t, err)
	defer m.Close()

	_, err = os.Stat(filepath.Join(dir, "meta.db"))
	assert.NoError(t, err)

	stats, err := m.Stats()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, stats.SchemaVersion)
	assert.Zero(t, stats.TotalDocs)
}

func TestBatchCommitAndRead(t *testing.T) {
	m := createTestCache(t)

	entry := sampleEntry("Docs/Stemming.md", "stemming stems connected")
	require.NoError(t, m.BatchCommit([]Entry{entry}))
	assert.NotEmpty(t, entry.Meta.DocID)
	assert.Equal(t, HashString("stemming stems connected"), entry.Meta.TextHash)

	meta, err := m.GetDocByPath("docs/stemming.md")
	require.NoError(t, err)
	assert.Equal(t, "Stemming", meta.Title)
	assert.Equal(t, entry.Meta.DocID, meta.DocID)

	byID, err := m.GetDocByID(meta.DocID)
	require.NoError(t, err)
	assert.Equal(t, meta.Path, byID.Path)

	record, err := m.GetSearchRecord(meta.DocID)
	require.NoError(t, err)
	assert.Equal(t, 2, record.WordFreqs["stem"])
	assert.Equal(t, 3, record.DocLen)

	text, err := m.GetText(meta)
	require.NoError(t, err)
	assert.Equal(t, "stemming stems connected", text)

	records, err := m.GetSearchRecords([]string{meta.DocID, "missing"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestBatchCommitLargeTextIsCompressed(t *testing.T) {
	m := createTestCache(t)

	text := strings.Repeat("generously connected stems ", 2000)
	entry := sampleEntry("big.md", text)
	require.NoError(t, m.BatchCommit([]Entry{entry}))

	zst := m.store.shardPath(CategoryText, entry.Meta.TextHash) + extZstd
	info, err := os.Stat(zst)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(len(text)))

	got, err := m.GetText(entry.Meta)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestBatchCommitRequiresMeta(t *testing.T) {
	m := createTestCache(t)
	assert.Error(t, m.BatchCommit([]Entry{{Text: "x"}}))
}

func TestNotFound(t *testing.T) {
	m := createTestCache(t)

	_, err := m.GetDocByPath("nope.md")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	_, err = m.GetSearchRecord("nope")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	err = m.DeleteByPath("nope.md")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestDeleteByPath(t *testing.T) {
	m := createTestCache(t)
	require.NoError(t, m.BatchCommit([]Entry{sampleEntry("a.md", "alpha"), sampleEntry("b.md", "beta")}))

	require.NoError(t, m.DeleteByPath("A.md"))

	paths, err := m.ListPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.md"}, paths)

	_, err = m.GetSearchRecord(GenerateDocID("a.md"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPrune(t *testing.T) {
	m := createTestCache(t)
	require.NoError(t, m.BatchCommit([]Entry{
		sampleEntry("a.md", "alpha"),
		sampleEntry("b.md", "beta"),
		sampleEntry("c.md", "gamma"),
	}))

	removed, err := m.Prune([]string{"B.md"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.md", "c.md"}, removed)

	paths, err := m.ListPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.md"}, paths)
}

func TestRunGC(t *testing.T) {
	m := createTestCache(t)
	require.NoError(t, m.BatchCommit([]Entry{sampleEntry("a.md", "alpha"), sampleEntry("b.md", "beta")}))
	require.NoError(t, m.DeleteByPath("a.md"))

	dry, err := m.RunGC(true)
	require.NoError(t, err)
	assert.Equal(t, 2, dry.ScannedBlobs)
	assert.Equal(t, 1, dry.DeletedBlobs)
	assert.True(t, m.store.Exists(CategoryText, HashString("alpha")))

	res, err := m.RunGC(false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DeletedBlobs)
	assert.Equal(t, 1, res.LiveBlobs)
	assert.False(t, m.store.Exists(CategoryText, HashString("alpha")))
	assert.True(t, m.store.Exists(CategoryText, HashString("beta")))

	stats, err := m.Stats()
	require.NoError(t, err)
	assert.NotZero(t, stats.LastGC)
}

func TestVerify(t *testing.T) {
	m := createTestCache(t)
	entry := sampleEntry("a.md", "alpha")
	require.NoError(t, m.BatchCommit([]Entry{entry}))

	problems, err := m.Verify()
	require.NoError(t, err)
	assert.Empty(t, problems)

	m.store.Delete(CategoryText, entry.Meta.TextHash)
	problems, err = m.Verify()
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "missing text blob")
}

func TestCacheID(t *testing.T) {
	m := createTestCache(t)

	stale, err := m.VerifyCacheID("v1")
	require.NoError(t, err)
	assert.True(t, stale)

	require.NoError(t, m.SetCacheID("v1"))
	stale, err = m.VerifyCacheID("v1")
	require.NoError(t, err)
	assert.False(t, stale)

	stale, err = m.VerifyCacheID("v2")
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestBuildCountAndClear(t *testing.T) {
	m := createTestCache(t)
	require.NoError(t, m.BatchCommit([]Entry{sampleEntry("a.md", "alpha")}))
	require.NoError(t, m.IncrementBuildCount())
	require.NoError(t, m.IncrementBuildCount())

	stats, err := m.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.BuildCount)
	assert.Equal(t, 1, stats.TotalDocs)
	assert.NotZero(t, stats.LastBuildTime)
	assert.Positive(t, stats.StoreBytes)

	require.NoError(t, m.Clear())

	stats, err = m.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.BuildCount)
	assert.Zero(t, stats.TotalDocs)
	assert.Zero(t, stats.StoreBytes)
}

func TestHashContent(t *testing.T) {
	assert.Len(t, HashContent([]byte("x")), 64)
	assert.Equal(t, HashContent([]byte("abc")), HashString("abc"))
	assert.NotEqual(t, HashString("a"), HashString("b"))
	assert.Len(t, GenerateDocID("a.md"), 32)
}
