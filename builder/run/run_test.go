package run

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kush-Singh-26/stemr/builder/config"
	"github.com/Kush-Singh-26/stemr/builder/generators"
	"github.com/Kush-Singh-26/stemr/builder/search"
)

func newTestBuilder(t *testing.T) (*Builder, afero.Fs) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.CorpusDir = "content"
	cfg.OutputDir = "public"
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")
	cfg.Workers = 2

	b, err := NewBuilder(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	src := afero.NewMemMapFs()
	b.SourceFs = src
	b.DestFs = afero.NewMemMapFs()
	return b, src
}

func writeCorpus(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("content", name), []byte(body), 0644))
	}
}

var corpus = map[string]string{
	"stemming.md": "---\ntitle: Stemming\ntags: [nlp]\n---\n\nThe stemmer handles connections and connected words.\n",
	"rivers.txt":  "Rivers\nRunning water shapes valleys over generations.\n",
	"notes.md":    "# Field Notes\n\nHappiness is relational.\n",
}

func TestBuild(t *testing.T) {
	b, src := newTestBuilder(t)
	writeCorpus(t, src, corpus)

	index, m, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, index.TotalDocs)
	assert.EqualValues(t, 3, m.DocsIndexed.Load())
	assert.EqualValues(t, 3, m.CacheMisses.Load())
	assert.Len(t, m.ChangedFiles, 3)
	assert.False(t, m.IsIncremental, "first build has no cache id yet")

	assert.Contains(t, index.Inverted, "connect")
	assert.Contains(t, index.Inverted, "generat")
	assert.Contains(t, index.Inverted, "happi")

	results := search.PerformSearch(index, "connecting", search.DefaultOptions())
	require.NotEmpty(t, results)
	assert.Equal(t, "stemming.md", results[0].Path)

	// snapshot round trip
	loaded, err := generators.LoadSnapshot(b.DestFs, b.Config().SnapshotPath())
	require.NoError(t, err)
	assert.Equal(t, index.TotalDocs, loaded.TotalDocs)
	assert.Same(t, index, b.Index())
}

func TestBuildUsesCache(t *testing.T) {
	b, src := newTestBuilder(t)
	writeCorpus(t, src, corpus)

	first, _, err := b.Build(context.Background())
	require.NoError(t, err)

	second, m, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.True(t, m.IsIncremental)
	assert.EqualValues(t, 3, m.CacheHits.Load())
	assert.EqualValues(t, 0, m.CacheMisses.Load())
	assert.Empty(t, m.ChangedFiles)
	assert.Equal(t, first.Inverted, second.Inverted)
	assert.Equal(t, first.DocLens, second.DocLens)
	for i := range first.Docs {
		assert.Equal(t, first.Docs[i].Content, second.Docs[i].Content)
		assert.Equal(t, first.Docs[i].NormalizedTags, second.Docs[i].NormalizedTags)
	}

	results := search.PerformSearch(second, "relation", search.DefaultOptions())
	require.NotEmpty(t, results)
	assert.Equal(t, "notes.md", results[0].Path)
}

func TestBuildReanalyzesChangedFiles(t *testing.T) {
	b, src := newTestBuilder(t)
	writeCorpus(t, src, corpus)

	_, _, err := b.Build(context.Background())
	require.NoError(t, err)

	writeCorpus(t, src, map[string]string{"rivers.txt": "Rivers\nFlooding plains.\n"})
	index, m, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, m.CacheHits.Load())
	assert.Equal(t, []string{"rivers.txt"}, m.ChangedFiles)
	assert.Contains(t, index.Inverted, "flood")
	assert.NotContains(t, index.Inverted, "generat")
}

func TestBuildPrunesDeletedFiles(t *testing.T) {
	b, src := newTestBuilder(t)
	writeCorpus(t, src, corpus)

	_, _, err := b.Build(context.Background())
	require.NoError(t, err)

	require.NoError(t, src.Remove(filepath.Join("content", "notes.md")))
	index, _, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, index.TotalDocs)
	paths, err := b.Cache().ListPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"rivers.txt", "stemming.md"}, paths)
}

func TestBuildSettingsChangeInvalidatesCache(t *testing.T) {
	b, src := newTestBuilder(t)
	writeCorpus(t, src, corpus)

	_, _, err := b.Build(context.Background())
	require.NoError(t, err)

	b.cfg.Stemming = false
	b.analyzer = b.cfg.Analyzer()
	index, m, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.False(t, m.IsIncremental)
	assert.EqualValues(t, 0, m.CacheHits.Load())
	assert.Contains(t, index.Inverted, "connections")
	assert.NotContains(t, index.Inverted, "connect")
}

func TestBuildSkipsBadDocuments(t *testing.T) {
	b, src := newTestBuilder(t)
	writeCorpus(t, src, map[string]string{
		"good.md": "# Good\n\nfine text\n",
		"bad.md":  "---\ntitle: [unclosed\n---\n\nbody\n",
	})

	index, m, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, index.TotalDocs)
	assert.EqualValues(t, 1, m.DocsSkipped.Load())
}

func TestBuildCancelled(t *testing.T) {
	b, src := newTestBuilder(t)
	writeCorpus(t, src, corpus)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := b.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
