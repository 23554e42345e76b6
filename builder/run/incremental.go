package run

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Kush-Singh-26/stemr/builder/cache"
	"github.com/Kush-Singh-26/stemr/builder/metrics"
	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/search"
	"github.com/Kush-Singh-26/stemr/builder/utils"
)

// fileResult is one corpus file after analysis. entry is set only when the
// document had to be analyzed and the cache needs refreshing.
type fileResult struct {
	doc   models.IndexedDocument
	entry *cache.Entry
	ok    bool
}

// relPath returns path relative to the corpus root, normalized for cache keys
func (b *Builder) relPath(path string) string {
	rel, err := filepath.Rel(b.cfg.CorpusDir, path)
	if err != nil {
		rel = path
	}
	return utils.NormalizePath(rel)
}

// analyzeFile reuses the cached analysis when the file's content hash is
// unchanged, and otherwise parses and analyzes it.
func (b *Builder) analyzeFile(path string, useCache bool, m *metrics.BuildMetrics) (fileResult, error) {
	source, err := afero.ReadFile(b.SourceFs, path)
	if err != nil {
		return fileResult{}, errors.Wrapf(err, "read %s", path)
	}
	info, err := b.SourceFs.Stat(path)
	if err != nil {
		return fileResult{}, errors.Wrapf(err, "stat %s", path)
	}

	rel := b.relPath(path)
	hash := cache.HashContent(source)

	if useCache {
		start := time.Now()
		doc, hit := b.fromCache(rel, hash)
		m.CacheLoadTime.Add(time.Since(start))
		if hit {
			m.IncrementCacheHit()
			return fileResult{doc: doc, ok: true}, nil
		}
	}
	m.IncrementCacheMiss()
	m.ChangedFile(rel)

	start := time.Now()
	parsed, err := b.parser.Parse(rel, source, info.ModTime())
	if err != nil {
		return fileResult{}, err
	}
	parsed.ContentHash = hash

	doc := search.IndexDocument(b.analyzer, search.NewRecord(parsed))
	m.AnalyzeTime.Add(time.Since(start))
	if b.cfg.Stemming {
		m.AddWordsStemmed(doc.DocLen)
	}

	entry := &cache.Entry{
		Meta: &cache.DocMeta{
			Path:        rel,
			ModTime:     info.ModTime().Unix(),
			ContentHash: hash,
			Title:       parsed.Title,
			Description: parsed.Description,
			Tags:        parsed.Tags,
			WordCount:   len(strings.Fields(parsed.Content)),
			IndexedAt:   time.Now().Unix(),
		},
		Search: &cache.SearchRecord{
			WordFreqs:       doc.WordFreqs,
			DocLen:          doc.DocLen,
			NormalizedTitle: doc.Record.NormalizedTitle,
			NormalizedTags:  doc.Record.NormalizedTags,
		},
		Text: parsed.Content,
	}
	return fileResult{doc: doc, entry: entry, ok: true}, nil
}

// fromCache rebuilds an indexed document from the cache. Any missing piece
// counts as a miss.
func (b *Builder) fromCache(rel, hash string) (models.IndexedDocument, bool) {
	meta, err := b.cacheManager.GetDocByPath(rel)
	if err != nil || meta.ContentHash != hash {
		return models.IndexedDocument{}, false
	}
	record, err := b.cacheManager.GetSearchRecord(meta.DocID)
	if err != nil {
		return models.IndexedDocument{}, false
	}
	text, err := b.cacheManager.GetText(meta)
	if err != nil {
		b.logger.Debug("cached text unavailable", zap.String("path", rel), zap.Error(err))
		return models.IndexedDocument{}, false
	}

	return models.IndexedDocument{
		Record: models.DocumentRecord{
			Path:            meta.Path,
			Title:           meta.Title,
			NormalizedTitle: record.NormalizedTitle,
			Description:     meta.Description,
			Tags:            meta.Tags,
			NormalizedTags:  record.NormalizedTags,
			Content:         text,
		},
		WordFreqs: record.WordFreqs,
		DocLen:    record.DocLen,
	}, true
}
