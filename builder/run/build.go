package run

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Kush-Singh-26/stemr/builder/cache"
	"github.com/Kush-Singh-26/stemr/builder/generators"
	"github.com/Kush-Singh-26/stemr/builder/metrics"
	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/search"
	"github.com/Kush-Singh-26/stemr/builder/utils"
)

// Build indexes the corpus, refreshes the analysis cache and writes the
// search snapshot. Unchanged files are served from the cache unless the
// analyzer settings changed or a rebuild was forced.
func (b *Builder) Build(ctx context.Context) (*models.SearchIndex, *metrics.BuildMetrics, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := metrics.NewBuildMetrics()

	lock, err := utils.AcquireIndexLock(b.cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			b.logger.Warn("failed to release index lock", zap.Error(err))
		}
	}()

	fingerprint := b.cfg.Fingerprint()
	stale, err := b.cacheManager.VerifyCacheID(fingerprint)
	if err != nil {
		return nil, nil, errors.Wrap(err, "verify cache")
	}
	useCache := !stale && !b.cfg.ForceRebuild
	m.IsIncremental = useCache
	if stale {
		b.logger.Info("analyzer settings changed, re-analyzing corpus", zap.String("fingerprint", fingerprint))
	}

	files, err := utils.WalkCorpus(b.SourceFs, b.cfg.CorpusDir)
	if err != nil {
		return nil, nil, err
	}
	b.logger.Debug("corpus scanned", zap.Int("files", len(files)), zap.String("dir", b.cfg.CorpusDir))

	results := make([]fileResult, len(files))
	err = utils.ForEach(ctx, b.cfg.Workers, files, func(i int, path string) {
		res, err := b.analyzeFile(path, useCache, m)
		if err != nil {
			m.DocsSkipped.Inc()
			b.logger.Warn("skipping document", zap.String("path", path), zap.Error(err))
			return
		}
		results[i] = res
	})
	if err != nil {
		return nil, nil, err
	}

	docs := make([]models.IndexedDocument, 0, len(results))
	var entries []cache.Entry
	var keep []string
	for _, r := range results {
		if !r.ok {
			continue
		}
		docs = append(docs, r.doc)
		keep = append(keep, r.doc.Record.Path)
		if r.entry != nil {
			entries = append(entries, *r.entry)
		}
	}

	if err := b.saveCache(entries, keep, fingerprint, m); err != nil {
		return nil, nil, err
	}

	index := search.BuildIndex(docs)
	m.DocsIndexed.Store(int64(len(docs)))

	path, err := generators.WriteSnapshot(b.DestFs, b.cfg.OutputDir, index)
	if err != nil {
		return nil, nil, err
	}
	m.RecordEnd()

	b.index = index
	b.logger.Info("index built",
		zap.String("snapshot", path),
		zap.Int64("docs", m.DocsIndexed.Load()),
		zap.Int64("skipped", m.DocsSkipped.Load()),
		zap.Int64("cache_hits", m.CacheHits.Load()),
		zap.Duration("took", m.TotalDuration()),
	)
	return index, m, nil
}

func (b *Builder) saveCache(entries []cache.Entry, keep []string, fingerprint string, m *metrics.BuildMetrics) error {
	start := time.Now()
	defer func() { m.CacheSaveTime.Add(time.Since(start)) }()

	if err := b.cacheManager.BatchCommit(entries); err != nil {
		return errors.Wrap(err, "commit cache entries")
	}
	removed, err := b.cacheManager.Prune(keep)
	if err != nil {
		return errors.Wrap(err, "prune cache")
	}
	for _, p := range removed {
		b.logger.Debug("dropped deleted document from cache", zap.String("path", p))
	}
	if err := b.cacheManager.SetCacheID(fingerprint); err != nil {
		return errors.Wrap(err, "store cache id")
	}
	return b.cacheManager.IncrementBuildCount()
}
