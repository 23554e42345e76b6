package server

import (
	"context"

	"go.uber.org/zap"

	"github.com/Kush-Singh-26/stemr/builder/utils"
	"github.com/Kush-Singh-26/stemr/internal/watch"
)

// startReindexer rebuilds the index whenever a corpus file changes and swaps
// the result in. A failed build keeps the previous index.
func (s *Server) startReindexer(ctx context.Context) error {
	w, err := watch.New([]string{s.cfg.CorpusDir}, s.cfg.DebounceDuration, s.logger.Named("watch"), func(e watch.Event) {
		s.reindex(ctx, e.Name)
	})
	if err != nil {
		return err
	}
	w.Filter = utils.IsCorpusFile

	go func() {
		if err := w.Start(ctx); err != nil {
			s.logger.Error("watcher stopped", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) reindex(ctx context.Context, trigger string) {
	index, m, err := s.builder.Build(ctx)
	if err != nil {
		s.logger.Error("re-index failed, keeping previous index", zap.String("trigger", trigger), zap.Error(err))
		return
	}
	s.SetIndex(index)
	s.logger.Info("re-indexed",
		zap.String("trigger", trigger),
		zap.Int("documents", index.TotalDocs),
		zap.Strings("changed", m.ChangedFiles),
		zap.Duration("took", m.TotalDuration()),
	)
}
