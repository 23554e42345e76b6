package run

import (
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Kush-Singh-26/stemr/builder/cache"
	"github.com/Kush-Singh-26/stemr/builder/config"
	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/parser"
	"github.com/Kush-Singh-26/stemr/builder/search"
)

// Builder maintains the state for index builds
type Builder struct {
	cfg          *config.Config
	logger       *zap.Logger
	parser       *parser.Parser
	analyzer     *search.Analyzer
	cacheManager *cache.Manager

	mu    sync.Mutex // serializes builds
	index *models.SearchIndex

	SourceFs afero.Fs
	DestFs   afero.Fs
}

// NewBuilder opens the analysis cache and prepares the analyzer described by
// cfg. Both filesystems default to the OS filesystem.
func NewBuilder(cfg *config.Config, logger *zap.Logger) (*Builder, error) {
	search.ConfigureStemCache(cfg.StemCacheTTL, cfg.StemCacheSize)

	cacheManager, err := cache.Open(cfg.CacheDir, cfg.IsDev)
	if err != nil {
		return nil, err
	}

	return &Builder{
		cfg:          cfg,
		logger:       logger,
		parser:       parser.NewParser(),
		analyzer:     cfg.Analyzer(),
		cacheManager: cacheManager,
		SourceFs:     afero.NewOsFs(),
		DestFs:       afero.NewOsFs(),
	}, nil
}

// Config returns the builder's configuration
func (b *Builder) Config() *config.Config {
	return b.cfg
}

// Cache returns the analysis cache
func (b *Builder) Cache() *cache.Manager {
	return b.cacheManager
}

// Index returns the index produced by the last successful build, or nil
func (b *Builder) Index() *models.SearchIndex {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index
}

// Close releases the analysis cache
func (b *Builder) Close() error {
	return b.cacheManager.Close()
}
