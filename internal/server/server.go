// Package server exposes stemming and search over HTTP.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Kush-Singh-26/stemr/builder/config"
	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/run"
	"github.com/Kush-Singh-26/stemr/builder/search"
)

// maxBodyBytes bounds POST /api/stem request bodies.
const maxBodyBytes = 1 << 20

// Server serves one search index. The index may be swapped while requests
// are in flight; each request sees either the old or the new one.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	opts    search.Options
	builder *run.Builder // nil unless live re-indexing is enabled
	events  *broadcaster

	mu    sync.RWMutex
	index *models.SearchIndex
}

// New creates a server over index, which may be nil until SetIndex is called.
func New(cfg *config.Config, logger *zap.Logger, index *models.SearchIndex) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		opts:   cfg.SearchOptions(),
		events: newBroadcaster(),
		index:  index,
	}
}

// WithBuilder enables re-indexing through b when the corpus changes.
func (s *Server) WithBuilder(b *run.Builder) *Server {
	s.builder = b
	return s
}

// Index returns the index currently being served
func (s *Server) Index() *models.SearchIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// SetIndex swaps in a new index and notifies event subscribers
func (s *Server) SetIndex(index *models.SearchIndex) {
	s.mu.Lock()
	s.index = index
	s.mu.Unlock()
	s.events.publish()
}

// Handler returns the routed API wrapped in recovery, compression, CORS and
// access logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stem", s.handleStemQuery).Methods(http.MethodGet)
	api.HandleFunc("/stem", s.handleStemBody).Methods(http.MethodPost)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Do not compress the event stream; the compressor buffers until close.
	compressed := handlers.CompressHandler(router)
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/events" {
			router.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})

	handler = handlers.CORS(
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
	)(handler)
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.logger)),
	)(handler)
	return handlers.CombinedLoggingHandler(zap.NewStdLog(s.logger.Named("access")).Writer(), handler)
}

// Run listens on cfg.Server.Addr until ctx is done, then shuts down
// gracefully. With a builder attached and watch enabled, corpus changes
// trigger a re-index.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	if s.builder != nil && s.cfg.Server.Watch {
		if err := s.startReindexer(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", zap.String("addr", s.cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- errors.Wrap(err, "listen")
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", zap.Duration("timeout", s.cfg.Server.ShutdownTimeout))
	s.events.close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return <-errCh
}
