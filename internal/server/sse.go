package server

import (
	"fmt"
	"net/http"
	"sync"
)

// broadcaster fans index swaps out to event stream clients
type broadcaster struct {
	mu      sync.Mutex
	clients map[chan struct{}]struct{}
	closed  bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{clients: make(map[chan struct{}]struct{})}
}

// subscribe returns nil once the broadcaster is closed
func (b *broadcaster) subscribe() chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	ch := make(chan struct{}, 1)
	b.clients[ch] = struct{}{}
	return ch
}

func (b *broadcaster) unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
}

func (b *broadcaster) publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- struct{}{}:
		default:
			// client already has a pending notification
		}
	}
}

// close ends every open stream
func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for ch := range b.clients {
		delete(b.clients, ch)
		close(ch)
	}
}

// handleEvents streams a "reindexed" event each time the index is swapped.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch := s.events.subscribe()
	if ch == nil {
		writeError(w, http.StatusServiceUnavailable, "server shutting down")
		return
	}
	defer s.events.unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			docs := 0
			if index := s.Index(); index != nil {
				docs = index.TotalDocs
			}
			_, _ = fmt.Fprintf(w, "event: reindexed\ndata: {\"documents\":%d}\n\n", docs)
			flusher.Flush()
		}
	}
}
