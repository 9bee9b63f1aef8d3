package store

import (
	"context"
	"sync"

	"github.com/xbraken/holiday-planner/internal/document"
)

// Store is the shared-document sync client: one live, eventually-consistent
// view of the planning document plus path-scoped writes. Two backends
// implement it; the backend is chosen once at startup and never branched on
// again.
type Store interface {
	// Start attaches to the backend and seeds the default document if none
	// exists. A remote attach failure degrades Connected, it does not abort.
	Start(ctx context.Context) error
	// Subscribe registers a snapshot stream. The current snapshot is
	// delivered immediately; slow consumers drop frames.
	Subscribe() *Subscription
	Unsubscribe(*Subscription)
	// Snapshot is the last known in-memory view. Callers must treat the
	// returned document as read-only.
	Snapshot() *document.Document
	// WriteAt writes value at a dot/slash-separated path. An empty path
	// replaces the whole document, a nil value deletes the node. Every call
	// stamps lastUpdated.
	WriteAt(ctx context.Context, path string, value any) error
	Connected() bool
	Close()
}

type Subscription struct {
	C chan *document.Document
}

type subscribers struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newSubscribers() *subscribers {
	return &subscribers{subs: map[*Subscription]struct{}{}}
}

func (s *subscribers) add() *Subscription {
	sub := &Subscription{C: make(chan *document.Document, 8)}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub] = struct{}{}
	return sub
}

func (s *subscribers) remove(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub]; ok {
		delete(s.subs, sub)
		close(sub.C)
	}
}

func (s *subscribers) broadcast(doc *document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		select {
		case sub.C <- doc:
		default:
		}
	}
}

func (s *subscribers) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		delete(s.subs, sub)
		close(sub.C)
	}
}
