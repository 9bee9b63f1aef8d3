package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/xbraken/holiday-planner/internal/document"
)

// Slot is the external key-value capability the local emulator persists the
// document into: one JSON string under one fixed key.
type Slot interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, raw string) error
}

// Local emulates the real-time document store for deployments without one.
// Its own writes apply synchronously to the in-memory view; writes by other
// processes sharing the slot are detected by polling, so they surface within
// one polling interval. Connectivity is always reported false: this is an
// explicitly degraded mode.
type Local struct {
	slot     Slot
	interval time.Duration
	subs     *subscribers

	mu      sync.RWMutex
	doc     *document.Document
	lastRaw string

	cancel context.CancelFunc
	done   chan struct{}
}

func NewLocal(slot Slot) *Local {
	return &Local{
		slot:     slot,
		interval: time.Second,
		subs:     newSubscribers(),
		doc:      document.Default(),
	}
}

// SetPollInterval adjusts the poll cadence. Call before Start.
func (l *Local) SetPollInterval(d time.Duration) {
	l.interval = d
}

func (l *Local) Start(ctx context.Context) error {
	raw, ok, err := l.slot.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		seeded, err := document.Encode(document.Default())
		if err != nil {
			return err
		}
		raw = string(seeded)
		if err := l.slot.Set(ctx, raw); err != nil {
			return err
		}
	}

	doc, err := document.Decode([]byte(raw))
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.doc = doc
	l.lastRaw = raw
	l.mu.Unlock()

	pollCtx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.poll(pollCtx)
	return nil
}

func (l *Local) poll(ctx context.Context) {
	defer close(l.done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			raw, ok, err := l.slot.Get(ctx)
			if err != nil || !ok {
				continue
			}
			l.mu.Lock()
			if raw == l.lastRaw {
				l.mu.Unlock()
				continue
			}
			doc, err := document.Decode([]byte(raw))
			if err != nil {
				l.mu.Unlock()
				log.Printf("local store: corrupt slot payload ignored: %v", err)
				continue
			}
			l.doc = doc
			l.lastRaw = raw
			l.mu.Unlock()
			l.subs.broadcast(doc)
		}
	}
}

func (l *Local) Subscribe() *Subscription {
	sub := l.subs.add()
	sub.C <- l.Snapshot()
	return sub
}

func (l *Local) Unsubscribe(sub *Subscription) {
	l.subs.remove(sub)
}

func (l *Local) Snapshot() *document.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc
}

func (l *Local) WriteAt(ctx context.Context, path string, value any) error {
	l.mu.Lock()

	// Re-read the slot first so a write does not clobber a foreign update
	// the poller has not seen yet.
	base := l.lastRaw
	if raw, ok, err := l.slot.Get(ctx); err == nil && ok {
		base = raw
	}

	var root map[string]any
	if base != "" {
		if err := json.Unmarshal([]byte(base), &root); err != nil {
			root = nil
		}
	}
	if root == nil {
		var err error
		root, err = document.ToMap(document.Default())
		if err != nil {
			l.mu.Unlock()
			return err
		}
	}

	root, err := document.Apply(root, path, value)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	root["lastUpdated"] = document.NowMillis()

	doc, err := document.FromMap(root)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	raw, err := json.Marshal(root)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	if err := l.slot.Set(ctx, string(raw)); err != nil {
		l.mu.Unlock()
		return err
	}

	l.doc = doc
	l.lastRaw = string(raw)
	l.mu.Unlock()

	l.subs.broadcast(doc)
	return nil
}

// Connected is always false for the emulator; the degraded mode is signaled
// to users through the same flag the real backend uses.
func (l *Local) Connected() bool {
	return false
}

func (l *Local) Close() {
	if l.cancel != nil {
		l.cancel()
		<-l.done
	}
	l.subs.closeAll()
}
