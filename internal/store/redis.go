package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xbraken/holiday-planner/internal/document"
)

// Redis is the remote pub/sub document store backend. The document lives as
// one JSON value under the configured key; every write republishes the full
// snapshot on <key>:updates. Writes are fire-and-forget: the in-memory view
// only changes when the subscription echoes the write back, so the
// subscription stream stays the sole source of truth for rendering.
type Redis struct {
	client       *redis.Client
	key          string
	pingInterval time.Duration
	subs         *subscribers

	mu        sync.RWMutex
	doc       *document.Document
	connected bool

	pubsub *redis.PubSub
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{
		client:       client,
		key:          key,
		pingInterval: 5 * time.Second,
		subs:         newSubscribers(),
		doc:          document.Default(),
	}
}

// SetPingInterval adjusts the liveness probe cadence. Call before Start.
func (r *Redis) SetPingInterval(d time.Duration) {
	r.pingInterval = d
}

func (r *Redis) channel() string {
	return r.key + ":updates"
}

// Start attaches to the remote document. When no document exists it seeds
// the default atomically (SETNX), so concurrent first clients cannot double
// initialize. Attach failure is not fatal: the store stays up, disconnected,
// with the last known (or default) view in memory.
func (r *Redis) Start(ctx context.Context) error {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		seeded, encErr := document.Encode(document.Default())
		if encErr != nil {
			return encErr
		}
		if err := r.client.SetNX(ctx, r.key, string(seeded), 0).Err(); err != nil {
			log.Printf("redis store: seed failed: %v", err)
		}
		raw, err = r.client.Get(ctx, r.key).Result()
	}

	if err != nil {
		log.Printf("redis store: attach failed, running disconnected: %v", err)
		r.setConnected(false)
	} else {
		if doc, decErr := document.Decode([]byte(raw)); decErr == nil {
			r.mu.Lock()
			r.doc = doc
			r.mu.Unlock()
		} else {
			log.Printf("redis store: corrupt document ignored: %v", decErr)
		}
		r.setConnected(true)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.pubsub = r.client.Subscribe(runCtx, r.channel())

	r.wg.Add(2)
	go r.receive()
	go r.ping(runCtx)
	return nil
}

func (r *Redis) receive() {
	defer r.wg.Done()
	for msg := range r.pubsub.Channel() {
		doc, err := document.Decode([]byte(msg.Payload))
		if err != nil {
			log.Printf("redis store: bad update payload: %v", err)
			continue
		}
		r.mu.Lock()
		r.doc = doc
		r.mu.Unlock()
		r.subs.broadcast(doc)
	}
}

func (r *Redis) ping(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.client.Ping(ctx).Err()
			r.setConnected(err == nil)
		}
	}
}

func (r *Redis) setConnected(up bool) {
	r.mu.Lock()
	r.connected = up
	r.mu.Unlock()
}

func (r *Redis) Subscribe() *Subscription {
	sub := r.subs.add()
	sub.C <- r.Snapshot()
	return sub
}

func (r *Redis) Unsubscribe(sub *Subscription) {
	r.subs.remove(sub)
}

func (r *Redis) Snapshot() *document.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc
}

func (r *Redis) WriteAt(ctx context.Context, path string, value any) error {
	var root map[string]any

	raw, err := r.client.Get(ctx, r.key).Result()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal([]byte(raw), &root); jsonErr != nil {
			root = nil
		}
	case errors.Is(err, redis.Nil):
		// seed below
	default:
		// Last write wins and lost updates are acceptable, but base the
		// write on the in-memory view rather than drop it outright.
		log.Printf("redis store: read-before-write failed: %v", err)
		root, _ = document.ToMap(r.Snapshot())
	}
	if root == nil {
		root, err = document.ToMap(document.Default())
		if err != nil {
			return err
		}
	}

	root, err = document.Apply(root, path, value)
	if err != nil {
		return err
	}
	root["lastUpdated"] = document.NowMillis()

	payload, err := json.Marshal(root)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, string(payload), 0).Err(); err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel(), string(payload)).Err()
}

func (r *Redis) Connected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connected
}

func (r *Redis) Close() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.pubsub != nil {
		_ = r.pubsub.Close()
	}
	r.wg.Wait()
	r.subs.closeAll()
}
