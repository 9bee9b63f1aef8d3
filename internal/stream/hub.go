package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/xbraken/holiday-planner/internal/document"
	"github.com/xbraken/holiday-planner/internal/store"
)

// Hub fans document snapshots out to connected websocket clients. There is
// one shared planning session, so every client sees every update.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

type Client struct {
	Send chan []byte
}

// envelope is the wire frame pushed to clients. Connected rides along so the
// UI can show the degraded-mode banner without a second request.
type envelope struct {
	Type      string             `json:"type"`
	Document  *document.Document `json:"document"`
	Connected bool               `json:"connected"`
}

func NewHub() *Hub {
	return &Hub{clients: map[*Client]struct{}{}}
}

func (h *Hub) Register() *Client {
	client := &Client{Send: make(chan []byte, 64)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// Broadcast delivers a payload to every client. Slow consumers drop frames;
// a later snapshot supersedes anything they missed.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

// Run pumps store updates into the hub until the context is cancelled or the
// store subscription closes.
func (h *Hub) Run(ctx context.Context, st store.Store) {
	sub := st.Subscribe()
	defer st.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case doc, ok := <-sub.C:
			if !ok {
				return
			}
			payload, err := snapshotPayload(doc, st.Connected())
			if err != nil {
				log.Printf("stream: encode snapshot: %v", err)
				continue
			}
			h.Broadcast(payload)
		}
	}
}

func snapshotPayload(doc *document.Document, connected bool) ([]byte, error) {
	return json.Marshal(envelope{Type: "snapshot", Document: doc, Connected: connected})
}
