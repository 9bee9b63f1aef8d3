package stream

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
)

func TestStreamHandlersUpgradeRequired(t *testing.T) {
	st := newTestStore(t)
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), NewHub(), st)

	req := httptest.NewRequest(http.MethodGet, "/stream/ws", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected non-200 for non-websocket request")
	}
}

func TestStreamHandlersWebsocketSnapshots(t *testing.T) {
	st := newTestStore(t)
	hub := NewHub()
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), hub, st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx, st)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	defer ln.Close()

	go func() {
		_ = app.Listener(ln)
	}()
	defer func() { _ = app.Shutdown() }()

	wsURL := "ws://" + ln.Addr().String() + "/stream/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// First frame is the snapshot at connect time.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first envelope
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if first.Type != "snapshot" {
		t.Fatalf("unexpected first frame: %+v", first)
	}

	if err := st.WriteAt(context.Background(), "users", []string{"alice"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var update envelope
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if len(update.Document.Users) != 1 || update.Document.Users[0] != "alice" {
		raw, _ := json.Marshal(update)
		t.Fatalf("unexpected update frame: %s", raw)
	}
}

func TestStreamHandlersClosedClient(t *testing.T) {
	st := newTestStore(t)
	hub := NewHub()
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), hub, st)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	defer ln.Close()

	go func() {
		_ = app.Listener(ln)
	}()
	defer func() { _ = app.Shutdown() }()

	wsURL := "ws://" + ln.Addr().String() + "/stream/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	conn.Close()

	hub.Broadcast([]byte("ping"))
	time.Sleep(20 * time.Millisecond)
}
