package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/xbraken/holiday-planner/internal/store"
)

func RegisterRoutes(r fiber.Router, hub *Hub, st store.Store) {
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		client := hub.Register()
		defer hub.Unregister(client)

		// The current snapshot goes out immediately so a late joiner does
		// not wait for the next write.
		if payload, err := snapshotPayload(st.Snapshot(), st.Connected()); err == nil {
			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(client)
		<-done
	}))
}
