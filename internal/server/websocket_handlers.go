// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade gates the /ws route to proper upgrade requests.
func (s *Server) WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// WebSocketHandler streams change descriptors to the client. Every store
// mutation produces one frame: {"op":..., "entity":..., "id":...}. Clients
// use the stream to refresh their views; no payload data rides along.
func (s *Server) WebSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id, changes := s.store.Subscribe()
		defer s.store.Unsubscribe(id)

		s.log.Info("websocket client connected")

		// Reader goroutine: we ignore client frames but need the read
		// loop to notice a closed connection.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case change, ok := <-changes:
				if !ok {
					return
				}
				if err := conn.WriteJSON(change); err != nil {
					s.log.Info("websocket client disconnected", "error", err.Error())
					return
				}
			case <-done:
				return
			}
		}
	})
}
