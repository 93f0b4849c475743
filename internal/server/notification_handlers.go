// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	return c.JSON(s.store.ListNotifications(c.UserContext(), s.actorID(c)))
}

// GetUnreadCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"count": s.store.UnreadCount(c.UserContext(), s.actorID(c)),
	})
}

// MarkNotificationsSeen handles POST /api/notifications/seen
func (s *Server) MarkNotificationsSeen(c *fiber.Ctx) error {
	if err := s.store.MarkAllSeen(c.UserContext(), s.actorID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked seen"})
}
