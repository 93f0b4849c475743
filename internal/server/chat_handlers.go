// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"sadat/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FindOrCreateConversation handles POST /api/conversations
// The body names the peer by username; the thread is created on first
// contact and reused afterwards.
func (s *Server) FindOrCreateConversation(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	conv, err := s.store.FindOrCreateConversation(c.UserContext(), s.actorID(c), req.Username)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(conv)
}

// GetConversations handles GET /api/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	return c.JSON(s.store.ListConversations(c.UserContext(), s.actorID(c)))
}

// GetConversation handles GET /api/conversations/:id
func (s *Server) GetConversation(c *fiber.Ctx) error {
	view, err := s.store.GetConversation(c.UserContext(), c.Params("id"), s.actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

// SendMessage handles POST /api/conversations/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.store.SendMessage(c.UserContext(), c.Params("id"), s.actorID(c), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
