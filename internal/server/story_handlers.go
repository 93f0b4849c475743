// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"sadat/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetActiveStories handles GET /api/stories
// Expired stories are filtered out; nothing deletes them.
func (s *Server) GetActiveStories(c *fiber.Ctx) error {
	return c.JSON(s.store.ListActiveStories(c.UserContext()))
}

// CreateStory handles POST /api/stories
func (s *Server) CreateStory(c *fiber.Ctx) error {
	var req struct {
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	story, err := s.store.CreateStory(c.UserContext(), s.actorID(c), req.Image)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}
