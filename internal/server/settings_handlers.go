// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"sadat/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSettings handles GET /api/settings
func (s *Server) GetSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"theme": s.store.Theme(c.UserContext())})
}

// SetTheme handles PUT /api/settings/theme
func (s *Server) SetTheme(c *fiber.Ctx) error {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.store.SetTheme(c.UserContext(), req.Theme); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"theme": req.Theme})
}

// ToggleTheme handles POST /api/settings/theme/toggle
func (s *Server) ToggleTheme(c *fiber.Ctx) error {
	theme, err := s.store.ToggleTheme(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"theme": theme})
}
