// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"strings"

	"sadat/internal/models"
	"sadat/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	return c.JSON(s.store.CurrentUser(c.UserContext()))
}

// UpdateMyProfile handles PUT /api/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.store.UpdateProfile(c.UserContext(), s.actorID(c), store.UpdateProfileInput{
		Name:     req.Name,
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	return c.JSON(s.store.ListUsers(c.UserContext()))
}

// CreateUser handles POST /api/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.store.CreateUser(c.UserContext(), store.CreateUserInput{
		Name:     req.Name,
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUserProfile handles GET /api/users/:id
// Unknown IDs resolve to the deleted-user sentinel, never a 404.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	return c.JSON(s.store.GetUser(c.UserContext(), c.Params("id")))
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	if err := s.store.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// FollowUser handles POST /api/users/:username/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	if err := s.store.Follow(c.UserContext(), s.actorID(c), c.Params("username")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Followed"})
}

// Search handles GET /api/search?q=...
func (s *Server) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	return c.JSON(s.store.Search(c.UserContext(), q))
}

// GetStats handles GET /api/stats
func (s *Server) GetStats(c *fiber.Ctx) error {
	return c.JSON(s.store.Stats(c.UserContext()))
}

// ResetState handles POST /api/reset: back to the pristine default state.
func (s *Server) ResetState(c *fiber.Ctx) error {
	if err := s.store.Reset(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "State reset"})
}
