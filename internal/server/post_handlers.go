// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"sadat/internal/models"
	"sadat/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/posts
func (s *Server) GetFeed(c *fiber.Ctx) error {
	return c.JSON(s.store.ListFeed(c.UserContext(), s.actorID(c)))
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.store.PublishPost(c.UserContext(), store.PublishPostInput{
		AuthorID: s.actorID(c),
		Text:     req.Text,
		Image:    req.Image,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	view, err := s.store.GetPost(c.UserContext(), c.Params("id"), s.actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	view, err := s.store.ToggleLike(c.UserContext(), c.Params("id"), s.actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.store.AddComment(c.UserContext(), c.Params("id"), s.actorID(c), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// AddReaction handles POST /api/posts/:id/reactions
func (s *Server) AddReaction(c *fiber.Ctx) error {
	var req struct {
		Symbol string `json:"symbol"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.store.AddReaction(c.UserContext(), c.Params("id"), req.Symbol)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

// DeletePost handles DELETE /api/posts/:id
// Owners delete their own posts; admins delete anyone's.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID := c.Params("id")

	if err := s.store.CanDeletePost(ctx, s.actorID(c), postID); err != nil {
		return fail(c, err)
	}
	if err := s.store.DeletePost(ctx, postID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// SavePost handles POST /api/posts/:id/save
func (s *Server) SavePost(c *fiber.Ctx) error {
	if err := s.store.SavePost(c.UserContext(), s.actorID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post saved"})
}

// GetSavedPosts handles GET /api/posts/saved
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	return c.JSON(s.store.ListSaved(c.UserContext(), s.actorID(c)))
}
