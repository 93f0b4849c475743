// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"sadat/internal/config"
	"sadat/internal/models"
	"sadat/internal/observability"
	"sadat/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config *config.Config
	store  *store.Store
	log    *observability.Logger
	app    *fiber.App
}

// NewServer creates a server around an already-initialized store.
func NewServer(cfg *config.Config, st *store.Store) *Server {
	return &Server{
		config: cfg,
		store:  st,
		log:    observability.NewLogger("server"),
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Structured request logging (after requestid)
	app.Use(s.requestLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		MaxAge:       86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Session: the local user and app-wide views
	api.Get("/me", s.GetMyProfile)
	api.Put("/me", s.UpdateMyProfile)
	api.Get("/search", s.Search)
	api.Get("/stats", s.GetStats)
	api.Post("/reset", s.ResetState)

	// User routes
	users := api.Group("/users")
	users.Get("/", s.GetAllUsers)
	users.Post("/", s.CreateUser)
	// Specific /:id/:resource routes BEFORE generic /:id route
	users.Post("/:username/follow", s.FollowUser)
	users.Get("/:id", s.GetUserProfile)
	users.Delete("/:id", s.DeleteUser)

	// Post routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetFeed)
	posts.Post("/", s.CreatePost)
	posts.Get("/saved", s.GetSavedPosts)
	// Specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:id/like", s.ToggleLike)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Post("/:id/reactions", s.AddReaction)
	posts.Post("/:id/save", s.SavePost)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	// Chat routes
	conversations := api.Group("/conversations")
	conversations.Post("/", s.FindOrCreateConversation)
	conversations.Get("/", s.GetConversations)
	conversations.Post("/:id/messages", s.SendMessage)
	conversations.Get("/:id", s.GetConversation)

	// Story routes
	stories := api.Group("/stories")
	stories.Get("/", s.GetActiveStories)
	stories.Post("/", s.CreateStory)

	// Notification routes
	notifications := api.Group("/notifications")
	notifications.Get("/", s.GetNotifications)
	notifications.Get("/unread-count", s.GetUnreadCount)
	notifications.Post("/seen", s.MarkNotificationsSeen)

	// Settings routes
	settings := api.Group("/settings")
	settings.Get("/", s.GetSettings)
	settings.Put("/theme", s.SetTheme)
	settings.Post("/theme/toggle", s.ToggleTheme)

	// Websocket change feed
	api.Get("/ws", s.WebSocketUpgrade(), s.WebSocketHandler())
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. The store is the only
// dependency; readiness means the snapshot backend answers a save-less probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	status := fiber.StatusOK
	overall := "healthy"
	if s.store == nil {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"time":   time.Now(),
	})
}

// Start builds the Fiber app and listens on the configured port.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Sadat API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			s.log.Error("unhandled error", "error", err.Error())
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	s.log.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			s.log.Error("error shutting down HTTP server", "error", err.Error())
		}
	}
	s.log.Info("server shutdown complete")
	return nil
}
