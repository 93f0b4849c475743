// Command main is the entry point for the Sadat API server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sadat/internal/config"
	"sadat/internal/persist"
	"sadat/internal/seed"
	"sadat/internal/server"
	"sadat/internal/store"

	"github.com/gofiber/fiber/v2"
)

func main() {
	seedDemo := flag.Bool("seed", false, "populate a fresh store with demo content")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	adapter, err := persist.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open snapshot backend: %v", err)
	}

	st, err := store.New(ctx, adapter, store.WithDefaultTheme(cfg.DefaultTheme))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	if *seedDemo {
		// Only seed a pristine store; re-running with -seed must not
		// duplicate the demo content.
		if stats := st.Stats(ctx); stats.Users == 1 && stats.Posts == 0 {
			if err := seed.Demo(ctx, st, seed.DefaultOptions()); err != nil {
				log.Fatalf("Failed to seed demo data: %v", err)
			}
			log.Println("Demo data seeded")
		} else {
			log.Println("Store already has content, skipping demo seed")
		}
	}

	srv := server.NewServer(cfg, st)

	app := fiber.New(fiber.Config{
		AppName:   "Sadat API",
		BodyLimit: 10 * 1024 * 1024, // room for data-URL images
	})

	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
