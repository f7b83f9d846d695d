package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "forecastd/internal/api/http"
	"forecastd/internal/cache"
	"forecastd/internal/config"
	"forecastd/internal/forecast"
	"forecastd/internal/geocode"
	"forecastd/internal/provider/pirateweather"
	"forecastd/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Cache store: Valkey when configured, otherwise process-local memory.
	var store cache.Store
	if cfg.ValkeyAddr != "" {
		valkeyStore, err := cache.NewValkeyStore(cfg.ValkeyAddr)
		if err != nil {
			log.Fatalf("failed to connect to valkey: %v", err)
		}
		defer valkeyStore.Close()
		store = valkeyStore
	} else {
		store = cache.NewMemoryStore()
	}
	forecastCache := cache.New(store, cfg.CacheTTL)

	// Collaborators and the core orchestrator.
	resolver := geocode.NewResolver(geocode.NewNominatimSearcher(cfg.NominatimBaseURL, cfg.HTTPTimeout))
	client := pirateweather.NewClient(httpClient, cfg.PirateWeatherAPIKey)
	service := forecast.NewService(resolver, client, forecastCache)

	// Scheduler that keeps configured queries warm.
	sched := scheduler.New(cfg.PrefetchQueries, cfg.PrefetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "forecastd",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "forecastd",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, forecastCache)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
