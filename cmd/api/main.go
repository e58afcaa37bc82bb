package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"pauz-backend/internal/api"
	"pauz-backend/internal/config"
	"pauz-backend/internal/models"
	"pauz-backend/internal/services/assistant"
	"pauz-backend/internal/services/cache"
	"pauz-backend/internal/services/classifier"
	"pauz-backend/internal/services/conversation"
	"pauz-backend/internal/services/database"
	"pauz-backend/internal/services/journal"
	"pauz-backend/internal/services/providers"
	"pauz-backend/internal/services/stats"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadEnvFiles([]string{".env.local", ".env.development", ".env"})

	configPath := os.Getenv("PAUZ_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		fiberlog.Fatalf("Failed to load config: %v", err)
	}
	setupLogLevel(cfg.Server.LogLevel)

	if err := run(cfg); err != nil {
		fiberlog.Fatalf("Server failed: %v", err)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	var db *database.DB
	if cfg.Database != nil {
		var err error
		db, err = database.New(*cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				fiberlog.Warnf("Failed to close database: %v", err)
			}
		}()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	} else {
		fiberlog.Warn("No database configured, journals and stats endpoints disabled")
	}

	var primary, secondary models.GenerativeProvider
	if cfg.Providers.Primary != "" {
		var err error
		primary, secondary, err = providers.Chain(ctx, cfg.Providers, cfg.Breaker)
		if err != nil {
			return fmt.Errorf("failed to build provider chain: %w", err)
		}
	} else {
		fiberlog.Warn("No providers configured, serving templates and fallbacks only")
	}

	store := cache.NewStore(cfg.Cache)
	conversations := conversation.NewStore(cfg.Assistant.HistoryLimit)

	replies := assistant.New(assistant.Config{
		Policy:        cfg.Assistant,
		Cache:         store,
		Conversations: conversations,
		Primary:       primary,
		Secondary:     secondary,
	})
	hints := assistant.New(assistant.Config{
		Policy:        cfg.Assistant,
		Namespace:     models.NamespaceHint,
		Cache:         store,
		Conversations: conversations,
		Classifier:    classifier.New(classifier.DefaultToneTable()),
		Templates:     assistant.DefaultHintTemplates(),
		Fallbacks: assistant.NewFallbackPool(
			assistant.DefaultHintPools(),
			assistant.NewRandomSelector(time.Now().UnixNano()),
		),
		Primary:   primary,
		Secondary: secondary,
	})

	app := createFiberApp(cfg)
	setupMiddleware(app, cfg)

	assistantHandler := api.NewAssistantHandler(replies, hints)
	cacheHandler := api.NewCacheHandler(store)
	healthHandler := api.NewHealthHandler(db)

	app.Get("/health", healthHandler.HealthCheck)

	v1 := app.Group("/v1")
	v1.Post("/assistant/reply", assistantHandler.Reply)
	v1.Post("/assistant/hint", assistantHandler.Hint)
	v1.Get("/cache/stats", cacheHandler.Stats)

	if db != nil {
		readThrough := cache.NewReadThrough(store)
		journalHandler := api.NewJournalHandler(journal.NewService(db, readThrough))
		statsHandler := api.NewStatsHandler(stats.NewService(db, readThrough, 0))

		v1.Post("/journals", journalHandler.Create)
		v1.Get("/journals", journalHandler.List)
		v1.Get("/journals/:id", journalHandler.Get)
		v1.Delete("/journals/:id", journalHandler.Delete)
		v1.Post("/moods", journalHandler.CreateMood)
		v1.Get("/moods", journalHandler.ListMoods)
		v1.Get("/users/:id/stats", statsHandler.UserStats)
	}

	return serve(app, cfg.Server.Addr())
}

// serve runs the listener and blocks until an interrupt, then shuts the
// server down gracefully.
func serve(app *fiber.App, addr string) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := app.Listen(addr); err != nil {
			serverErrChan <- err
		}
	}()
	fiberlog.Infof("Listening on %s", addr)

	select {
	case sig := <-sigChan:
		fiberlog.Infof("Received signal: %v. Starting graceful shutdown...", sig)
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	}

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	fiberlog.Info("Server shutdown completed")
	return nil
}

func createFiberApp(cfg *config.Config) *fiber.App {
	readTimeout := time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond
	if readTimeout <= 0 {
		readTimeout = time.Minute
	}
	writeTimeout := time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond
	if writeTimeout <= 0 {
		writeTimeout = time.Minute
	}

	return fiber.New(fiber.Config{
		AppName:       "Pauz v1.0",
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
		IdleTimeout:   5 * time.Minute,
		CaseSensitive: true,
		ServerHeader:  "Pauz",
	})
}

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	isProd := strings.EqualFold(cfg.Server.Environment, "production")

	app.Use(recover.New(recover.Config{
		EnableStackTrace: !isProd,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
		Output: os.Stdout,
	}))

	allowedOrigins := cfg.Server.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		MaxAge:        86400,
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
	}))
}

func setupLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		fiberlog.SetLevel(fiberlog.LevelDebug)
	case "warn":
		fiberlog.SetLevel(fiberlog.LevelWarn)
	case "error":
		fiberlog.SetLevel(fiberlog.LevelError)
	default:
		fiberlog.SetLevel(fiberlog.LevelInfo)
	}
}
