// @title Catalog Backend API
// @version 1.0
// @description Catalog Backend API for categories and items with per-user ownership
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "CATALOG_BACK-END/docs" // This is required for swagger
	"CATALOG_BACK-END/internal/config"
	"CATALOG_BACK-END/internal/handlers"
	"CATALOG_BACK-END/internal/logging"
	"CATALOG_BACK-END/internal/middleware"
	"CATALOG_BACK-END/internal/routes"
	"CATALOG_BACK-END/internal/services"
	"CATALOG_BACK-END/internal/storage"
	"CATALOG_BACK-END/internal/storage/postgres"
	"CATALOG_BACK-END/internal/storage/sqlite"
	"CATALOG_BACK-END/internal/telemetry"
	"CATALOG_BACK-END/internal/validation"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("catalog: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logger.Slog().Info("starting catalog backend", "environment", cfg.Environment, "db_driver", cfg.Database.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Slog().Warn("tracer shutdown", "error", err)
		}
	}()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	// --- Services ---
	tokens := middleware.NewTokenManager(cfg.JWT)
	validate := validation.New()
	authService := services.NewAuthService(store, tokens, validate, logger.With("component", "auth"))
	catalogService := services.NewCatalogService(store, validate, logger.With("component", "catalog"))

	// --- HTTP Handlers ---
	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService, logger),
		Categories: handlers.NewCategoryHandler(catalogService, logger),
		Items:      handlers.NewItemHandler(catalogService, logger),
		Health:     handlers.NewHealthHandler(store),
	}
	if cfg.IsGoogleOAuthConfigured() {
		h.Google = handlers.NewGoogleAuthHandler(authService, cfg.GoogleOAuth, cfg.IsProduction(), logger)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.SetupRoutes(h, tokens, cfg, logger),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Slog().Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// รอ SIGINT/SIGTERM เพื่อปิดอย่างสุภาพ
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Slog().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Slog().Info("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *logging.SlogLogger) (storage.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return store, nil
	default:
		connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		defer cancel()

		store, err := postgres.Open(connectCtx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := store.Migrate(connectCtx); err != nil {
				store.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Slog().Info("database migrations applied")
		}
		return store, nil
	}
}
