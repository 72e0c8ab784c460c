// Package main is the entry point for the POS back-office API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/chrisemayers/pos-backoffice/config"
	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/reports"
	infracache "github.com/chrisemayers/pos-backoffice/internal/infra/cache"
	"github.com/chrisemayers/pos-backoffice/internal/infra/db"
	"github.com/chrisemayers/pos-backoffice/internal/infra/server/router"
	"github.com/chrisemayers/pos-backoffice/internal/integration/adapters"
	"github.com/chrisemayers/pos-backoffice/internal/integration/cache"
	"github.com/chrisemayers/pos-backoffice/internal/integration/entrypoint/controller"
	"github.com/chrisemayers/pos-backoffice/internal/integration/entrypoint/middleware"
	"github.com/chrisemayers/pos-backoffice/internal/integration/persistence"
	"github.com/chrisemayers/pos-backoffice/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting POS Back-Office API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Resolve the store timezone used for day bucketing
	location, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		slog.Error("Invalid analytics timezone", "timezone", cfg.Analytics.Timezone, "error", err)
		os.Exit(1)
	}

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.SaleDocumentModel{},
		&model.ReturnDocumentModel{},
		&model.ProductModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Create health controller with database health checker
	healthController := controller.NewHealthController(database.HealthCheck)

	// Create repositories
	recordRepo := persistence.NewRecordRepository(database.DB())
	productRepo := persistence.NewProductRepository(database.DB())

	// Product names are cached in Redis when it is reachable; otherwise the
	// catalog is queried directly
	var catalog reports.ProductCatalog = productRepo
	redisClient, err := infracache.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, product name cache disabled", "error", err)
	} else {
		catalog = cache.NewCachedProductCatalog(productRepo, redisClient, cfg.Analytics.NameCacheTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}()
	}

	settings := reports.Settings{
		Currency: cfg.Analytics.DefaultCurrency,
		Location: location,
		TopN:     cfg.Analytics.TopProducts,
	}

	// Create use cases
	getSalesSummaryUseCase := reports.NewGetSalesSummaryUseCase(recordRepo, catalog, settings)
	getReturnsSummaryUseCase := reports.NewGetReturnsSummaryUseCase(recordRepo, settings)
	comparePeriodsUseCase := reports.NewComparePeriodsUseCase(recordRepo, catalog, settings)

	// Create controllers and middleware
	reportsController := controller.NewReportsController(
		getSalesSummaryUseCase,
		getReturnsSummaryUseCase,
		comparePeriodsUseCase,
		location,
	)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	reportsRateLimiter := middleware.NewRateLimiterWithConfig(60, time.Minute)

	// Setup router
	r := router.NewRouter(healthController, reportsController, reportsRateLimiter, authMiddleware)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
