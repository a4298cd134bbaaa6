package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/account_movements/internal/adapters/database/pgsql"
	"github.com/SscSPs/account_movements/internal/adapters/logfile"
	portsrepo "github.com/SscSPs/account_movements/internal/core/ports/repositories"
	"github.com/SscSPs/account_movements/internal/core/services"
	"github.com/SscSPs/account_movements/internal/handlers"
	"github.com/SscSPs/account_movements/internal/middleware"
	"github.com/SscSPs/account_movements/internal/platform/config"
	"github.com/SscSPs/account_movements/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	repos, cleanup, err := newRepositoryProvider(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize movement store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	container := services.NewServiceContainer(cfg, repos)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, rateLimiter)

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("movement_store", cfg.MovementStore),
		slog.String("account_id_format", cfg.AccountIDFormat))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newRepositoryProvider builds the configured movement store. The returned
// cleanup releases its resources.
func newRepositoryProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.MovementStore != config.StorePostgres {
		logger.Info("Using text log movement store",
			slog.String("deposits", cfg.DepositsLogPath),
			slog.String("withdrawals", cfg.WithdrawalsLogPath))
		store := logfile.NewMovementLog(cfg.DepositsLogPath, cfg.WithdrawalsLogPath, logger)
		return portsrepo.RepositoryProvider{MovementRepo: store}, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool, logger)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return portsrepo.RepositoryProvider{MovementRepo: pgsql.NewPgxMovementRepository(dbPool)},
		func() { database.ClosePgxPool(dbPool, logger) },
		nil
}
