// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/nexisretail/nexis-be/internal/adapters/db"
	redis_a "github.com/nexisretail/nexis-be/internal/adapters/redis_adapter"
	"github.com/nexisretail/nexis-be/internal/core/services"
	"github.com/nexisretail/nexis-be/internal/handlers"
	"github.com/nexisretail/nexis-be/internal/handlers/middleware"
	"github.com/nexisretail/nexis-be/internal/pkg/config"
	"github.com/nexisretail/nexis-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger(&logger.LogConfig{Level: "debug", Format: "json"})

	slogger.Info("starting nexis retail engine",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(&logger.LogConfig{
		Level:          cfg.App.LogLevel,
		Format:         cfg.App.LogFormat,
		AddSource:      cfg.App.Debug,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
	})
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	if !cfg.IsProduction() {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Warn("failed to run migrations", slog.String("error", err.Error()))
		}
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			_ = server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database        *db.Database
	redisClient     *redis.Client
	asynqClient     *asynq.Client
	checkoutService *services.CheckoutService
	checkoutHandler *handlers.CheckoutHandler
	itemHandler     *handlers.ItemHandler
	storeHandler    *handlers.StoreHandler
	clientHandler   *handlers.ClientHandler
	healthHandler   *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.asynqClient != nil {
		_ = d.asynqClient.Close()
	}
	if d.redisClient != nil {
		_ = d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	})
	deps.asynqClient = asynqClient

	catalogRepo := db.NewCatalogRepository(database, logger)
	ledgerRepo := db.NewLedgerRepository(database, logger)
	clientRepo := db.NewClientRepository(database, logger)

	deps.checkoutService = services.NewCheckoutService(
		catalogRepo,
		ledgerRepo,
		clientRepo,
		cache,
		services.NewAsynqEnqueuer(asynqClient),
		cfg.Checkout.StoreDirectory,
		services.CheckoutConfig{
			ItemConcurrency:  cfg.Checkout.ItemConcurrency,
			StoreConcurrency: cfg.Checkout.StoreConcurrency,
			ReserveRetries:   cfg.Checkout.ReserveRetries,
			SummaryTTL:       cfg.Checkout.SummaryTTL,
		},
		logger,
	)

	deps.checkoutHandler = handlers.NewCheckoutHandler(deps.checkoutService, logger)
	deps.itemHandler = handlers.NewItemHandler(deps.checkoutService, logger)
	deps.storeHandler = handlers.NewStoreHandler(ledgerRepo, logger)
	deps.clientHandler = handlers.NewClientHandler(clientRepo, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, cfg, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	migrator, err := db.NewMigrator(&db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
	}, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Up(ctx)
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps)

	// Middleware applied in reverse order (innermost first)
	var handler http.Handler = mux
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)
	handler = middleware.Identity(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)
	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /health/live", deps.healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", deps.healthHandler.Readiness)

	mux.HandleFunc("POST "+apiV1+"/checkout", deps.checkoutHandler.Checkout)
	mux.HandleFunc("POST "+apiV1+"/checkout/cart", deps.checkoutHandler.CartCheckout)
	mux.HandleFunc("POST "+apiV1+"/employee/checkout", deps.checkoutHandler.EmployeeCheckout)

	mux.HandleFunc("GET "+apiV1+"/items/{id}/availability", deps.itemHandler.GetAvailability)
	mux.HandleFunc("GET "+apiV1+"/stores/{store}/sales", deps.storeHandler.ListSales)
	mux.HandleFunc("GET "+apiV1+"/clients/cart", deps.clientHandler.GetCart)
}
