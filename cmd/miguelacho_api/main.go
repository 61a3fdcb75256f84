package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/miguelacho_api/internal/adapters/sheets"
	"github.com/SscSPs/miguelacho_api/internal/core/services"
	"github.com/SscSPs/miguelacho_api/internal/handlers"
	"github.com/SscSPs/miguelacho_api/internal/middleware"
	"github.com/SscSPs/miguelacho_api/internal/platform/config"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
	"github.com/SscSPs/miguelacho_api/internal/repositories/tables"
	"github.com/SscSPs/miguelacho_api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Miguelacho API
// @version 1.0
// @description Currency conversion backed by the Miguelacho rate spreadsheet.

// @host localhost:8081
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		return 1
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	gateway, err := sheets.NewGatewayFromConfig(ctx, cfg, appMetrics, logger)
	if err != nil {
		logger.Error("Failed to initialize spreadsheet gateway", slog.String("error", err.Error()))
		return 1
	}

	tableRepo, cache, err := tables.NewTableRepositoryFromConfig(cfg, gateway, appMetrics, logger)
	if err != nil {
		logger.Error("Failed to initialize table repository", slog.String("error", err.Error()))
		return 1
	}

	// The server starts even when the first load fails; conversions answer 503 until a refresh succeeds.
	if cache != nil {
		if _, err := cache.Refresh(ctx); err != nil {
			logger.Error("Initial table load failed, serving 503 until the next refresh", slog.String("error", err.Error()))
		}
		go cache.Run(ctx, cfg.CacheRefreshInterval)
	}

	serviceContainer := services.NewServiceContainer(tableRepo, cfg.RateFields)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	convertLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		return 1
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.PermissiveCORS(),
		middleware.MetricsMiddleware(appMetrics),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return 1
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterRoutes(r, cfg, serviceContainer, appMetrics, middleware.RateLimit(convertLimiter))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("fetch_policy", cfg.FetchPolicy))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, draining in-flight requests",
		slog.Duration("grace_period", cfg.ShutdownGracePeriod))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown took too long, forcing exit", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("HTTP server closed")
	return 0
}
