package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/meharaz2020/fair-dashboard/internal/adapters/primary/http"
	mw "github.com/meharaz2020/fair-dashboard/internal/adapters/primary/http/middleware"
	"github.com/meharaz2020/fair-dashboard/internal/adapters/primary/websocket"
	"github.com/meharaz2020/fair-dashboard/internal/adapters/secondary/postgres"
	"github.com/meharaz2020/fair-dashboard/internal/config"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	"github.com/meharaz2020/fair-dashboard/internal/core/services"
	"github.com/meharaz2020/fair-dashboard/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"config", cfg.String(),
	)

	// 3. Database access. Connections are opened per query, so only the
	// settings are validated here.
	connector, err := postgres.NewConnector(cfg.Database.URL, cfg.Database.ConnectTimeout)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	fairRepo := postgres.NewFairRepository(connector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := fairRepo.Ping(ctx); err != nil {
		// Not fatal: each refresh tick reconnects on its own.
		logger.Warn("database ping failed", "error", err)
	} else {
		logger.Info("database reachable")
	}

	// 4. Real-time publisher and refresh loop
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	dashboardService := services.NewDashboardService(fairRepo, hub, cfg.Dashboard.RefreshInterval, logger)
	go dashboardService.Run(ctx)

	// 5. Initialize Rate Limiters
	var generalRateLimiter, refreshRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalConfig := mw.DefaultRateLimiterConfig(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
		generalConfig.TrustedProxies = cfg.RateLimit.TrustedProxies
		generalRateLimiter = mw.NewRateLimiter(generalConfig)
		defer generalRateLimiter.Stop()

		refreshConfig := mw.RefreshRateLimiterConfig(cfg.RateLimit.RefreshRPS, cfg.RateLimit.RefreshBurst)
		refreshConfig.TrustedProxies = cfg.RateLimit.TrustedProxies
		refreshRateLimiter = mw.NewRateLimiter(refreshConfig)
		defer refreshRateLimiter.Stop()
	}

	// 6. Handlers (Primary Adapters)
	errorHandler := httpAdapter.NewErrorHandler(logger)
	dashboardHandler := httpAdapter.NewDashboardHandler(dashboardService, errorHandler, httpAdapter.DashboardOptions{
		Title:           cfg.Dashboard.Title,
		LogoURL:         cfg.Dashboard.LogoURL,
		DefaultMode:     domain.Mode(cfg.Dashboard.DefaultMode),
		RefreshInterval: cfg.Dashboard.RefreshInterval,
	}, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, cfg, logger)
	healthHandler := httpAdapter.NewHealthHandler(fairRepo, dashboardService, 3*cfg.Dashboard.RefreshInterval, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for orchestrator health checks)
	healthHandler.RegisterRoutes(r)

	// Dashboard page and server-rendered report
	dashboardHandler.RegisterPageRoutes(r)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
			ExposedHeaders: []string{mw.RequestIDHeader, "Retry-After"},
			MaxAge:         300,
		}))

		r.Get("/ws", wsHandler.ServeHTTP)

		var refreshMiddleware []func(http.Handler) http.Handler
		if refreshRateLimiter != nil {
			refreshMiddleware = append(refreshMiddleware, refreshRateLimiter.Middleware)
		}
		dashboardHandler.RegisterAPIRoutes(r, refreshMiddleware...)
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a failed listener
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		stop()
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown. Websocket connections are hijacked, so the hub
	// closes them once ctx is cancelled.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	select {
	case <-hub.Done():
	case <-shutdownCtx.Done():
		logger.Warn("websocket hub did not stop before shutdown timeout")
	}

	logger.Info("server shutdown complete")
}
