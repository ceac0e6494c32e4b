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
	"time"

	"accrete-server/internal/auth"
	"accrete-server/internal/middleware"
	"accrete-server/internal/planet"
	"accrete-server/internal/server"
	"accrete-server/internal/shared/config"
	"accrete-server/internal/shared/database"
	"accrete-server/internal/shared/logger"
	sharedredis "accrete-server/internal/shared/redis"
	"accrete-server/internal/system"
	"accrete-server/internal/telemetry"
)

const (
	shutdownTimeout = 15 * time.Second
	cleanupInterval = time.Minute
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("Failed to flush traces", "error", err)
		}
	}()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if err := db.RunMigrations(ctx, os.DirFS("."), cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := sharedredis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
		redisClient = nil
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", "error", err)
		}
	}()

	issuer, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		return fmt.Errorf("create token issuer: %w", err)
	}
	states := auth.NewStateManager(0)
	go states.Run(ctx, cleanupInterval)

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	go limiter.Run(ctx, cleanupInterval)

	baseLogger := slog.Default()
	cacheTTL := time.Duration(cfg.Generation.CacheTTLMinutes) * time.Minute

	planetService := planet.NewService(planet.NewRepository(db, baseLogger), baseLogger)
	systemService := system.NewService(
		system.NewRepository(db, baseLogger),
		planetService,
		db,
		system.NewCache(redisClient, cacheTTL, baseLogger),
		cfg.Generation,
		baseLogger,
	)

	routes := server.NewRoutes(server.RoutesConfig{
		DB:            db,
		Redis:         redisClient,
		SystemService: systemService,
		PlanetService: planetService,
		Issuer:        issuer,
		States:        states,
		Limiter:       limiter,
		Config:        cfg,
	})
	handler := middleware.NewCORS(cfg.Frontend).Middleware(routes.Setup())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Accrete server starting", "addr", srv.Addr, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
