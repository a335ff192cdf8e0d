package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	authadapters "remind/internal/auth/adapters"
	authapp "remind/internal/auth/app"
	authports "remind/internal/auth/ports"
	"remind/internal/config"
	"remind/internal/logging"
	"remind/internal/observability"
	reminderadapters "remind/internal/reminder/adapters"
	reminderapp "remind/internal/reminder/app"
	reminderports "remind/internal/reminder/ports"
	serverHTTP "remind/internal/server/http"
)

func main() {
	logger := logging.NewComponentLogger("Main")

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatalf("jwt_secret is required (set REMIND_JWT_SECRET or remind-config.json)")
	}

	logger.Info("=== Server Configuration ===")
	logger.Info("Environment: %s", cfg.Environment)
	logger.Info("Listen: %s", cfg.Addr())
	logger.Info("Storage: %s", storageKind(cfg))
	logger.Info("CORS enabled: %t", cfg.EnableCORS)
	logger.Info("Rate limit: %d/min (burst %d)", cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	logger.Info("===========================")

	userRepo, reminderRepo, cleanup, err := buildStores(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer cleanup()

	tokens := authadapters.NewJWTTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)
	authService := authapp.NewService(userRepo, tokens)
	reminderService := reminderapp.NewService(reminderRepo, logging.NewComponentLogger("ReminderService"))

	metrics, err := observability.NewRequestMetrics("remind")
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	router := serverHTTP.NewRouter(serverHTTP.RouterDeps{
		Config:          cfg,
		AuthService:     authService,
		AuthHandler:     serverHTTP.NewAuthHandler(authService),
		ReminderHandler: serverHTTP.NewReminderHandler(reminderService),
		Metrics:         metrics,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Server listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

func storageKind(cfg *config.ServerConfig) string {
	if cfg.DatabaseURL != "" {
		return "postgres"
	}
	return "in-memory"
}

// buildStores selects postgres when a database URL is configured and falls
// back to in-memory stores otherwise, which is enough for local development.
func buildStores(cfg *config.ServerConfig) (authports.UserRepository, reminderports.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		return authadapters.NewMemoryUserRepo(), reminderadapters.NewMemoryStore(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	userRepo := authadapters.NewPostgresUserRepo(pool)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	reminderRepo := reminderadapters.NewPostgresStore(pool)
	if err := reminderRepo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	return userRepo, reminderRepo, pool.Close, nil
}
