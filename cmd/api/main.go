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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "event-judging/docs" // This is for Swagger
	"event-judging/internal/auth"
	"event-judging/internal/config"
	"event-judging/internal/database"
	"event-judging/internal/handlers"
	"event-judging/internal/logger"
	"event-judging/internal/middleware"
	"event-judging/internal/policy"
	"event-judging/internal/repository"
	"event-judging/internal/service"
	"event-judging/internal/vault"
	"event-judging/migrations"
)

// @title Event Judging API
// @version 1.0
// @description Certification, deduction and uncertification workflows for contest judging
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	if err := run(cfg); err != nil {
		slog.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checkers := map[string]handlers.HealthChecker{}

	// Signing key comes from Vault when enabled, JWT_SECRET otherwise
	jwtSecret := cfg.JWT.Secret
	if cfg.Vault.Enabled {
		vaultClient, err := vault.NewClient(&vault.Config{
			Address: cfg.Vault.Address,
			Token:   cfg.Vault.Token,
			KVMount: cfg.Vault.KVMount,
			Timeout: cfg.Vault.Timeout,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize vault client: %w", err)
		}
		jwtSecret, err = vaultClient.ReadString(ctx, cfg.Vault.JWTKeyPath, cfg.Vault.JWTKeyField)
		if err != nil {
			return fmt.Errorf("failed to load signing key from vault: %w", err)
		}
		checkers["vault"] = vaultClient
		slog.Info("Signing key loaded from Vault", "vault_addr", cfg.Vault.Address, "path", cfg.Vault.JWTKeyPath)
	}
	authService := auth.NewService(jwtSecret, cfg.JWT.Expiration)

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	checkers["database"] = db
	slog.Info("Database connection established", "driver", db.DriverName())

	// Run database migrations
	if err := database.NewMigrationExecutor(db.DB).RunMigrations(ctx, migrations.FS); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database migrations completed")

	rolePolicy, err := policy.Load(cfg.Policy.File)
	if err != nil {
		return fmt.Errorf("failed to load role policy: %w", err)
	}
	if cfg.Policy.File != "" {
		slog.Info("Role policy loaded", "file", cfg.Policy.File)
	}

	// Initialize services
	store := repository.NewStore(db.DB)
	auditService := service.NewAuditService(store)
	certificationService := service.NewCertificationService(store, rolePolicy, auditService)
	deductionService := service.NewDeductionService(store, rolePolicy, auditService)
	uncertificationService := service.NewUncertificationService(store, rolePolicy, auditService)
	resetService := service.NewResetService(store, rolePolicy, auditService)

	// Initialize middleware
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)
	go rateLimiter.Cleanup(ctx)

	// Setup router
	mux := http.NewServeMux()
	router := &handlers.Router{
		Auth:             middleware.NewAuthMiddleware(authService),
		RBAC:             middleware.NewRBACMiddleware(rolePolicy),
		Certifications:   handlers.NewCertificationHandler(certificationService),
		Deductions:       handlers.NewDeductionHandler(deductionService),
		Uncertifications: handlers.NewUncertificationHandler(uncertificationService),
		Resets:           handlers.NewResetHandler(resetService),
		Audit:            handlers.NewAuditHandler(auditService),
		Config:           handlers.NewConfigHandler(rolePolicy, cfg.App.Version, checkers),
	}
	router.Register(mux)

	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Apply global middleware
	handler := middleware.LoggingMiddleware(
		middleware.SecurityHeaders(
			corsMw.Handler(
				rateLimiter.Limit(mux),
			),
		),
	)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal to gracefully shut down the server
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
