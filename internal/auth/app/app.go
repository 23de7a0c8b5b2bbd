package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpapi "github.com/amitmore-007/Recipe-Generator/internal/auth/http"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/service"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store/drivers/postgres"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store/drivers/sqlite"
	"github.com/amitmore-007/Recipe-Generator/internal/recipe"
	"github.com/amitmore-007/Recipe-Generator/pkg/cryptox"
	"github.com/amitmore-007/Recipe-Generator/pkg/httpx"
	"github.com/amitmore-007/Recipe-Generator/pkg/jwtx"
	"github.com/amitmore-007/Recipe-Generator/pkg/otelx"
	"github.com/amitmore-007/Recipe-Generator/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	serviceName = "recipe-auth"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db            store.Store
	hasher        cryptox.PasswordHasher
	traceShutdown otelx.ShutdownFunc

	// Services
	tokenService        *service.TokenService
	authService         *service.AuthService
	housekeepingService *service.HousekeepingService
	recipeClient        *recipe.Client

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if len(cfg.JWTSecret) < jwtx.RecommendedSecretBytes {
		app.logger.Warn("JWT_SECRET is shorter than recommended",
			"bytes", len(cfg.JWTSecret),
			"recommended", jwtx.RecommendedSecretBytes,
		)
	}

	traceShutdown, err := otelx.Setup(ctx, otelx.Config{
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: serviceName,
		Version:     BuildVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.traceShutdown = traceShutdown

	if err := app.initDatabase(ctx); err != nil {
		_ = app.traceShutdown(ctx)
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		_ = app.traceShutdown(ctx)
		return nil, err
	}
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		_ = app.traceShutdown(ctx)
		return nil, err
	}

	return app, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	if err := app.traceShutdown(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// openStore picks the driver from the DATABASE_URL scheme.
func openStore(ctx context.Context, databaseURL string) (store.Store, string, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		st, err := postgres.NewStore(ctx, databaseURL)
		return st, "postgres", err
	}
	st, err := sqlite.NewStore(databaseURL)
	return st, "sqlite", err
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	db, driver, err := openStore(ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", driver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	hasher, err := cryptox.NewHasher(app.cfg.PasswordHashAlgorithm, app.cfg.BcryptCost)
	if err != nil {
		return &ConfigError{Field: "PASSWORD_HASH_ALGORITHM", Reason: err.Error()}
	}
	app.hasher = hasher

	tokens, err := service.NewTokenService([]byte(app.cfg.JWTSecret), app.cfg.Issuer, jwtx.DefaultSessionTTL, time.Now)
	if err != nil {
		return &ConfigError{Field: "JWT_SECRET", Reason: err.Error()}
	}
	app.tokenService = tokens

	app.authService = service.NewAuthService(app.db, app.hasher, app.tokenService, app.cfg.HashConcurrency)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.LoginAttemptRetention,
	)

	app.recipeClient = recipe.NewClient(app.cfg.RecipeServiceURL, app.cfg.RecipeServiceTimeout)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	trusted, err := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	if err != nil {
		return &ConfigError{Field: "TRUSTED_PROXIES", Reason: err.Error()}
	}

	router := httpapi.NewRouter(
		app.tokenService,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSAllowedOrigins,
		app.cfg.RateLimits,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.RecipeService = app.recipeClient
	router.ClientIP = httpx.ClientIPExtractor(trusted)
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
