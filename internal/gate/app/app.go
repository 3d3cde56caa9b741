package app

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

	evbus "github.com/asaskevich/EventBus"
	"github.com/herfa/gate/internal/gate/credstore"
	httpapi "github.com/herfa/gate/internal/gate/http"
	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/internal/gate/store"
	"github.com/herfa/gate/internal/gate/store/drivers/sqlite"
	"github.com/herfa/gate/internal/gate/tokens"
	"github.com/herfa/gate/pkg/cryptox"
	"github.com/herfa/gate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the gate service together: storage, credential areas,
// services, and the HTTP surface.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	bus         evbus.Bus
	credentials *credstore.Store
	tokens      *tokens.Manager

	resolver            *service.SessionResolver
	authService         *service.AuthService
	profileService      *service.ProfileService
	directoryService    *service.DirectoryService
	statsService        *service.StatsService
	seedService         *service.SeedService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "herfa-gate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.TokenSecret == "" {
		return nil, errors.New("GATE_TOKEN_SECRET is required")
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initCredentials(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.tokens = tokens.NewManager(cfg.TokenSecret, cfg.Issuer)
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	if err := app.seedService.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	// First resolution happens before the server accepts traffic, so the
	// loading state is only ever visible if storage is slow to answer.
	if err := app.resolver.Init(ctx); err != nil {
		return fmt.Errorf("failed to resolve session state: %w", err)
	}

	app.housekeepingService.Start()

	app.logger.Info("gate service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gate service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gate service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initCredentials() error {
	sessionArea, err := credstore.NewSessionArea(credstore.Config{
		Backend: app.cfg.SessionAreaBackend,
		Redis: credstore.RedisConfig{
			Addr:     app.cfg.RedisAddr,
			Username: app.cfg.RedisUsername,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session area: %w", err)
	}

	app.bus = evbus.New()
	app.credentials = credstore.New(
		credstore.NewDurableArea(app.db.Credentials()),
		sessionArea,
		app.bus,
	)

	app.logger.Info("credential store initialized", "session_area", app.cfg.SessionAreaBackend)
	return nil
}

func (app *Application) initServices() {
	app.resolver = service.NewSessionResolver(app.credentials, app.bus)

	app.authService = &service.AuthService{
		Store:       app.db,
		Credentials: app.credentials,
		Tokens:      app.tokens,
		SessionTTL:  app.cfg.SessionTTL,
		PendingTTL:  app.cfg.PendingTTL,
	}

	app.profileService = &service.ProfileService{
		Store:       app.db,
		Credentials: app.credentials,
	}
	app.directoryService = &service.DirectoryService{Store: app.db}
	app.statsService = &service.StatsService{Store: app.db}

	app.seedService = &service.SeedService{
		Store:     app.db,
		Issuer:    app.cfg.Issuer,
		Password:  app.cfg.SeedPassword,
		SeedUsers: app.cfg.SeedUsers && app.cfg.SeedPassword != "",
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Resolver = app.resolver
	router.AuthService = app.authService
	router.ProfileService = app.profileService
	router.DirectoryService = app.directoryService
	router.StatsService = app.statsService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
