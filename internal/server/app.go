// Package server wires the NutriScan server together: it opens the database,
// applies migrations, builds the services and runs the HTTP and gRPC
// transports until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/nutriscan/internal/logging"
	"github.com/dmitrijs2005/nutriscan/internal/server/assets"
	"github.com/dmitrijs2005/nutriscan/internal/server/config"
	"github.com/dmitrijs2005/nutriscan/internal/server/httpapi"
	"github.com/dmitrijs2005/nutriscan/internal/server/ratelimit"
	"github.com/dmitrijs2005/nutriscan/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/nutriscan/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/nutriscan/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	limiter        ratelimit.Limiter
	accountService *services.AccountService
	catalogService *services.CatalogService
	healthService  *services.HealthService
}

// newS3Store is a seam for tests.
var newS3Store = func(ctx context.Context, c *config.Config) (assets.Store, error) {
	s, err := assets.NewS3Store(ctx, c)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// newRedisLimiter is a seam for tests.
var newRedisLimiter = ratelimit.NewRedisLimiter

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, "nutriscan", c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return newApp(ctx, c, logger, db, rm), nil
}

// newApp builds the services on an already migrated database.
func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {

	store, err := newS3Store(ctx, c)
	if err != nil {
		logger.Warn(ctx, "asset store unavailable, avatar uploads will fail", "error", err)
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		limiter:        initLimiter(ctx, c, logger),
		accountService: services.NewAccountService(db, rm, store, c, logger),
		catalogService: services.NewCatalogService(db, rm, logger),
		healthService:  services.NewHealthService(db),
	}
}

// initLimiter prefers Redis and falls back to process memory.
func initLimiter(ctx context.Context, c *config.Config, logger logging.Logger) ratelimit.Limiter {
	if c.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter()
	}

	l, err := newRedisLimiter(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, logger)
	if err != nil {
		logger.Warn(ctx, "redis unavailable, using in-memory rate limiter", "addr", c.RedisAddr, "error", err)
		return ratelimit.NewMemoryLimiter()
	}
	return l
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.accountService, app.catalogService, app.healthService,
		app.config.SecretKey, app.config.RequireTokenBinding)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := httpapi.NewRouter(httpapi.Deps{
		Accounts: app.accountService,
		Catalog:  app.catalogService,
		Health:   app.healthService,
		Limiter:  app.limiter,
		Config:   app.config,
		Logger:   app.logger,
	})

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both transports until a signal arrives, ctx is cancelled or
// either server fails, then releases the limiter and the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.limiter.Close()
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
