// Package server wires the storefront backend together: configuration,
// logging, database, repositories, services and the HTTP surface, plus
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/apetrenko/storefront/internal/logging"
	"github.com/apetrenko/storefront/internal/server/cachex"
	"github.com/apetrenko/storefront/internal/server/config"
	"github.com/apetrenko/storefront/internal/server/httpapi"
	"github.com/apetrenko/storefront/internal/server/repositories/products"
	"github.com/apetrenko/storefront/internal/server/repositories/repomanager"
	"github.com/apetrenko/storefront/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	cache  *cachex.Redis
	router http.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, "storefront", cfg.LogLevel)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	var catalog products.Repository = rm.Products(db)
	var cache *cachex.Redis
	if cfg.RedisAddr != "" {
		cache = cachex.New(cfg.RedisAddr)
		if err := cache.Ping(ctx); err != nil {
			// The cache is an optimization; run without it if redis is down.
			logger.Warn(ctx, "redis unavailable, product cache disabled", "error", err)
			_ = cache.Close()
			cache = nil
		} else {
			catalog = &products.CachedRepository{Next: catalog, Cache: cache, TTL: cfg.ProductCacheTTL}
		}
	}

	handlers := &httpapi.Handlers{
		Auth:    services.NewAuthService(db, rm, cfg),
		Orders:  services.NewOrderService(db, rm, catalog),
		Catalog: services.NewCatalogService(catalog),
		Log:     logger.With("module", "httpapi"),
	}

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		cache:  cache,
		router: httpapi.NewRouter(handlers, []byte(cfg.SecretKey)),
	}, nil
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "http server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return err
	}

	if app.cache != nil {
		_ = app.cache.Close()
	}
	return app.db.Close()
}
