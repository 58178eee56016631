// Package app wires together all storefront dependencies and runs the
// HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mousesolnat/saleplugin-sub000/internal/assistant"
	"github.com/mousesolnat/saleplugin-sub000/internal/auth"
	"github.com/mousesolnat/saleplugin-sub000/internal/config"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	handler "github.com/mousesolnat/saleplugin-sub000/internal/handler/http"
	"github.com/mousesolnat/saleplugin-sub000/internal/kvstore"
	kvfile "github.com/mousesolnat/saleplugin-sub000/internal/kvstore/file"
	kvredis "github.com/mousesolnat/saleplugin-sub000/internal/kvstore/redis"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	"github.com/mousesolnat/saleplugin-sub000/internal/seo"
	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	"github.com/mousesolnat/saleplugin-sub000/internal/view"
	"github.com/mousesolnat/saleplugin-sub000/pkg/health"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httpclient"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	redis      *goredis.Client
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Durable store backend.
	var store kvstore.Store
	var redisClient *goredis.Client
	switch cfg.StorageBackend {
	case "redis":
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = kvredis.New(redisClient)
		logger.Info("using redis storage", slog.String("addr", cfg.RedisAddr))
	default:
		fileStore, err := kvfile.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		store = fileStore
		logger.Info("using file storage", slog.String("dir", cfg.DataDir))
	}

	// Repositories load persisted state, falling back to seed data.
	repos := repository.New(ctx, store, logger)
	bus := event.NewBus(logger)

	// Storefront services.
	catalog := service.NewCatalogService(repos.Products)
	cart := service.NewCartService(bus)
	wishlist := service.NewWishlistService(repos.Wishlist)
	history := service.NewHistoryService(repos.History, bus)
	session := service.NewSessionService(ctx, repos.Customers, store, bus, logger)
	checkout := service.NewCheckoutService(repos.Orders, repos.Coupons, cart)
	tickets := service.NewTicketService(repos.Tickets)

	// Back-office.
	jwtManager := auth.NewJWTManager(cfg.AdminJWTSecret, cfg.AdminJWTExpiry)
	admin := service.NewAdminService(repos, jwtManager, bus, session, logger)

	// Navigation and derived head state. The synchronizer subscribes
	// before any navigation can happen.
	router := view.NewRouter(catalog, history, repos.Pages, bus)
	synchronizer := seo.NewSynchronizer(repos.Settings, bus)

	// AI assistant behind a circuit breaker.
	assistantHTTP := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("assistant"),
		logger,
	)
	assistantClient := assistant.New(assistant.Config{
		BaseURL: cfg.AssistantAPIURL,
		APIKey:  cfg.AssistantAPIKey,
		Model:   cfg.AssistantModel,
		Timeout: cfg.AssistantTimeout,
	}, assistantHTTP, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("store", store.Ping)

	mux := handler.NewRouter(handler.Handlers{
		Storefront: handler.NewStorefrontHandler(catalog, history, repos.Pages, repos.BlogPosts, repos.Settings, logger),
		Cart:       handler.NewCartHandler(cart, wishlist, catalog, logger),
		Session:    handler.NewSessionHandler(session, checkout, tickets, logger),
		Checkout:   handler.NewCheckoutHandler(checkout, tickets, logger),
		Navigation: handler.NewNavigationHandler(router, synchronizer, assistantClient, catalog, logger),
		Admin:      handler.NewAdminHandler(admin, repos, logger),
		Health:     healthHandler,
		AdminGate:  handler.AdminAuth(admin, logger),
	}, cfg.CORSAllowedOrigins, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		redis:      redisClient,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown drains in-flight HTTP requests, then closes the redis client
// when one is in use.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
