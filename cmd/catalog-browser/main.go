package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/catalog-browser/internal/api/handlers"
	"github.com/aaravmahajanofficial/catalog-browser/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-browser/internal/cache"
	"github.com/aaravmahajanofficial/catalog-browser/internal/config"
	"github.com/aaravmahajanofficial/catalog-browser/internal/health"
	"github.com/aaravmahajanofficial/catalog-browser/internal/metrics"
	repository "github.com/aaravmahajanofficial/catalog-browser/internal/repositories"
	service "github.com/aaravmahajanofficial/catalog-browser/internal/services"
	"github.com/aaravmahajanofficial/catalog-browser/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Session store setup
	store, err := newSessionStore(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the session store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("⚠️ Error closing session store", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Session store closed")
		}
	}()

	httpClient := repository.NewHTTPClient()
	productRepo := repository.NewProductRepo(httpClient, cfg.Source.ProductsURL(), cfg.Source.Timeout)
	catalogService := service.NewCatalogService(productRepo, store, service.SessionOptions{
		TTL:     cfg.Session.TTL,
		PerPage: cfg.Catalog.ItemsPerPage,
	})
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	pageHandler := handlers.NewPageHandler(catalogService)
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.CookieName, cfg.Session.TTL, cfg.Env == "production")

	healthChecker, err := health.NewHealthHandler(cfg, &health.Endpoints{SessionStore: store, HTTPClient: httpClient})
	if err != nil {
		slog.Error("❌ Error creating health checker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog initialized",
		slog.String("env", cfg.Env),
		slog.String("source", cfg.Source.ProductsURL()),
		slog.String("session_store", cfg.Session.Store),
		slog.Int("items_per_page", cfg.Catalog.ItemsPerPage),
	)

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /{$}", sessionMiddleware.Attach(pageHandler.Index()))
	routerMux.HandleFunc("POST /view/filters", sessionMiddleware.Attach(pageHandler.ApplyFilters()))
	routerMux.HandleFunc("POST /view/page", sessionMiddleware.Attach(pageHandler.ChangePage()))
	routerMux.HandleFunc("GET /api/v1/catalog", sessionMiddleware.Attach(catalogHandler.GetView()))
	routerMux.HandleFunc("POST /api/v1/catalog/events", sessionMiddleware.Attach(catalogHandler.ApplyEvent()))
	routerMux.HandleFunc("GET /api/v1/catalog/categories", sessionMiddleware.Attach(catalogHandler.ListCategories()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthChecker.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Recover(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
			return err
		}

		slog.Info("✅ Server shut down gracefully. All connections closed.")

		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("❌ Server stopped with error", slog.String("error", err.Error()))
	}

}

func newSessionStore(cfg *config.Config) (cache.Cache, error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		return cache.NewMemoryCache(&cfg.Cache), nil
	}

	client, err := repository.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return cache.NewRedisCache(client, &cfg.Cache), nil
}
