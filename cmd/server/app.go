package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/diewo77/go-devis/internal/config"
	"github.com/diewo77/go-devis/internal/handlers"
	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/metrics"
	"github.com/diewo77/go-devis/internal/notify"
	"github.com/diewo77/go-devis/internal/persist"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/internal/storage"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/store/seed"
)

// App is the main application handler: the stores rehydrated from storage
// and every route serving them.
type App struct {
	mux     *http.ServeMux
	log     *slog.Logger
	metrics *metrics.Metrics
	adapter storage.Adapter
	writer  *persist.Writer
	stores  *store.Stores
}

// NewApp opens storage, rehydrates the stores and sets up the routes.
func NewApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	var m *metrics.Metrics
	if cfg.App.MetricsEnabled {
		m = metrics.New()
	}

	adapter, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	app, err := newApp(ctx, cfg, log, m, adapter)
	if err != nil {
		_ = adapter.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, m *metrics.Metrics, adapter storage.Adapter) (*App, error) {
	var opts []store.Option
	if cfg.App.StatusPermissive {
		opts = append(opts, store.WithPermissiveStatus())
	}
	stores := store.New(opts...)

	data := seed.Empty()
	if cfg.App.Seed {
		var err error
		if data, err = seed.Load(); err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
	}

	writer := persist.NewWriter(adapter, log, m)
	if err := persist.BindAll(ctx, writer, stores, data); err != nil {
		_ = writer.Close(ctx)
		return nil, fmt.Errorf("rehydrate: %w", err)
	}

	billing := services.NewBilling(stores, log)
	if cfg.Telegram.Enabled() {
		bot, err := notify.Dial(cfg.Telegram.Token, cfg.Telegram.ChatID, stores.Settings, log)
		if err != nil {
			// notifications are optional
			log.Warn("telegram disabled", "error", err)
		} else {
			billing.SetNotifier(bot)
		}
	}

	app := &App{
		mux:     http.NewServeMux(),
		log:     log,
		metrics: m,
		adapter: adapter,
		writer:  writer,
		stores:  stores,
	}
	app.setupRoutes(billing)
	return app, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := handlers.WithLanguage(a.stores.Settings, a.mux)
	handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes(billing *services.Billing) {
	resolver := services.NewResolver(a.stores)

	handlers.NewClientHandler(a.stores.Clients).Register(a.mux)
	handlers.NewMaterialHandler(a.stores.Materials).Register(a.mux)
	handlers.NewQuotationHandler(a.stores, resolver, billing, a.log).Register(a.mux)
	handlers.NewInvoiceHandler(a.stores.Invoices, billing, a.log).Register(a.mux)
	handlers.NewSettingsHandler(a.stores.Settings).Register(a.mux)
	handlers.NewExportHandler(a.stores, resolver, a.log).Register(a.mux)
	handlers.NewDashboardHandler(services.NewDashboard(a.stores, billing)).Register(a.mux)

	a.mux.HandleFunc("GET /health", a.health)
	if a.metrics != nil {
		a.mux.Handle("GET /metrics", a.metrics.Handler())
	}
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Close writes pending snapshots and releases the storage backend.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.writer.Close(ctx), a.adapter.Close())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging middleware.
func withLogging(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
