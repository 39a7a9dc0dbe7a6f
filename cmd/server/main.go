package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-devis/internal/config"
	"github.com/diewo77/go-devis/internal/logger"
	"github.com/diewo77/go-devis/internal/storage"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Open the storage backend, creating its schema, and exit")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.Env, cfg.App.LogLevel)

	if *migrateOnlyFlag {
		adapter, err := storage.Open(context.Background(), cfg.Storage, log)
		if err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		_ = adapter.Close()
		log.Info("storage schema ready")
		return
	}

	app, err := NewApp(context.Background(), cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(log, app),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Server.Port, "env", cfg.App.Env, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	// last snapshots must reach storage before exit
	if err := app.Close(ctx); err != nil {
		log.Error("error flushing state", "error", err)
	}
	log.Info("server stopped gracefully")
}
