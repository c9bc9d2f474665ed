// Command dawai serves the pharmacy invoice and inventory store to the desktop shell over loopback HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dawai/m/internal/api"
	"dawai/m/internal/config"
	"dawai/m/internal/seed"
	"dawai/m/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("exiting", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	st, err := store.Open(ctx, cfg.DatabaseDSN, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("close store", zap.Error(err))
		}
	}()
	logger.Info("store opened", zap.String("dsn", cfg.DatabaseDSN))

	if cfg.LegacyDir != "" {
		if _, err := seed.ImportLegacyInvoices(ctx, st, cfg.LegacyDir, time.Local, logger); err != nil {
			return err
		}
	}
	if cfg.InventoryCSV != "" {
		if _, err := seed.LoadInventoryCSV(ctx, st, cfg.InventoryCSV, logger); err != nil {
			logger.Warn("inventory catalog not loaded", zap.String("path", cfg.InventoryCSV), zap.Error(err))
		}
	}

	handler := api.New(st, st, st, logger, cfg.AllowedOrigins)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
