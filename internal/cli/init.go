// Package cli provides common CLI initialization utilities shared by
// cmd/dashboard and cmd/loanstats.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Serg-Vas/financial-dashboard/internal/config"
	"github.com/Serg-Vas/financial-dashboard/internal/dataset"
	"github.com/Serg-Vas/financial-dashboard/internal/dataset/memory"
	"github.com/Serg-Vas/financial-dashboard/internal/log"
	"github.com/Serg-Vas/financial-dashboard/internal/storage"
)

// SetupLogger builds the application logger from cfg and makes it the slog default.
func SetupLogger(cfg *config.Config) *log.Logger {
	lc := log.DefaultConfig()
	lc.Level = log.ParseLevel(cfg.LogLevel)
	if cfg.LogFormat != "" {
		lc.Format = cfg.LogFormat
	}
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads .env and the environment, then validates.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return cfg
}

// Source is a dataset source that may hold resources.
type Source interface {
	dataset.LoanSource
	io.Closer
}

type nopCloser struct {
	dataset.LoanSource
}

func (nopCloser) Close() error { return nil }

// OpenSource opens the dataset source selected by cfg.DataBackend.
func OpenSource(cfg *config.Config, logger *log.Logger) (Source, error) {
	l := logger.WithComponent(log.ComponentDataset)
	switch cfg.DataBackend {
	case config.BackendSQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite dataset %s: %w", cfg.SQLiteDBPath, err)
		}
		l.Info("Initialized SQLite backend", log.FieldBackend, cfg.DataBackend, "path", cfg.SQLiteDBPath)
		return repo, nil
	case config.BackendMemory:
		store, err := memory.NewFromFile(cfg.DatasetPath)
		if err != nil {
			return nil, fmt.Errorf("seed memory dataset: %w", err)
		}
		l.Info("Initialized memory backend", log.FieldBackend, cfg.DataBackend, "seed", cfg.DatasetPath)
		return nopCloser{store}, nil
	default:
		src := dataset.NewFileSource(cfg.DatasetPath)
		l.Info("Initialized file backend", log.FieldBackend, cfg.DataBackend, "path", src.Path())
		return nopCloser{src}, nil
	}
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
