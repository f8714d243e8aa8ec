package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/Serg-Vas/financial-dashboard/internal/cli"
	apphttp "github.com/Serg-Vas/financial-dashboard/internal/http"
	"github.com/Serg-Vas/financial-dashboard/internal/log"
)

func main() {
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	source, err := cli.OpenSource(cfg, logger)
	if err != nil {
		logger.Error("Failed to open dataset", log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		os.Exit(1)
	}
	defer source.Close()

	srv := apphttp.NewServer(":"+cfg.Port, source, logger, apphttp.Options{
		DefaultPageSize:   cfg.DefaultPageSize,
		MaxPageSize:       cfg.MaxPageSize,
		RequestTimeout:    cfg.RequestTimeout,
		RequestsPerMinute: cfg.RateLimitPerMinute,
	})

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	}()

	logger.Info("Starting dashboard server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-stopped
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
