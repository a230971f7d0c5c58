// Package main is the entry point for the signing service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mlehotskylf-org/signkit/internal/config"
	httpx "github.com/mlehotskylf-org/signkit/internal/http"
	"github.com/mlehotskylf-org/signkit/internal/security"
	"github.com/mlehotskylf-org/signkit/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load .env if present; existing variables win
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Tracer first so the logger can attach span context
	tp, err := telemetry.InitTracer(ctx, cfg)
	if err != nil {
		slog.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				slog.Error("failed to shutdown tracer", "error", err)
			}
		}()
	}

	logger := telemetry.SetupLogger(cfg)
	logger.Info("config loaded", cfg.LogAttrs()...)

	signer, err := cfg.NewSigner()
	if err != nil {
		logger.Error("failed to init signer", "error", err)
		os.Exit(1)
	}

	router := httpx.NewRouter(cfg, httpx.Deps{
		Signer: signer,
		Random: security.NewRandom(nil),
		Logger: logger,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		<-sigCh

		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
