// cmd/dashboard/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/haricode-hub/dashboard/internal/adapters"
	"github.com/haricode-hub/dashboard/internal/adapters/fcubs"
	"github.com/haricode-hub/dashboard/internal/adapters/obbrn"
	"github.com/haricode-hub/dashboard/internal/common/config"
	"github.com/haricode-hub/dashboard/internal/common/logger"
	"github.com/haricode-hub/dashboard/internal/common/observability"
	"github.com/haricode-hub/dashboard/internal/server"
	"github.com/haricode-hub/dashboard/internal/worklist"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting approval dashboard...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("approval-dashboard")
	defer obs.Shutdown()

	// --- Init Backend Adapters ---
	fcubsAdapter, err := fcubs.New(fcubs.FromAppConfig(cfg.FCUBS), log)
	if err != nil {
		zapLog.Fatal("fcubs adapter failed", zap.Error(err))
	}

	obbrnAdapter, err := obbrn.New(obbrn.FromAppConfig(cfg.OBBRN), log)
	if err != nil {
		zapLog.Fatal("obbrn adapter failed", zap.Error(err))
	}

	registry := adapters.NewRegistry(fcubsAdapter)
	registry.Register(fcubs.System, fcubsAdapter)
	registry.Register(obbrn.System, obbrnAdapter)
	zapLog.Info("Backend adapters registered",
		zap.Strings("systems", []string{fcubs.System, obbrn.System}),
	)

	// --- Init Worklist Service ---
	wl, err := worklist.New(&worklist.Config{
		PendingURL: cfg.Worklist.PendingURL,
		Timeout:    config.GetDuration(cfg.Worklist.Timeout),
	}, log)
	if err != nil {
		zapLog.Fatal("worklist service failed", zap.Error(err))
	}

	// --- HTTP Server ---
	srv := server.New(cfg.Server.Address, wl, registry, log, obs)
	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Approval dashboard stopped gracefully")
}
