// cmd/rect-client/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SanOuhi99/RECT-v3-sub000/internal/app"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/config"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/dashboard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config lives in cfg, so bootstrap errors use a default one.
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("application init failed", zap.Error(err))
	}
	defer application.Close()

	// Restore any persisted sessions before the UI asks questions.
	application.Initialize(ctx)

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Metrics endpoint listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	dash := dashboard.NewOrchestrator(application.Users, log)
	if application.Users.IsAuthenticated() {
		dash.Load(ctx)
		dash.Start(ctx, config.GetDuration(cfg.Dashboard.RefreshInterval))
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	dash.Stop()
	cancel()
}
