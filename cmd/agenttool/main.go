package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"concierge/internal/adapters/config"
	"concierge/internal/adapters/errors/noop"
	"concierge/internal/adapters/errors/sentry"
	"concierge/internal/demo"
	"concierge/pkg/errors"
	"concierge/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s agenttool demo in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := demo.RunAgentTool(ctx, cfg); err != nil {
		log.Errorf("Demo failed: %v", err)
		_ = errorTracker.Flush(ctx)
		os.Exit(1)
	}

	_ = errorTracker.Flush(ctx)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking enabled")
	return tracker
}
