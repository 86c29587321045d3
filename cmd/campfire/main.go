// Package main is the entry point for the campfire scene viewer.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/app"
	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fatal("Config error", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Campfire ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		fatal("Startup error", err)
	}

	if err := a.Run(); err != nil {
		a.Close()
		logger.Error("viewer error", zap.Error(err))
		fatal("Runtime error", err)
	}
	a.Close()

	logger.Info("viewer closed normally")
}

// fatal reports an unrecoverable error and exits. Deferred calls do not run,
// so the log is flushed here.
func fatal(title string, err error) {
	logger.Sync()
	fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
	if !config.DialogDisabled() {
		dialog.Message("%v", err).Title("Campfire: " + title).Error()
	}
	os.Exit(1)
}
