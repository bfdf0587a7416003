package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/petems/mediakey-tray/internal/app"
	"github.com/petems/mediakey-tray/internal/config"
	"github.com/petems/mediakey-tray/internal/logging"
	"github.com/petems/mediakey-tray/internal/mediakey"
	"github.com/petems/mediakey-tray/internal/permissions"
	"github.com/petems/mediakey-tray/internal/tray"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func main() {
	// Load config from XDG/Library/AppData
	cfg, err := config.Load()
	if err != nil {
		// Use default logger if config fails to load
		log := logging.New()
		log.Fatal().Err(err).Str("path", config.ConfigPath()).Msg("Failed to load config")
	}

	// Initialize logger with configured level
	log := logging.NewWithLevel(cfg.LogLevel)

	// macOS requires explicit accessibility approval before the event tap works
	if report := permissions.CheckInputMonitoring(false); !report.Allowed() {
		log.Warn().Str("permission", report.Status.String()).Msg(report.Guidance)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := mediakey.NewMonitor(mediakey.Options{Logger: &log})
	defer monitor.Close()

	application, err := app.New(app.Config{
		Monitor: monitor,
		Config:  cfg,
		Logger:  log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize app")
	}

	start := func() {
		if !cfg.StartMonitoring {
			log.Info().Msg("Global media key monitoring disabled in config")
			application.Disable()
			return
		}
		// Failure leaves the app in local-only mode; already logged.
		_ = application.Enable()
	}

	log.Info().Str("version", Version).Str("logs", logging.LogPath()).Msg("MediaKey Tray starting...")

	// Setup shutdown signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if !cfg.ShowTray {
		start()
		<-sigChan
		log.Info().Msg("Shutting down...")
		if err := application.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
		return
	}

	trayUI := tray.New(application, log, Version, Commit)
	application.SetStatusUpdater(trayUI)
	trayUI.OnStart(func() {
		// Local events need the tray's event loop
		if err := application.StartLocalEvents(); err != nil {
			log.Debug().Err(err).Msg("Local media key events unavailable")
		}
		start()
	})

	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	// Start tray UI - MUST run on main thread
	if err := trayUI.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Tray error")
	}
	if err := application.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}
