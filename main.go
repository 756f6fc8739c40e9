// Package main provides the entry point for the CallVault API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/callvault/callvault/internal/config"
	"github.com/callvault/callvault/internal/contacts"
	"github.com/callvault/callvault/internal/player"
	"github.com/callvault/callvault/internal/reconcile"
	"github.com/callvault/callvault/internal/server"
	"github.com/callvault/callvault/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting CallVault API",
		slog.Int("port", cfg.Port),
		slog.String("log_format", cfg.LogFormat),
		slog.String("log_level", cfg.LogLevel),
		slog.String("recordings_dir", cfg.RecordingsDir),
		slog.Duration("sync_interval", cfg.SyncInterval),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize cloud store
	var cloud storage.Cloud
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Prefix:          cfg.CloudPrefix,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Store(ctx, s3Cfg)
		if err != nil {
			return fmt.Errorf("create S3 store: %w", err)
		}
		cloud = s3Store
		logger.Info("S3 cloud store configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
			slog.String("prefix", cfg.CloudPrefix),
		)
	} else {
		cloud = storage.NewMemoryCloud(cfg.CloudPrefix)
		logger.Info("in-memory cloud store configured",
			slog.String("prefix", cfg.CloudPrefix),
		)
	}

	// Initialize the sync engine and its schedule
	engine := reconcile.NewEngine(storage.NewLocalDir(), cloud, cfg.RecordingsDir, logger)
	scheduler := reconcile.NewScheduler(engine, cfg.SyncInterval, logger)
	go scheduler.Run(ctx)

	// Load the contact directory once
	resolver := contacts.NewResolver(logger)
	var dir contacts.Directory = &contacts.StaticDirectory{}
	if cfg.ContactsFile != "" {
		dir = contacts.NewFileDirectory(cfg.ContactsFile)
	}
	if err := resolver.Load(ctx, dir); err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}

	// Initialize the playback coordinator
	coordinator := player.NewCoordinator(player.ClockFactory, logger)
	defer coordinator.Release()

	// Initialize HTTP handlers and router
	handlers := server.NewHandlers(engine, resolver, coordinator, logger)
	router := server.NewRouter(handlers, logger, server.DefaultConfig())

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Allow for slow cloud uploads
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			slog.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-shutdownCh:
		logger.Info("received shutdown signal",
			slog.String("signal", sig.String()),
		)
	case err := <-errCh:
		return err
	}

	// Stop the sync loop before draining HTTP connections
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
