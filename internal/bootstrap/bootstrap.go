// Package bootstrap provides dependency initialization for the CallVault API.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/callvault/callvault/internal/config"
	"github.com/callvault/callvault/internal/contacts"
	"github.com/callvault/callvault/internal/player"
	"github.com/callvault/callvault/internal/reconcile"
	"github.com/callvault/callvault/internal/storage"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	Engine      *reconcile.Engine
	Scheduler   *reconcile.Scheduler
	Resolver    *contacts.Resolver
	Coordinator *player.Coordinator
}

// NewDependencies creates and initializes all dependencies for the application.
// The contact directory is loaded once here; later changes to the underlying
// source are not picked up until restart.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	cloud, err := initCloud(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	engine := reconcile.NewEngine(storage.NewLocalDir(), cloud, cfg.RecordingsDir, logger)
	scheduler := reconcile.NewScheduler(engine, cfg.SyncInterval, logger)

	resolver := contacts.NewResolver(logger)
	if err := resolver.Load(ctx, initDirectory(cfg, logger)); err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	coordinator := player.NewCoordinator(player.ClockFactory, logger)

	return &Dependencies{
		Engine:      engine,
		Scheduler:   scheduler,
		Resolver:    resolver,
		Coordinator: coordinator,
	}, nil
}

// initCloud creates the appropriate cloud backend based on configuration.
func initCloud(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Cloud, error) {
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
			return nil, fmt.Errorf("create S3 store: %w", err)
		}
		logger.Info("S3 cloud store configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
			slog.String("prefix", cfg.CloudPrefix),
		)
		return s3Store, nil
	}

	logger.Info("in-memory cloud store configured",
		slog.String("prefix", cfg.CloudPrefix),
	)
	return storage.NewMemoryCloud(cfg.CloudPrefix), nil
}

// initDirectory selects the contact source. Without a configured file the
// resolver stays empty and every caller shows by phone number.
func initDirectory(cfg *config.Config, logger *slog.Logger) contacts.Directory {
	if cfg.ContactsFile == "" {
		logger.Info("no contacts file configured")
		return &contacts.StaticDirectory{}
	}
	logger.Info("contacts file configured",
		slog.String("path", cfg.ContactsFile),
	)
	return contacts.NewFileDirectory(cfg.ContactsFile)
}
