package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Scheduler drives the Engine on a fixed interval. The interval is a
// minimum spacing between cycles: when a tick fires while the previous
// cycle is still in flight, the new tick is skipped rather than queued.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a Scheduler running the engine every interval.
func NewScheduler(engine *Engine, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		engine:   engine,
		interval: interval,
		logger:   logger,
	}
}

// Run executes an initial cycle, then one cycle per interval until the
// context is cancelled. Cycle errors are logged and never stop the loop;
// the next tick retries from a fresh cloud listing.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("sync scheduler started",
		slog.Duration("interval", s.interval),
	)

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sync scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	report, err := s.engine.RunTick(ctx)
	switch {
	case errors.Is(err, ErrSyncInProgress):
		s.logger.Debug("tick skipped, previous cycle still in flight")
	case err != nil:
		s.logger.Warn("sync cycle failed",
			slog.String("sync_id", report.ID),
			slog.String("error", err.Error()),
		)
	}
}
