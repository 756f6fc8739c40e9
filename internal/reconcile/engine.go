// Package reconcile implements the local/cloud diff-and-upload cycle.
// The Engine periodically lists the local recordings directory and the
// cloud store, rebuilds the upload ledger from the cloud listing, and
// uploads every local file whose name the ledger does not contain.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/callvault/callvault/internal/recording"
	"github.com/callvault/callvault/internal/reconcile/id"
	"github.com/callvault/callvault/internal/storage"
)

// Static errors for sync operations.
var (
	// ErrSyncInProgress is returned when a cycle is requested while
	// another one is still in flight.
	ErrSyncInProgress = errors.New("reconcile: sync already in progress")
	// ErrFileNotFound is returned by Upload when the named file is not
	// present in the local recordings directory.
	ErrFileNotFound = errors.New("reconcile: local file not found")
)

// UploadFailure records one file that failed to upload during a cycle.
type UploadFailure struct {
	// Name is the recording file name.
	Name string `json:"name"`
	// Reason is the underlying error message.
	Reason string `json:"reason"`
}

// TickReport summarizes one sync cycle. Auto-upload failures are reported
// here and logged, never surfaced to the user; the next cycle re-detects
// any file that is still missing from the cloud listing.
type TickReport struct {
	// ID uniquely identifies the cycle.
	ID string `json:"id"`
	// StartedAt is when the cycle began.
	StartedAt time.Time `json:"started_at"`
	// Duration is how long the cycle took.
	Duration time.Duration `json:"duration"`
	// LocalCount is the number of local files enumerated.
	LocalCount int `json:"local_count"`
	// CloudCount is the number of cloud objects listed.
	CloudCount int `json:"cloud_count"`
	// Uploaded lists the names uploaded this cycle, in listing order.
	Uploaded []string `json:"uploaded"`
	// Failed lists the per-file upload failures.
	Failed []UploadFailure `json:"failed"`
}

// Snapshot is the read-side view published after each cycle.
type Snapshot struct {
	// Local is the local-file listing from the last cycle.
	Local []recording.FileRecord
	// Cloud is the cloud-object listing from the last cycle.
	Cloud []recording.FileRecord
	// Report is the last cycle's report.
	Report TickReport
}

// Engine runs the reconciliation cycle. A single in-progress guard covers
// both timer ticks and user-triggered refreshes, so two cycles never run
// concurrently; a busy engine reports ErrSyncInProgress instead of
// queueing.
type Engine struct {
	local  storage.Local
	cloud  storage.Cloud
	dir    string
	ledger *Ledger
	logger *slog.Logger

	// inFlight is the single in-progress flag guarding full cycles.
	inFlight sync.Mutex

	snapMu   sync.RWMutex
	snapshot Snapshot
}

// NewEngine creates an Engine reconciling dir against the cloud store.
func NewEngine(local storage.Local, cloud storage.Cloud, dir string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		local:  local,
		cloud:  cloud,
		dir:    dir,
		ledger: NewLedger(),
		logger: logger,
	}
}

// RunTick executes one timer-driven sync cycle. Returns ErrSyncInProgress
// without doing any work when another cycle is in flight; the interval is
// a minimum spacing, not a guarantee of periodicity.
func (e *Engine) RunTick(ctx context.Context) (TickReport, error) {
	return e.runGuarded(ctx)
}

// Refresh executes the same listing and ledger-rebuild logic outside the
// timer, for user-triggered refreshes. It shares the in-progress flag
// with RunTick.
func (e *Engine) Refresh(ctx context.Context) (TickReport, error) {
	return e.runGuarded(ctx)
}

func (e *Engine) runGuarded(ctx context.Context) (TickReport, error) {
	if !e.inFlight.TryLock() {
		return TickReport{}, ErrSyncInProgress
	}
	defer e.inFlight.Unlock()

	return e.run(ctx)
}

// run performs one full cycle: enumerate local, list cloud, rebuild the
// ledger, upload the local-only names, publish the snapshot.
func (e *Engine) run(ctx context.Context) (TickReport, error) {
	report := TickReport{
		ID:        id.Generate(),
		StartedAt: time.Now(),
	}

	localFiles, err := e.listLocal(ctx)
	if err != nil {
		return report, err
	}

	cloudFiles, err := e.cloud.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list cloud objects: %w", err)
	}
	e.ledger.Rebuild(cloudFiles)

	// Uploads run sequentially in listing order. A failure on one file
	// must not abort the rest of the cycle.
	for _, f := range localFiles {
		if e.ledger.Has(f.Name) {
			continue
		}

		url, err := e.cloud.Upload(ctx, f.Path, f.Name)
		if err != nil {
			report.Failed = append(report.Failed, UploadFailure{
				Name:   f.Name,
				Reason: err.Error(),
			})
			e.logger.Warn("auto-upload failed",
				slog.String("sync_id", report.ID),
				slog.String("name", f.Name),
				slog.String("error", err.Error()),
			)
			continue
		}

		e.ledger.Add(f.Name)
		report.Uploaded = append(report.Uploaded, f.Name)
		e.logger.Info("auto-uploaded recording",
			slog.String("sync_id", report.ID),
			slog.String("name", f.Name),
			slog.String("url", url),
		)
	}

	report.LocalCount = len(localFiles)
	report.CloudCount = len(cloudFiles)
	report.Duration = time.Since(report.StartedAt)

	e.snapMu.Lock()
	e.snapshot = Snapshot{
		Local:  localFiles,
		Cloud:  cloudFiles,
		Report: report,
	}
	e.snapMu.Unlock()

	e.logger.Info("sync cycle complete",
		slog.String("sync_id", report.ID),
		slog.Int("local", report.LocalCount),
		slog.Int("cloud", report.CloudCount),
		slog.Int("uploaded", len(report.Uploaded)),
		slog.Int("failed", len(report.Failed)),
		slog.Int("ledger_size", e.ledger.Len()),
		slog.Duration("duration", report.Duration),
	)

	return report, nil
}

// listLocal enumerates the recordings directory. A missing directory is
// "nothing to reconcile", not an error.
func (e *Engine) listLocal(ctx context.Context) ([]recording.FileRecord, error) {
	exists, err := e.local.Exists(ctx, e.dir)
	if err != nil {
		return nil, fmt.Errorf("check recordings dir: %w", err)
	}
	if !exists {
		e.logger.Debug("recordings dir does not exist, nothing to reconcile",
			slog.String("dir", e.dir),
		)
		return nil, nil
	}

	files, err := e.local.ListDir(ctx, e.dir)
	if err != nil {
		return nil, fmt.Errorf("list recordings dir: %w", err)
	}
	return files, nil
}

// Upload performs a user-triggered upload of a single local file. A name
// already present in the ledger is a successful no-op reported via
// already; unlike auto-uploads, failures are surfaced to the caller.
func (e *Engine) Upload(ctx context.Context, name string) (url string, already bool, err error) {
	if e.ledger.Has(name) {
		return "", true, nil
	}

	localFiles, err := e.listLocal(ctx)
	if err != nil {
		return "", false, err
	}

	var file *recording.FileRecord
	for i := range localFiles {
		if localFiles[i].Name == name {
			file = &localFiles[i]
			break
		}
	}
	if file == nil {
		return "", false, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	url, err = e.cloud.Upload(ctx, file.Path, file.Name)
	if err != nil {
		return "", false, fmt.Errorf("upload %s: %w", name, err)
	}

	e.ledger.Add(name)
	e.logger.Info("manual upload complete",
		slog.String("name", name),
		slog.String("url", url),
	)
	return url, false, nil
}

// Delete removes a cloud object and drops its name from the ledger, so
// the next cycle can re-upload the local copy if one still exists.
func (e *Engine) Delete(ctx context.Context, name string) error {
	if err := e.cloud.Delete(ctx, name); err != nil {
		return err
	}

	// Evict from the ledger immediately; the next rebuild would do it
	// anyway, but the read side should not show a stale uploaded flag.
	e.ledger.Remove(name)

	e.snapMu.Lock()
	cloud := e.snapshot.Cloud[:0:0]
	for _, f := range e.snapshot.Cloud {
		if f.Name != name {
			cloud = append(cloud, f)
		}
	}
	e.snapshot.Cloud = cloud
	e.snapMu.Unlock()

	e.logger.Info("cloud recording deleted", slog.String("name", name))
	return nil
}

// Uploaded reports whether the named recording is known to be in the
// cloud store.
func (e *Engine) Uploaded(name string) bool {
	return e.ledger.Has(name)
}

// Snapshot returns the read-side view from the last completed cycle.
func (e *Engine) Snapshot() Snapshot {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()

	snap := Snapshot{Report: e.snapshot.Report}
	snap.Local = append(snap.Local, e.snapshot.Local...)
	snap.Cloud = append(snap.Cloud, e.snapshot.Cloud...)
	return snap
}
