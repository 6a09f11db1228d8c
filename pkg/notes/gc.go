package notes

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/inkpad-app/inkpad/pkg/core"
)

// DefaultGCDelay is how long after startup the reference scan runs. The
// delay keeps the scan from racing the initial note load.
const DefaultGCDelay = 5 * time.Second

// Report summarizes one garbage collection pass.
type Report struct {
	Scanned int // notes scanned
	Live    int // distinct asset references found
	Present int // assets physically on disk
	Deleted int // orphans deleted
	Failed  int // delete attempts that errored
}

// Scanner derives the set of image assets referenced by any note, compares
// it against the assets physically present, and deletes the orphans. The
// pass is conservative: a reference anywhere in any note's content, even in
// free text, protects the asset.
type Scanner struct {
	store  core.Store
	logger *slog.Logger
}

// NewScanner creates a Scanner over the storage gateway.
func NewScanner(store core.Store, logger *slog.Logger) *Scanner {
	return &Scanner{store: store, logger: logger}
}

// Run executes one pass. A note that fails to decode contributes no
// references but never aborts the scan. Running twice with no intervening
// mutation deletes nothing on the second run.
func (s *Scanner) Run(ctx context.Context) (Report, error) {
	var report Report

	loaded, err := s.store.LoadNotes(ctx)
	if err != nil {
		return report, err
	}
	report.Scanned = len(loaded)

	live := make(map[string]struct{})
	for _, n := range loaded {
		for _, ref := range core.NoteAssetRefs(n) {
			live[ref] = struct{}{}
		}
	}
	report.Live = len(live)

	present, err := s.store.ListImages(ctx)
	if err != nil {
		return report, err
	}
	report.Present = len(present)

	for _, name := range present {
		if _, ok := live[name]; ok {
			continue
		}
		deleted, err := s.store.DeleteImage(ctx, name)
		if err != nil {
			report.Failed++
			if s.logger != nil {
				s.logger.Warn("failed to delete orphaned asset", "file", name, "error", err)
			}
			continue
		}
		if deleted {
			report.Deleted++
			if s.logger != nil {
				s.logger.Debug("deleted orphaned asset", "file", name)
			}
		}
	}

	if s.logger != nil {
		s.logger.Info("asset gc pass complete",
			"scanned", report.Scanned,
			"live", report.Live,
			"present", report.Present,
			"deleted", report.Deleted,
			"failed", report.Failed,
		)
	}
	return report, nil
}

// RunAfter schedules a single pass after the given delay as a background
// task. Errors are logged, never fatal.
func (s *Scanner) RunAfter(ctx context.Context, delay time.Duration) {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		if _, err := s.Run(ctx); err != nil {
			if s.logger != nil {
				s.logger.Error("asset gc pass failed", "error", err)
			}
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.logger != nil {
			s.logger.Error("asset gc panic", "error", err)
		}
	}))
}

// GC runs a pass against the collection's own store and clears the
// background-delete failure log, whose entries are reclaimed by the pass.
func (c *Collection) GC(ctx context.Context) (Report, error) {
	report, err := NewScanner(c.store, c.logger).Run(ctx)
	if err == nil {
		c.failed.clear()
	}
	return report, err
}
