package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/rigmint/tvl/internal/domain"
)

// SnapshotGenerator defines the interface for generating report snapshots.
type SnapshotGenerator interface {
	Generate(ctx context.Context, date time.Time) (domain.TVLReport, error)
}

// AfterSnapshotHook is called after each successful report generation.
type AfterSnapshotHook interface {
	Export(ctx context.Context, report domain.TVLReport) error
}

// ReportWorker periodically generates TVL report snapshots.
type ReportWorker struct {
	generator SnapshotGenerator
	interval  time.Duration
	hook      AfterSnapshotHook // optional
}

// NewReportWorker creates a new ReportWorker with an optional post-generation hook.
func NewReportWorker(generator SnapshotGenerator, interval time.Duration, hook AfterSnapshotHook) *ReportWorker {
	return &ReportWorker{
		generator: generator,
		interval:  interval,
		hook:      hook,
	}
}

// runOnce generates one snapshot and runs the hook on success.
func (w *ReportWorker) runOnce(ctx context.Context) {
	report, err := w.generator.Generate(ctx, utcDate())
	if err != nil {
		slog.Error("ReportWorker: generation failed", "error", err)
		return
	}
	slog.Info("ReportWorker: generation completed", "assetValueUSD", report.AssetValueUSD)

	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx, report); err != nil {
		slog.Error("ReportWorker: export hook failed", "error", err)
	} else {
		slog.Info("ReportWorker: export hook completed")
	}
}

// utcDate returns the current date normalized to midnight UTC.
func utcDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Run starts the report worker loop. It blocks until the context is cancelled.
func (w *ReportWorker) Run(ctx context.Context) {
	slog.Info("ReportWorker: starting", "interval", w.interval)

	// Generate immediately on startup
	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ReportWorker: shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}
