package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rigmint/tvl/internal/domain"
	"github.com/rigmint/tvl/internal/snapshot"
)

// historyLimit caps how many snapshots are flattened into the export.
const historyLimit = 365

// HistoryRow is one snapshot flattened for tabular export. TokenSupply is
// empty when the on-chain read yielded no value that day.
type HistoryRow struct {
	Date          time.Time
	AssetValueUSD decimal.Decimal
	TokenSupply   string
	RecordCount   int
	Unclassified  int
}

// SheetWriter writes history rows to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, rows []HistoryRow) error
}

// Service flattens snapshot history and delegates writing to a SheetWriter.
type Service struct {
	snapshots snapshot.Repository
	writer    SheetWriter
}

// NewService creates a new export Service.
func NewService(snapshots snapshot.Repository, writer SheetWriter) *Service {
	return &Service{snapshots: snapshots, writer: writer}
}

// Export writes the full snapshot history to the sheet. Implements
// worker.AfterSnapshotHook; the freshly generated report is already stored,
// so only the repository is consulted.
func (s *Service) Export(ctx context.Context, _ domain.TVLReport) error {
	snaps, err := s.snapshots.List(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("listing snapshots for export: %w", err)
	}

	return s.writer.Write(ctx, BuildRows(snaps))
}

// BuildRows converts stored snapshots to history rows, newest first.
// Snapshots whose payload no longer unmarshals are skipped with a warning.
func BuildRows(snaps []snapshot.Snapshot) []HistoryRow {
	return lo.FilterMap(snaps, func(s snapshot.Snapshot, _ int) (HistoryRow, bool) {
		var report domain.TVLReport
		if err := json.Unmarshal(s.Data, &report); err != nil {
			slog.Warn("export: skipping unreadable snapshot", "date", s.SnapshotDate, "error", err)
			return HistoryRow{}, false
		}

		row := HistoryRow{
			Date:          s.SnapshotDate,
			AssetValueUSD: domain.SafeParse(report.AssetValueUSD),
			RecordCount:   report.RecordCount,
			Unclassified:  len(report.Unclassified),
		}
		if report.TokenSupply != nil {
			row.TokenSupply = *report.TokenSupply
		}
		return row, true
	})
}
