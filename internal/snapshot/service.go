package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rigmint/tvl/internal/domain"
)

// ReportBuilder produces a fresh TVL report. The build itself never fails;
// missing inputs degrade to partial or absent figures inside the report.
type ReportBuilder interface {
	BuildReport(ctx context.Context) domain.TVLReport
}

// Service manages report generation and snapshot retrieval.
type Service struct {
	builder ReportBuilder
	repo    Repository
}

// NewService creates a new snapshot Service.
func NewService(builder ReportBuilder, repo Repository) *Service {
	return &Service{builder: builder, repo: repo}
}

// Generate builds a new TVL report and stores it under the given date.
func (s *Service) Generate(ctx context.Context, date time.Time) (domain.TVLReport, error) {
	report := s.builder.BuildReport(ctx)

	data, err := json.Marshal(report)
	if err != nil {
		return domain.TVLReport{}, fmt.Errorf("marshaling report: %w", err)
	}

	if err := s.repo.Save(ctx, date, data); err != nil {
		return domain.TVLReport{}, fmt.Errorf("saving snapshot: %w", err)
	}

	return report, nil
}

// GetLatest retrieves the most recent snapshot.
func (s *Service) GetLatest(ctx context.Context) (*Snapshot, error) {
	return s.repo.GetLatest(ctx)
}

// GetByDate retrieves the snapshot for a specific date.
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, date)
}

// List retrieves recent snapshots, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, limit)
}
