package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rigmint/tvl/internal/domain"
	"github.com/rigmint/tvl/internal/snapshot"
)

type mockSnapshotRepo struct {
	snapshots     []snapshot.Snapshot
	lastListLimit int
}

func (m *mockSnapshotRepo) Save(_ context.Context, _ time.Time, _ json.RawMessage) error {
	return nil
}

func (m *mockSnapshotRepo) GetLatest(_ context.Context) (*snapshot.Snapshot, error) {
	if len(m.snapshots) == 0 {
		return nil, snapshot.ErrNotFound
	}
	return &m.snapshots[0], nil
}

func (m *mockSnapshotRepo) GetByDate(_ context.Context, date time.Time) (*snapshot.Snapshot, error) {
	for _, s := range m.snapshots {
		if s.SnapshotDate.Equal(date) {
			return &s, nil
		}
	}
	return nil, snapshot.ErrNotFound
}

func (m *mockSnapshotRepo) List(_ context.Context, limit int) ([]snapshot.Snapshot, error) {
	m.lastListLimit = limit
	if limit > len(m.snapshots) {
		limit = len(m.snapshots)
	}
	return m.snapshots[:limit], nil
}

type mockBuilder struct{}

func (m *mockBuilder) BuildReport(_ context.Context) domain.TVLReport {
	return domain.TVLReport{AssetValueUSD: "100"}
}

func reportData(t *testing.T) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(domain.TVLReport{AssetValueUSD: "28000", RecordCount: 4})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestGetLatestReportSuccess(t *testing.T) {
	repo := &mockSnapshotRepo{
		snapshots: []snapshot.Snapshot{
			{ID: 1, SnapshotDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Data: reportData(t)},
		},
	}
	svc := snapshot.NewService(&mockBuilder{}, repo)
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tvl/latest", nil)
	w := httptest.NewRecorder()
	handler.GetLatestReport(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var result snapshot.Snapshot
	json.NewDecoder(w.Body).Decode(&result)
	if result.ID != 1 {
		t.Errorf("snapshot ID = %d, want 1", result.ID)
	}
}

func TestGetLatestReportNotFound(t *testing.T) {
	svc := snapshot.NewService(&mockBuilder{}, &mockSnapshotRepo{})
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tvl/latest", nil)
	w := httptest.NewRecorder()
	handler.GetLatestReport(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetReportByDateSuccess(t *testing.T) {
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	repo := &mockSnapshotRepo{
		snapshots: []snapshot.Snapshot{{ID: 1, SnapshotDate: date, Data: reportData(t)}},
	}
	svc := snapshot.NewService(&mockBuilder{}, repo)
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tvl/2026-08-30", nil)
	req.SetPathValue("date", "2026-08-30")
	w := httptest.NewRecorder()
	handler.GetReportByDate(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestGetReportByDateInvalid(t *testing.T) {
	svc := snapshot.NewService(&mockBuilder{}, &mockSnapshotRepo{})
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tvl/not-a-date", nil)
	req.SetPathValue("date", "not-a-date")
	w := httptest.NewRecorder()
	handler.GetReportByDate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListReportsLimitCappedAt365(t *testing.T) {
	repo := &mockSnapshotRepo{
		snapshots: []snapshot.Snapshot{{ID: 1, Data: reportData(t)}},
	}
	svc := snapshot.NewService(&mockBuilder{}, repo)
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tvl?limit=9999", nil)
	w := httptest.NewRecorder()
	handler.ListReports(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if repo.lastListLimit != 365 {
		t.Errorf("limit passed to repo = %d, want 365 (should be capped)", repo.lastListLimit)
	}
}

func TestGenerateReport(t *testing.T) {
	repo := &mockSnapshotRepo{}
	svc := snapshot.NewService(&mockBuilder{}, repo)
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tvl/generate", nil)
	w := httptest.NewRecorder()
	handler.GenerateReport(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var result domain.TVLReport
	json.NewDecoder(w.Body).Decode(&result)
	if result.AssetValueUSD != "100" {
		t.Errorf("AssetValueUSD = %q, want 100", result.AssetValueUSD)
	}
}

func TestDownloadWorkbook(t *testing.T) {
	repo := &mockSnapshotRepo{
		snapshots: []snapshot.Snapshot{
			{ID: 1, SnapshotDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Data: reportData(t)},
		},
	}
	svc := snapshot.NewService(&mockBuilder{}, repo)
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tvl/report.xlsx", nil)
	w := httptest.NewRecorder()
	handler.DownloadWorkbook(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}
