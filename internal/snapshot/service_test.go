package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rigmint/tvl/internal/domain"
)

type mockBuilder struct {
	report domain.TVLReport
}

func (m *mockBuilder) BuildReport(_ context.Context) domain.TVLReport {
	return m.report
}

type mockRepo struct {
	saveErr   error
	savedData json.RawMessage
	savedDate time.Time
	latest    *Snapshot
	latestErr error
	byDate    *Snapshot
	byDateErr error
	list      []Snapshot
	listErr   error
}

func (m *mockRepo) Save(_ context.Context, date time.Time, data json.RawMessage) error {
	m.savedData = data
	m.savedDate = date
	return m.saveErr
}

func (m *mockRepo) GetLatest(_ context.Context) (*Snapshot, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	return m.latest, nil
}

func (m *mockRepo) GetByDate(_ context.Context, _ time.Time) (*Snapshot, error) {
	if m.byDateErr != nil {
		return nil, m.byDateErr
	}
	return m.byDate, nil
}

func (m *mockRepo) List(_ context.Context, _ int) ([]Snapshot, error) {
	return m.list, m.listErr
}

func TestGenerateSuccess(t *testing.T) {
	report := domain.TVLReport{AssetValueUSD: "28000", RecordCount: 4}
	repo := &mockRepo{}
	svc := NewService(&mockBuilder{report: report}, repo)

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	result, err := svc.Generate(context.Background(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AssetValueUSD != "28000" {
		t.Errorf("AssetValueUSD = %q, want 28000", result.AssetValueUSD)
	}
	if repo.savedData == nil {
		t.Fatal("expected data to be saved")
	}
	if !repo.savedDate.Equal(date) {
		t.Errorf("saved date = %v, want %v", repo.savedDate, date)
	}

	var stored domain.TVLReport
	if err := json.Unmarshal(repo.savedData, &stored); err != nil {
		t.Fatalf("stored data is not a valid report: %v", err)
	}
	if stored.RecordCount != 4 {
		t.Errorf("stored RecordCount = %d, want 4", stored.RecordCount)
	}
}

func TestGenerateRepoSaveError(t *testing.T) {
	repo := &mockRepo{saveErr: errors.New("save failed")}
	svc := NewService(&mockBuilder{}, repo)

	_, err := svc.Generate(context.Background(), time.Now())
	if err == nil {
		t.Fatal("expected error from repo save")
	}
}

func TestGetLatestNotFound(t *testing.T) {
	repo := &mockRepo{latestErr: ErrNotFound}
	svc := NewService(&mockBuilder{}, repo)

	_, err := svc.GetLatest(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
