package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.MarketplaceURL != "https://marketplace.rigmint.io" {
		t.Errorf("MarketplaceURL = %q", cfg.MarketplaceURL)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.ReportWorkerInterval != 6*time.Hour {
		t.Errorf("ReportWorkerInterval = %v, want 6h", cfg.ReportWorkerInterval)
	}
	if cfg.TokenAddress == "" {
		t.Error("TokenAddress default is empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MARKETPLACE_URL", "http://localhost:9999")
	t.Setenv("REPORT_WORKER_INTERVAL", "15m")

	cfg := Load()

	if cfg.MarketplaceURL != "http://localhost:9999" {
		t.Errorf("MarketplaceURL = %q, want override", cfg.MarketplaceURL)
	}
	if cfg.ReportWorkerInterval != 15*time.Minute {
		t.Errorf("ReportWorkerInterval = %v, want 15m", cfg.ReportWorkerInterval)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("REPORT_WORKER_INTERVAL", "not-a-duration")

	cfg := Load()

	if cfg.ReportWorkerInterval != 6*time.Hour {
		t.Errorf("ReportWorkerInterval = %v, want default 6h", cfg.ReportWorkerInterval)
	}
}
