package config

import (
	"log/slog"
	"os"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	MarketplaceURL        string
	EthRPCURL             string
	TokenAddress          string
	DatabaseURL           string
	HTTPPort              string
	AdminAPIKey           string
	ReportWorkerInterval  time.Duration
	SheetsSpreadsheetID   string
	GoogleCredentialsJSON string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		MarketplaceURL:        envOrDefault("MARKETPLACE_URL", "https://marketplace.rigmint.io"),
		EthRPCURL:             envOrDefault("ETH_RPC_URL", "https://eth.llamarpc.com"),
		TokenAddress:          envOrDefault("TOKEN_ADDRESS", "0x4C11249814f11b9346808179Cf06e71ac328c1b5"),
		DatabaseURL:           envOrDefaultWarn("DATABASE_URL", ""),
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:           envOrDefault("ADMIN_API_KEY", ""),
		ReportWorkerInterval:  envOrDefaultDuration("REPORT_WORKER_INTERVAL", 6*time.Hour),
		SheetsSpreadsheetID:   envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		GoogleCredentialsJSON: envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
