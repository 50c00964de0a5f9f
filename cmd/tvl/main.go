package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rigmint/tvl/internal/api"
	"github.com/rigmint/tvl/internal/chain"
	"github.com/rigmint/tvl/internal/config"
	"github.com/rigmint/tvl/internal/database"
	"github.com/rigmint/tvl/internal/domain"
	"github.com/rigmint/tvl/internal/export"
	"github.com/rigmint/tvl/internal/marketplace"
	"github.com/rigmint/tvl/internal/snapshot"
	"github.com/rigmint/tvl/internal/tvl"
	"github.com/rigmint/tvl/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:  "tvl",
		Usage: "Rigmint TVL reporting service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the report worker and HTTP API",
				Action: serve,
			},
			{
				Name:   "report",
				Usage:  "build one TVL report and print it as JSON",
				Action: report,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newAdapter wires the marketplace and on-chain collaborators.
func newAdapter(ctx context.Context, cfg config.Config) (*tvl.Adapter, error) {
	market := marketplace.NewClient(cfg.MarketplaceURL)

	eth, err := chain.Dial(ctx, cfg.EthRPCURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to Ethereum RPC: %w", err)
	}
	reader := chain.NewReader(eth, cfg.TokenAddress)

	return tvl.NewAdapter(market, reader, domain.DefaultPriceTable, reader.TokenAddress()), nil
}

// report builds a single TVL report without touching the database.
func report(c *cli.Context) error {
	cfg := config.Load()

	adapter, err := newAdapter(c.Context, cfg)
	if err != nil {
		return err
	}

	result := adapter.BuildReport(c.Context)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	adapter, err := newAdapter(ctx, cfg)
	if err != nil {
		return err
	}

	snapshotRepo := snapshot.NewPgRepository(pool)
	snapshotSvc := snapshot.NewService(adapter, snapshotRepo)

	// Optional Google Sheets history export
	var hook worker.AfterSnapshotHook
	if cfg.SheetsSpreadsheetID != "" && cfg.GoogleCredentialsJSON != "" {
		writer, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.GoogleCredentialsJSON)
		if err != nil {
			return fmt.Errorf("creating sheets writer: %w", err)
		}
		hook = export.NewService(snapshotRepo, writer)
	}

	reportWorker := worker.NewReportWorker(snapshotSvc, cfg.ReportWorkerInterval, hook)
	go reportWorker.Run(ctx)

	srv := api.NewServer(cfg.HTTPPort, snapshotSvc, cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}
