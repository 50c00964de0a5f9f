package tvl

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"github.com/rigmint/tvl/internal/domain"
	"github.com/rigmint/tvl/internal/valuation"
)

// ListingSource fetches the full marketplace listing. Records returned
// alongside a non-nil error are a valid partial snapshot.
type ListingSource interface {
	FetchAllListings(ctx context.Context) ([]domain.GPUListing, error)
}

// SupplyReader reads the token contract's total supply.
type SupplyReader interface {
	TotalSupply(ctx context.Context) (*big.Int, error)
}

// Adapter computes the protocol's TVL figures. Its two entry points are
// independent: each reports to the Balances collaborator and neither fails
// upstream — errors degrade to partial or absent values.
type Adapter struct {
	listings     ListingSource
	supply       SupplyReader
	table        domain.PriceTable
	tokenAddress string
}

// NewAdapter creates an Adapter over the given collaborators and the fixed
// price table.
func NewAdapter(listings ListingSource, supply SupplyReader, table domain.PriceTable, tokenAddress string) *Adapter {
	return &Adapter{
		listings:     listings,
		supply:       supply,
		table:        table,
		tokenAddress: tokenAddress,
	}
}

// ReportAssetValue fetches the marketplace listing, values it against the
// price table, and records the USD total on b. A fetch error is logged and
// whatever was gathered is valued; the entry point always completes.
func (a *Adapter) ReportAssetValue(ctx context.Context, b Balances) valuation.Result {
	records, err := a.listings.FetchAllListings(ctx)
	if err != nil {
		slog.Warn("tvl: valuing partial listing snapshot", "gathered", len(records), "error", err)
	}

	result := valuation.Value(records, a.table)
	b.AddUSDValue(result.TotalUSD)

	slog.Info("tvl: asset valuation reported",
		"totalUSD", result.TotalUSD.String(),
		"records", result.RecordCount,
		"unclassified", len(result.Unclassified))
	return result
}

// ReportTokenSupply reads the token's total supply and records it on b in
// raw units, keyed by the token address. A failed read yields no value and
// no report; the entry point still completes.
func (a *Adapter) ReportTokenSupply(ctx context.Context, b Balances) *big.Int {
	supply, err := a.supply.TotalSupply(ctx)
	if err != nil {
		slog.Warn("tvl: token supply unavailable, nothing reported",
			"token", a.tokenAddress, "error", err)
		return nil
	}

	b.Add(a.tokenAddress, supply)
	slog.Info("tvl: token supply reported", "token", a.tokenAddress, "supply", supply.String())
	return supply
}

// BuildReport runs both entry points against a fresh BalanceSheet and
// assembles the resulting report document.
func (a *Adapter) BuildReport(ctx context.Context) domain.TVLReport {
	sheet := NewBalanceSheet()

	result := a.ReportAssetValue(ctx, sheet)
	supply := a.ReportTokenSupply(ctx, sheet)

	report := domain.TVLReport{
		GeneratedAt:   time.Now().UTC(),
		AssetValueUSD: domain.FormatUSD(result.TotalUSD),
		RecordCount:   result.RecordCount,
		Counts:        result.Counts,
		Unclassified:  result.Unclassified,
		TokenAddress:  a.tokenAddress,
	}
	if supply != nil {
		s := supply.String()
		report.TokenSupply = &s
	}
	return report
}
