package valuation

import (
	"log/slog"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rigmint/tvl/internal/domain"
)

// Result is the outcome of valuing one listing snapshot. Unclassified holds
// the raw type strings that matched no table entry, deduplicated and sorted;
// those records contribute nothing to TotalUSD.
type Result struct {
	TotalUSD     decimal.Decimal
	Counts       map[string]int
	Unclassified []string
	RecordCount  int
}

// Value classifies every record and sums count × unit price over the table.
// The total is deterministic for a given record list and table: counts are
// accumulated per label and the final sum walks the table in definition
// order.
func Value(records []domain.GPUListing, table domain.PriceTable) Result {
	counts := make(map[string]int, len(table))
	for _, entry := range table {
		counts[entry.Label] = 0
	}

	var unclassified []string
	for _, rec := range records {
		label, ok := Classify(rec.GPUType, table)
		if !ok {
			unclassified = append(unclassified, rec.GPUType)
			continue
		}
		counts[label]++
	}

	total := lo.Reduce(table, func(acc decimal.Decimal, entry domain.PriceEntry, _ int) decimal.Decimal {
		return acc.Add(entry.PriceUSD.Mul(decimal.NewFromInt(int64(counts[entry.Label]))))
	}, decimal.Zero)

	unclassified = lo.Uniq(unclassified)
	sort.Strings(unclassified)

	if len(unclassified) > 0 {
		slog.Warn("valuation: records with unknown GPU types contribute zero value",
			"types", unclassified)
	}

	return Result{
		TotalUSD:     total,
		Counts:       counts,
		Unclassified: unclassified,
		RecordCount:  len(records),
	}
}
