package valuation

import (
	"strings"

	"github.com/rigmint/tvl/internal/domain"
)

// Classify resolves a free-text GPU type string against the price table.
// Matching is case-insensitive substring matching in table definition
// order: the first label contained in the input wins, so a listing like
// "H100-SXM 80GB" classifies as "h100". Empty input never matches.
func Classify(rawType string, table domain.PriceTable) (string, bool) {
	if rawType == "" {
		return "", false
	}
	normalized := strings.ToLower(rawType)
	for _, entry := range table {
		if strings.Contains(normalized, entry.Label) {
			return entry.Label, true
		}
	}
	return "", false
}
