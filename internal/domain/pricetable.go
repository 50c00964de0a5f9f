package domain

import "github.com/shopspring/decimal"

// PriceEntry binds a GPU type label to its unit price in USD.
type PriceEntry struct {
	Label    string
	PriceUSD decimal.Decimal
}

// PriceTable is the fixed GPU price list. Entry order matters: classification
// picks the first label that appears as a substring of a listing's type
// string, so labels that contain other labels (e.g. "rtx a4000" vs "a40")
// must come first.
type PriceTable []PriceEntry

// DefaultPriceTable holds the unit prices for every GPU type the protocol
// tokenizes. Labels are lowercase; matching is done against lowercased input.
var DefaultPriceTable = PriceTable{
	{Label: "h200", PriceUSD: decimal.NewFromInt(32000)},
	{Label: "h100", PriceUSD: decimal.NewFromInt(21000)},
	{Label: "l40s", PriceUSD: decimal.NewFromInt(10500)},
	{Label: "a100", PriceUSD: decimal.NewFromInt(7500)},
	{Label: "rtx 6000 ada", PriceUSD: decimal.NewFromInt(6800)},
	{Label: "rtx a6000", PriceUSD: decimal.NewFromInt(4400)},
	{Label: "rtx a5000", PriceUSD: decimal.NewFromInt(1600)},
	{Label: "rtx a4000", PriceUSD: decimal.NewFromInt(1050)},
	{Label: "a40", PriceUSD: decimal.NewFromInt(4500)},
	{Label: "rtx 4090", PriceUSD: decimal.NewFromInt(3500)},
	{Label: "rtx 4080", PriceUSD: decimal.NewFromInt(1000)},
	{Label: "rtx 3090", PriceUSD: decimal.NewFromInt(1500)},
	{Label: "rtx 3080", PriceUSD: decimal.NewFromInt(600)},
	{Label: "v100", PriceUSD: decimal.NewFromInt(2000)},
}

// Labels returns the table's labels in definition order.
func (t PriceTable) Labels() []string {
	labels := make([]string, len(t))
	for i, e := range t {
		labels[i] = e.Label
	}
	return labels
}
