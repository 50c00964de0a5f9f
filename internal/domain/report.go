package domain

import "time"

// TVLReport is the document produced by one full adapter run. AssetValueUSD
// and TokenSupply are decimal strings to keep JSON round-trips exact.
// TokenSupply is nil when the on-chain read yielded no value.
type TVLReport struct {
	GeneratedAt   time.Time      `json:"generatedAt"`
	AssetValueUSD string         `json:"assetValueUSD"`
	RecordCount   int            `json:"recordCount"`
	Counts        map[string]int `json:"counts"`
	Unclassified  []string       `json:"unclassified,omitempty"`
	TokenAddress  string         `json:"tokenAddress"`
	TokenSupply   *string        `json:"tokenSupply,omitempty"`
}
