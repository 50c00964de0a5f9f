package tvl

import (
	"math/big"
	"sync"

	"github.com/shopspring/decimal"
)

// Balances is the value-aggregation collaborator the entry points report
// into. AddUSDValue records a USD-denominated amount; Add records a raw
// token-denominated amount to be priced downstream.
type Balances interface {
	AddUSDValue(amount decimal.Decimal)
	Add(tokenAddress string, rawAmount *big.Int)
}

// BalanceSheet is an in-memory Balances implementation. Safe for concurrent
// use: the two entry points may run in parallel against one sheet.
type BalanceSheet struct {
	mu     sync.Mutex
	usd    decimal.Decimal
	tokens map[string]*big.Int
}

// NewBalanceSheet creates an empty BalanceSheet.
func NewBalanceSheet() *BalanceSheet {
	return &BalanceSheet{tokens: make(map[string]*big.Int)}
}

func (b *BalanceSheet) AddUSDValue(amount decimal.Decimal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.usd = b.usd.Add(amount)
}

func (b *BalanceSheet) Add(tokenAddress string, rawAmount *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev, ok := b.tokens[tokenAddress]
	if !ok {
		prev = new(big.Int)
	}
	b.tokens[tokenAddress] = new(big.Int).Add(prev, rawAmount)
}

// USDValue returns the accumulated USD amount.
func (b *BalanceSheet) USDValue() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.usd
}

// TokenBalance returns the accumulated raw amount for a token address, or
// nil if nothing was recorded for it.
func (b *BalanceSheet) TokenBalance(tokenAddress string) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	amount, ok := b.tokens[tokenAddress]
	if !ok {
		return nil
	}
	return new(big.Int).Set(amount)
}
