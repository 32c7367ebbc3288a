// market/prices.go
package market

import (
	"context"
	"errors"
	"sync"
)

// ErrPriceNotFound is returned by a PriceSource when it has no
// reference price for the requested symbol.
var ErrPriceNotFound = errors.New("price not found")

// PriceSource supplies a current reference price for a symbol. It is
// an auto-fill collaborator for the entry price field, nothing more:
// a failed lookup leaves the field blank.
type PriceSource interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// StaticPrices is a PriceSource backed by an in-memory table.
type StaticPrices struct {
	mu     sync.RWMutex
	prices map[string]float64
}

func NewStaticPrices() *StaticPrices {
	return &StaticPrices{prices: make(map[string]float64)}
}

// DefaultPrices returns a source seeded with reference prices for the
// catalog instruments.
func DefaultPrices() *StaticPrices {
	sp := NewStaticPrices()
	for sym, px := range map[string]float64{
		"EUR/USD":    1.0850,
		"GBP/USD":    1.2700,
		"USD/JPY":    149.50,
		"USD/CHF":    0.8850,
		"AUD/USD":    0.6600,
		"USD/CAD":    1.3550,
		"NZD/USD":    0.6100,
		"EUR/GBP":    0.8540,
		"EUR/JPY":    162.20,
		"GBP/JPY":    189.90,
		"AUD/JPY":    98.70,
		"EUR/AUD":    1.6430,
		"CHF/JPY":    168.90,
		"EUR/CHF":    0.9600,
		"XAU/USD":    2350.00,
		"XAG/USD":    27.50,
		"NAS100/USD": 18500.00,
		"US30/USD":   39200.00,
		"BTC/USD":    67000.00,
		"ETH/USD":    3500.00,
	} {
		sp.Set(sym, px)
	}
	return sp
}

func (sp *StaticPrices) Set(symbol string, price float64) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.prices[symbol] = price
}

func (sp *StaticPrices) GetPrice(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	sp.mu.RLock()
	defer sp.mu.RUnlock()
	px, ok := sp.prices[symbol]
	if !ok {
		return 0, ErrPriceNotFound
	}
	return px, nil
}
