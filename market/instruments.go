// market/instruments.go
package market

import (
	"sort"
	"strings"
)

type Category string

const (
	MajorFX     Category = "Major FX"
	MinorFX     Category = "Minor FX"
	Commodities Category = "Commodities"
	Indices     Category = "Indices"
	Crypto      Category = "Crypto"
)

// Instrument is immutable reference data for a tradeable pair.
// ContractSize is the number of base units in one standard lot.
type Instrument struct {
	Symbol        string   `json:"symbol" yaml:"symbol"`
	BaseCurrency  string   `json:"base" yaml:"base"`
	QuoteCurrency string   `json:"quote" yaml:"quote"`
	ContractSize  float64  `json:"contract_size" yaml:"contract_size"`
	Category      Category `json:"category" yaml:"category"`
}

var Instruments = map[string]Instrument{
	"EUR/USD": {Symbol: "EUR/USD", BaseCurrency: "EUR", QuoteCurrency: "USD", ContractSize: 100_000, Category: MajorFX},
	"GBP/USD": {Symbol: "GBP/USD", BaseCurrency: "GBP", QuoteCurrency: "USD", ContractSize: 100_000, Category: MajorFX},
	"USD/JPY": {Symbol: "USD/JPY", BaseCurrency: "USD", QuoteCurrency: "JPY", ContractSize: 100_000, Category: MajorFX},
	"USD/CHF": {Symbol: "USD/CHF", BaseCurrency: "USD", QuoteCurrency: "CHF", ContractSize: 100_000, Category: MajorFX},
	"AUD/USD": {Symbol: "AUD/USD", BaseCurrency: "AUD", QuoteCurrency: "USD", ContractSize: 100_000, Category: MajorFX},
	"USD/CAD": {Symbol: "USD/CAD", BaseCurrency: "USD", QuoteCurrency: "CAD", ContractSize: 100_000, Category: MajorFX},
	"NZD/USD": {Symbol: "NZD/USD", BaseCurrency: "NZD", QuoteCurrency: "USD", ContractSize: 100_000, Category: MajorFX},

	"EUR/GBP": {Symbol: "EUR/GBP", BaseCurrency: "EUR", QuoteCurrency: "GBP", ContractSize: 100_000, Category: MinorFX},
	"EUR/JPY": {Symbol: "EUR/JPY", BaseCurrency: "EUR", QuoteCurrency: "JPY", ContractSize: 100_000, Category: MinorFX},
	"GBP/JPY": {Symbol: "GBP/JPY", BaseCurrency: "GBP", QuoteCurrency: "JPY", ContractSize: 100_000, Category: MinorFX},
	"AUD/JPY": {Symbol: "AUD/JPY", BaseCurrency: "AUD", QuoteCurrency: "JPY", ContractSize: 100_000, Category: MinorFX},
	"EUR/AUD": {Symbol: "EUR/AUD", BaseCurrency: "EUR", QuoteCurrency: "AUD", ContractSize: 100_000, Category: MinorFX},
	"CHF/JPY": {Symbol: "CHF/JPY", BaseCurrency: "CHF", QuoteCurrency: "JPY", ContractSize: 100_000, Category: MinorFX},
	"EUR/CHF": {Symbol: "EUR/CHF", BaseCurrency: "EUR", QuoteCurrency: "CHF", ContractSize: 100_000, Category: MinorFX},

	"XAU/USD": {Symbol: "XAU/USD", BaseCurrency: "XAU", QuoteCurrency: "USD", ContractSize: 100, Category: Commodities},
	"XAG/USD": {Symbol: "XAG/USD", BaseCurrency: "XAG", QuoteCurrency: "USD", ContractSize: 5_000, Category: Commodities},

	"NAS100/USD": {Symbol: "NAS100/USD", BaseCurrency: "NAS100", QuoteCurrency: "USD", ContractSize: 1, Category: Indices},
	"US30/USD":   {Symbol: "US30/USD", BaseCurrency: "US30", QuoteCurrency: "USD", ContractSize: 1, Category: Indices},

	"BTC/USD": {Symbol: "BTC/USD", BaseCurrency: "BTC", QuoteCurrency: "USD", ContractSize: 1, Category: Crypto},
	"ETH/USD": {Symbol: "ETH/USD", BaseCurrency: "ETH", QuoteCurrency: "USD", ContractSize: 1, Category: Crypto},
}

// Lookup returns the catalog entry for symbol, or a synthesized
// instrument when the symbol is unknown. The bool reports whether the
// symbol came from the catalog.
func Lookup(symbol string) (Instrument, bool) {
	if m, ok := Instruments[symbol]; ok {
		return m, true
	}
	return Synthesize(symbol), false
}

// Synthesize builds an instrument definition from a free-text symbol.
// Base/quote come from splitting on "/" (quote defaults to USD), the
// contract size from the instrument class the symbol implies.
func Synthesize(symbol string) Instrument {
	base := symbol
	quote := "USD"
	if i := strings.Index(symbol, "/"); i >= 0 {
		base = symbol[:i]
		quote = symbol[i+1:]
	}
	return Instrument{
		Symbol:        symbol,
		BaseCurrency:  base,
		QuoteCurrency: quote,
		ContractSize:  heuristicContractSize(symbol),
		Category:      heuristicCategory(symbol),
	}
}

func heuristicContractSize(symbol string) float64 {
	switch {
	case strings.Contains(symbol, "XAU"):
		return 100
	case strings.Contains(symbol, "XAG"):
		return 5_000
	case strings.Contains(symbol, "NAS100"), strings.Contains(symbol, "US30"):
		return 1
	case strings.Contains(symbol, "BTC"), strings.Contains(symbol, "ETH"):
		return 1
	default:
		return 100_000
	}
}

func heuristicCategory(symbol string) Category {
	switch {
	case strings.Contains(symbol, "XAU"), strings.Contains(symbol, "XAG"):
		return Commodities
	case strings.Contains(symbol, "NAS100"), strings.Contains(symbol, "US30"):
		return Indices
	case strings.Contains(symbol, "BTC"), strings.Contains(symbol, "ETH"):
		return Crypto
	default:
		return MinorFX
	}
}

// List returns catalog instruments sorted by symbol, optionally
// filtered by category. Categorization is display-only.
func List(cat Category) []Instrument {
	out := make([]Instrument, 0, len(Instruments))
	for _, m := range Instruments {
		if cat != "" && m.Category != cat {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
