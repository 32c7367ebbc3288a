// market/rates.go
package market

import "go.uber.org/zap"

// usdRates maps a fiat currency code to its USD value. Commodities,
// indices and crypto are deliberately absent: their USD value comes
// from the entry price, not from this table.
var usdRates = map[string]float64{
	"USD":  1.0,
	"USDT": 1.0,
	"EUR":  1.09,
	"GBP":  1.27,
	"JPY":  0.0067,
	"CHF":  1.13,
	"AUD":  0.66,
	"CAD":  0.74,
	"NZD":  0.61,
	"SGD":  0.74,
	"HKD":  0.128,
	"NOK":  0.094,
	"SEK":  0.095,
	"ZAR":  0.055,
	"MXN":  0.058,
}

// Rates converts monetary amounts between currencies through their
// USD value. Unknown currencies are assumed at 1.0, which keeps the
// calculation alive at the cost of accuracy; the assumption is logged.
type Rates struct {
	table map[string]float64
	log   *zap.Logger
}

func NewRates(log *zap.Logger) *Rates {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rates{table: usdRates, log: log}
}

// ToUSD returns the USD value of one unit of ccy.
func (r *Rates) ToUSD(ccy string) float64 {
	if rate, ok := r.table[ccy]; ok {
		return rate
	}
	r.log.Warn("no USD rate for currency, assuming 1.0", zap.String("currency", ccy))
	return 1.0
}

// Snapshot returns a copy of the rate table for display.
func (r *Rates) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(r.table))
	for k, v := range r.table {
		out[k] = v
	}
	return out
}

// Convert translates amount from one currency into another via USD.
func (r *Rates) Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	return amount * r.ToUSD(from) / r.ToUSD(to)
}
