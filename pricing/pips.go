// pricing/pips.go
package pricing

import (
	"math"
	"strings"
)

// Direction is the trade side.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// Leg distinguishes the stop-loss from the take-profit side of a trade.
type Leg int

const (
	StopLoss Leg = iota
	TakeProfit
)

// metalIndexSymbols get the large pip multiplier instead of the
// standard 0.0001. Substring match, case-sensitive.
var metalIndexSymbols = []string{"XAU", "XAG", "NAS100", "US30"}

// Resolver resolves pip multipliers and converts between prices and
// pip distances. Legacy selects the 0.01 metals/indices multiplier
// that older deployments used instead of 0.10.
type Resolver struct {
	Legacy bool
}

// Multiplier returns the price value of one pip for symbol. It is a
// pure function of the symbol string and is recomputed on every call.
func (r Resolver) Multiplier(symbol string) float64 {
	for _, s := range metalIndexSymbols {
		if strings.Contains(symbol, s) {
			if r.Legacy {
				return 0.01
			}
			return 0.10
		}
	}
	return 0.0001
}

// PipMultiplier resolves with the default (non-legacy) multiplier set.
func PipMultiplier(symbol string) float64 {
	return Resolver{}.Multiplier(symbol)
}

// PipsFromPrices returns the pip distance between entry and target.
// The bool is false when either price is missing/non-positive, leaving
// the corresponding field clearable by the caller.
func (r Resolver) PipsFromPrices(entry, target float64, symbol string) (float64, bool) {
	if !validPrice(entry) || !validPrice(target) {
		return 0, false
	}
	mult := r.Multiplier(symbol)
	if mult == 0 {
		return 0, false
	}
	return math.Abs(entry-target) / mult, true
}

// PriceFromPips derives a stop-loss or take-profit price from a pip
// distance. Direction and leg fix the sign: a buy's stop sits below
// entry and its target above, a sell inverts both. A derived price
// that would be non-positive reports false.
func (r Resolver) PriceFromPips(entry, pips float64, symbol string, dir Direction, leg Leg) (float64, bool) {
	if !validPrice(entry) || math.IsNaN(pips) || pips < 0 {
		return 0, false
	}
	mult := r.Multiplier(symbol)
	if mult == 0 {
		return 0, false
	}

	change := pips * mult
	var px float64
	switch {
	case dir == Buy && leg == StopLoss:
		px = entry - change
	case dir == Buy && leg == TakeProfit:
		px = entry + change
	case dir == Sell && leg == StopLoss:
		px = entry + change
	default: // sell take-profit
		px = entry - change
	}

	if px <= 0 {
		return 0, false
	}
	return px, true
}

func validPrice(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x > 0
}
