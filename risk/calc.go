// risk/calc.go
package risk

import (
	"errors"
	"math"

	"github.com/fxtools/lotcalc/market"
	"github.com/fxtools/lotcalc/pricing"
)

// ErrStopTooTight reports a stop-loss distance below half a pip
// (including zero). The accompanying Result still carries the planned
// risk amount and percentage so the caller can display them while
// asking the user to widen the stop.
var ErrStopTooTight = errors.New("stop-loss distance below half a pip")

type RiskType string

const (
	RiskPercent RiskType = "percentage"
	RiskAmount  RiskType = "amount"
)

type LotCategory string

const (
	LotStandard LotCategory = "standard" // >= 1.0
	LotMini     LotCategory = "mini"     // >= 0.1
	LotMicro    LotCategory = "micro"
)

// Inputs is everything Calculate needs. All monetary values are in
// AccountCurrency. A zero TakeProfitPrice means "no take-profit".
type Inputs struct {
	AccountCurrency string            `json:"account_currency"`
	AccountSize     float64           `json:"account_size"`
	Leverage        float64           `json:"leverage"`
	RiskType        RiskType          `json:"risk_type"`
	RiskValue       float64           `json:"risk_value"`
	Instrument      market.Instrument `json:"instrument"`
	EntryPrice      float64           `json:"entry_price"`
	StopLossPrice   float64           `json:"stop_loss_price"`
	TakeProfitPrice float64           `json:"take_profit_price,omitempty"`
	Direction       pricing.Direction `json:"direction"`

	Resolver pricing.Resolver `json:"-"`
	Rates    *market.Rates    `json:"-"`
}

// Result is the full output snapshot. Nil pointer fields mean "not
// applicable" (no take-profit supplied). Monetary fields are in the
// account currency.
type Result struct {
	LotSize          float64     `json:"lot_size"`
	TotalRiskAmount  float64     `json:"total_risk_amount"`
	RiskPerPip       float64     `json:"risk_per_pip"`
	StopLossPips     float64     `json:"stop_loss_pips"`
	TakeProfitPips   *float64    `json:"take_profit_pips,omitempty"`
	PotentialProfit  *float64    `json:"potential_profit,omitempty"`
	MarginRequired   float64     `json:"margin_required"`
	RiskReward       *float64    `json:"risk_reward,omitempty"`
	Category         LotCategory `json:"category"`
	EffectiveRiskPct float64     `json:"effective_risk_pct"`
}

// Calculate is a pure position-sizing function. Incomplete input
// (non-positive account size, risk value, entry or stop price) yields
// the zeroed micro result with a nil error; the caller uses that to
// suppress display, it is not an error signal. A stop closer than
// half a pip yields ErrStopTooTight. NaN never escapes.
func Calculate(in Inputs) (Result, error) {
	res := Result{Category: LotMicro}

	rates := in.Rates
	if rates == nil {
		rates = market.NewRates(nil)
	}

	if !positive(in.AccountSize) || !positive(in.RiskValue) ||
		!positive(in.EntryPrice) || !positive(in.StopLossPrice) {
		return res, nil
	}

	riskAmt := in.RiskValue
	if in.RiskType == RiskPercent {
		riskAmt = in.AccountSize * in.RiskValue / 100
	}

	slPips, _ := in.Resolver.PipsFromPrices(in.EntryPrice, in.StopLossPrice, in.Instrument.Symbol)
	if slPips < 0.5 {
		res.TotalRiskAmount = san(riskAmt)
		res.EffectiveRiskPct = san(riskAmt / in.AccountSize * 100)
		return res, ErrStopTooTight
	}

	// Pip value of one standard lot in quote currency, then in the
	// account currency.
	pipValue := in.Resolver.Multiplier(in.Instrument.Symbol) * in.Instrument.ContractSize
	if in.Instrument.QuoteCurrency != in.AccountCurrency {
		pipValue = rates.Convert(pipValue, in.Instrument.QuoteCurrency, in.AccountCurrency)
	}

	lot := round2(riskAmt / (slPips * pipValue))
	if !(lot >= 0.01) {
		lot = 0.01
	}

	actualRisk := lot * slPips * pipValue

	res.LotSize = san(lot)
	res.TotalRiskAmount = san(actualRisk)
	res.EffectiveRiskPct = san(actualRisk / in.AccountSize * 100)
	res.RiskPerPip = san(lot * pipValue)
	res.StopLossPips = san(slPips)

	if in.TakeProfitPrice > 0 {
		if tpPips, ok := in.Resolver.PipsFromPrices(in.EntryPrice, in.TakeProfitPrice, in.Instrument.Symbol); ok {
			res.TakeProfitPips = optional(tpPips)
			res.PotentialProfit = optional(lot * tpPips * pipValue)
			if slPips > 0 {
				res.RiskReward = optional(tpPips / slPips)
			}
		}
	}

	res.MarginRequired = marginRequired(lot, in, rates)

	switch {
	case lot >= 1.0:
		res.Category = LotStandard
	case lot >= 0.1:
		res.Category = LotMini
	}

	return res, nil
}

// marginRequired values the position in USD, applies leverage and
// converts into the account currency. Zero leverage means the trade
// cannot be leveraged at all: margin is reported as +Inf rather than
// a divide-by-zero NaN.
func marginRequired(lot float64, in Inputs, rates *market.Rates) float64 {
	if in.Leverage <= 0 {
		return math.Inf(1)
	}
	posUSD := positionValueUSD(lot, in.Instrument, in.EntryPrice, rates)
	return san(rates.Convert(posUSD/in.Leverage, "USD", in.AccountCurrency))
}

// positionValueUSD picks the valuation branch by where USD (or USDT)
// sits in the pair. Cross pairs use the base currency's USD rate;
// that mirrors the documented behavior even where a true cross rate
// would arguably be more accurate.
func positionValueUSD(lot float64, inst market.Instrument, entry float64, rates *market.Rates) float64 {
	units := lot * inst.ContractSize
	switch {
	case inst.QuoteCurrency == "USD" || inst.QuoteCurrency == "USDT":
		return units * entry
	case inst.BaseCurrency == "USD" || inst.BaseCurrency == "USDT":
		return units
	default:
		return units * rates.ToUSD(inst.BaseCurrency)
	}
}

func positive(x float64) bool {
	return !math.IsNaN(x) && x > 0
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func san(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}

func optional(x float64) *float64 {
	if math.IsNaN(x) {
		return nil
	}
	return &x
}
