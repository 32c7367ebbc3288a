// form/form.go
package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/fxtools/lotcalc/market"
	"github.com/fxtools/lotcalc/pricing"
	"github.com/fxtools/lotcalc/risk"
)

// Form is the single mutable calculation state: account parameters,
// the current instrument/entry/direction context and one sync state
// per leg. Edits go through the Set* methods so every dependent field
// is re-derived in the same step. Form is not safe for concurrent
// use; the caller serializes events.
type Form struct {
	AccountCurrency string
	AccountSize     float64
	Leverage        float64
	RiskType        risk.RiskType
	RiskValue       float64

	instrument market.Instrument
	entry      float64
	entrySet   bool
	direction  pricing.Direction

	SL pricing.SyncState
	TP pricing.SyncState

	resolver pricing.Resolver
	rates    *market.Rates
	log      *zap.Logger
}

func New(resolver pricing.Resolver, rates *market.Rates, log *zap.Logger) *Form {
	if rates == nil {
		rates = market.NewRates(log)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Form{
		AccountCurrency: "USD",
		RiskType:        risk.RiskPercent,
		direction:       pricing.Buy,
		resolver:        resolver,
		rates:           rates,
		log:             log,
	}
}

func (f *Form) Instrument() market.Instrument { return f.instrument }
func (f *Form) Direction() pricing.Direction  { return f.direction }

// EntryPrice returns the current entry price and whether one is set.
func (f *Form) EntryPrice() (float64, bool) { return f.entry, f.entrySet }

// SetInstrument switches the pair, looking it up in the catalog or
// synthesizing a definition for unknown symbols. This is a hard
// reset: both legs and the entry price are cleared, pending a fresh
// auto-fill via FillEntryFromMarket.
func (f *Form) SetInstrument(symbol string) {
	inst, known := market.Lookup(symbol)
	if !known {
		f.log.Info("unknown instrument, synthesized definition",
			zap.String("symbol", symbol),
			zap.Float64("contract_size", inst.ContractSize))
	}
	f.instrument = inst
	f.entry, f.entrySet = 0, false
	f.SL.Reset()
	f.TP.Reset()
}

// SetEntryPrice records a manual entry-price edit and re-derives both
// legs against it. Non-positive clears the entry.
func (f *Form) SetEntryPrice(v float64) {
	if v > 0 {
		f.entry, f.entrySet = v, true
	} else {
		f.entry, f.entrySet = 0, false
	}
	f.refreshLegs()
}

// SetDirection flips buy/sell and re-derives the pip-anchored legs,
// whose prices sit on the opposite side of entry now.
func (f *Form) SetDirection(d pricing.Direction) {
	f.direction = d
	f.refreshLegs()
}

func (f *Form) SetStopLossPrice(v float64)   { f.SL.SetPrice(v, f.legContext(pricing.StopLoss)) }
func (f *Form) SetStopLossPips(v float64)    { f.SL.SetPips(v, f.legContext(pricing.StopLoss)) }
func (f *Form) SetTakeProfitPrice(v float64) { f.TP.SetPrice(v, f.legContext(pricing.TakeProfit)) }
func (f *Form) SetTakeProfitPips(v float64)  { f.TP.SetPips(v, f.legContext(pricing.TakeProfit)) }

// FillEntryFromMarket asks the price source for a reference price and
// applies it if it is still relevant. A lookup failure is non-fatal:
// the entry stays blank for manual input.
func (f *Form) FillEntryFromMarket(ctx context.Context, src market.PriceSource) {
	symbol := f.instrument.Symbol
	px, err := src.GetPrice(ctx, symbol)
	if err != nil {
		f.log.Info("no market price, entry left blank",
			zap.String("symbol", symbol), zap.Error(err))
		return
	}
	f.ApplyMarketPrice(symbol, px)
}

// ApplyMarketPrice fills the entry price from an async lookup result.
// The result is dropped when the form has moved on to a different
// instrument since the lookup started (stale-response guard).
func (f *Form) ApplyMarketPrice(symbol string, price float64) bool {
	if symbol != f.instrument.Symbol {
		f.log.Debug("stale market price ignored",
			zap.String("symbol", symbol),
			zap.String("current", f.instrument.Symbol))
		return false
	}
	if price <= 0 {
		return false
	}
	f.entry, f.entrySet = price, true
	f.refreshLegs()
	return true
}

// Snapshot assembles the engine inputs from the current form state,
// using each leg's effective price.
func (f *Form) Snapshot() risk.Inputs {
	in := risk.Inputs{
		AccountCurrency: f.AccountCurrency,
		AccountSize:     f.AccountSize,
		Leverage:        f.Leverage,
		RiskType:        f.RiskType,
		RiskValue:       f.RiskValue,
		Instrument:      f.instrument,
		Direction:       f.direction,
		Resolver:        f.resolver,
		Rates:           f.rates,
	}
	if f.entrySet {
		in.EntryPrice = f.entry
	}
	if f.SL.EffectiveSet {
		in.StopLossPrice = f.SL.Effective
	}
	if f.TP.EffectiveSet {
		in.TakeProfitPrice = f.TP.Effective
	}
	return in
}

// Calculate runs the engine on the current snapshot.
func (f *Form) Calculate() (risk.Result, error) {
	return risk.Calculate(f.Snapshot())
}

func (f *Form) refreshLegs() {
	f.SL.Refresh(f.legContext(pricing.StopLoss))
	f.TP.Refresh(f.legContext(pricing.TakeProfit))
}

func (f *Form) legContext(leg pricing.Leg) pricing.Context {
	return pricing.Context{
		Entry:    f.entry,
		EntrySet: f.entrySet,
		Symbol:   f.instrument.Symbol,
		Dir:      f.direction,
		Leg:      leg,
		Resolver: f.resolver,
	}
}
