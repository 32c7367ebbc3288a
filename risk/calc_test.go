package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxtools/lotcalc/market"
	"github.com/fxtools/lotcalc/pricing"
)

func eurusd() market.Instrument {
	return market.Instruments["EUR/USD"]
}

func baseInputs() Inputs {
	return Inputs{
		AccountCurrency: "USD",
		AccountSize:     10_000,
		Leverage:        500,
		RiskType:        RiskPercent,
		RiskValue:       1,
		Instrument:      eurusd(),
		EntryPrice:      1.0700,
		StopLossPrice:   1.0650,
		Direction:       pricing.Buy,
	}
}

func TestCalculate_ScenarioPercentRisk(t *testing.T) {
	t.Parallel()

	// EUR/USD, 10k USD account, 1:500, 1% risk, 50-pip stop.
	res, err := Calculate(baseInputs())
	require.NoError(t, err)

	assert.InDelta(t, 0.20, res.LotSize, 1e-9)
	assert.InDelta(t, 100.0, res.TotalRiskAmount, 1e-6)
	assert.InDelta(t, 50.0, res.StopLossPips, 1e-6)
	assert.InDelta(t, 2.0, res.RiskPerPip, 1e-9)
	assert.InDelta(t, 1.0, res.EffectiveRiskPct, 1e-6)
	assert.Equal(t, LotMini, res.Category)

	// Notional 0.20 * 100k * 1.07 over 1:500 leverage.
	assert.InDelta(t, 42.80, res.MarginRequired, 1e-6)
}

func TestCalculate_ScenarioAmountRisk(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.RiskType = RiskAmount
	in.RiskValue = 200

	res, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 0.40, res.LotSize, 1e-9)
	assert.InDelta(t, 200.0, res.TotalRiskAmount, 1e-6)
	assert.InDelta(t, 2.0, res.EffectiveRiskPct, 1e-6)
}

func TestCalculate_GoldMultiplier(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.Instrument = market.Instruments["XAU/USD"]
	in.EntryPrice = 2350.0
	in.StopLossPrice = 2335.0 // 150 pips at 0.10

	res, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 150.0, res.StopLossPips, 1e-6)
	// Pip value 0.10 * 100 = 10 USD; lot = 100 / (150*10).
	assert.InDelta(t, 0.07, res.LotSize, 1e-9)
	assert.Equal(t, LotMicro, res.Category)
}

func TestCalculate_GoldMultiplierLegacy(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.Resolver = pricing.Resolver{Legacy: true}
	in.Instrument = market.Instruments["XAU/USD"]
	in.EntryPrice = 2350.0
	in.StopLossPrice = 2335.0 // 1500 pips at 0.01

	res, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 1500.0, res.StopLossPips, 1e-6)
}

func TestCalculate_StopEqualsEntry(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.StopLossPrice = in.EntryPrice

	res, err := Calculate(in)
	assert.ErrorIs(t, err, ErrStopTooTight)

	// Planned risk survives for display; everything else zeroes.
	assert.InDelta(t, 100.0, res.TotalRiskAmount, 1e-9)
	assert.InDelta(t, 1.0, res.EffectiveRiskPct, 1e-9)
	assert.Zero(t, res.LotSize)
	assert.Zero(t, res.StopLossPips)
	assert.Equal(t, LotMicro, res.Category)
}

func TestCalculate_StopBelowHalfPip(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.StopLossPrice = in.EntryPrice - 0.00004 // 0.4 pips

	_, err := Calculate(in)
	assert.ErrorIs(t, err, ErrStopTooTight)
}

func TestCalculate_DegenerateInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Inputs)
	}{
		{"zero account", func(in *Inputs) { in.AccountSize = 0 }},
		{"negative account", func(in *Inputs) { in.AccountSize = -1 }},
		{"zero risk", func(in *Inputs) { in.RiskValue = 0 }},
		{"zero entry", func(in *Inputs) { in.EntryPrice = 0 }},
		{"zero stop", func(in *Inputs) { in.StopLossPrice = 0 }},
		{"nan entry", func(in *Inputs) { in.EntryPrice = math.NaN() }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := baseInputs()
			tt.mutate(&in)

			res, err := Calculate(in)
			require.NoError(t, err, "degenerate result is a contract, not an error")
			assert.Equal(t, Result{Category: LotMicro}, res)
		})
	}
}

func TestCalculate_NoTakeProfit(t *testing.T) {
	t.Parallel()

	res, err := Calculate(baseInputs())
	require.NoError(t, err)

	assert.Nil(t, res.TakeProfitPips)
	assert.Nil(t, res.PotentialProfit)
	assert.Nil(t, res.RiskReward)
}

func TestCalculate_WithTakeProfit(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.TakeProfitPrice = 1.0800 // 100 pips

	res, err := Calculate(in)
	require.NoError(t, err)

	require.NotNil(t, res.TakeProfitPips)
	assert.InDelta(t, 100.0, *res.TakeProfitPips, 1e-6)
	require.NotNil(t, res.PotentialProfit)
	assert.InDelta(t, 200.0, *res.PotentialProfit, 1e-6)
	require.NotNil(t, res.RiskReward)
	assert.InDelta(t, 2.0, *res.RiskReward, 1e-6)
}

func TestCalculate_QuoteConversion(t *testing.T) {
	t.Parallel()

	// USD account trading USD/JPY: pip value arrives in JPY and must
	// be converted. 0.0001 * 100k = 10 JPY -> 0.067 USD per pip.
	in := baseInputs()
	in.Instrument = market.Instruments["USD/JPY"]
	in.EntryPrice = 149.50
	in.StopLossPrice = 149.00 // 5000 pips at 0.0001

	res, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 5000.0, res.StopLossPips, 1e-4)
	assert.InDelta(t, 0.30, res.LotSize, 1e-9)
	// Base is USD: margin = units / leverage = 30000 / 500.
	assert.InDelta(t, 60.0, res.MarginRequired, 1e-6)
}

func TestCalculate_CrossPairMargin(t *testing.T) {
	t.Parallel()

	// EUR/GBP with a USD account: position valued through the base
	// currency's USD rate, the documented cross-pair behavior.
	in := baseInputs()
	in.Instrument = market.Instruments["EUR/GBP"]
	in.EntryPrice = 0.8540
	in.StopLossPrice = 0.8490 // 50 pips

	res, err := Calculate(in)
	require.NoError(t, err)

	// Pip value 10 GBP -> 12.7 USD; lot = 100/(50*12.7) = 0.157 -> 0.16.
	assert.InDelta(t, 0.16, res.LotSize, 1e-9)

	wantMargin := 0.16 * 100_000 * 1.09 / 500
	assert.InDelta(t, wantMargin, res.MarginRequired, 1e-6)
}

func TestCalculate_ZeroLeverage(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.Leverage = 0

	res, err := Calculate(in)
	require.NoError(t, err)

	assert.True(t, math.IsInf(res.MarginRequired, 1), "zero leverage cannot fund a position")
	assert.InDelta(t, 0.20, res.LotSize, 1e-9)
}

func TestCalculate_LotFloor(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.AccountSize = 100
	in.RiskValue = 0.01 // 1 cent of risk

	res, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 0.01, res.LotSize, 1e-12, "floored at the minimum lot")
}

func TestCalculate_Categories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		riskValue float64
		want      LotCategory
	}{
		{"micro", 0.1, LotMicro},      // lot 0.02
		{"mini", 1, LotMini},          // lot 0.20
		{"standard", 5, LotStandard},  // lot 1.00
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := baseInputs()
			in.RiskValue = tt.riskValue

			res, err := Calculate(in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Category)
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.TakeProfitPrice = 1.0800

	r1, err1 := Calculate(in)
	r2, err2 := Calculate(in)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r1, r2)
}

func TestCalculate_DirectionSymmetry(t *testing.T) {
	t.Parallel()

	r := pricing.Resolver{}

	// For a buy, stop < entry < target; a sell inverts both.
	entry := 1.0700
	buyStop, ok := r.PriceFromPips(entry, 50, "EUR/USD", pricing.Buy, pricing.StopLoss)
	require.True(t, ok)
	buyTP, ok := r.PriceFromPips(entry, 100, "EUR/USD", pricing.Buy, pricing.TakeProfit)
	require.True(t, ok)
	sellStop, ok := r.PriceFromPips(entry, 50, "EUR/USD", pricing.Sell, pricing.StopLoss)
	require.True(t, ok)
	sellTP, ok := r.PriceFromPips(entry, 100, "EUR/USD", pricing.Sell, pricing.TakeProfit)
	require.True(t, ok)

	assert.Less(t, buyStop, entry)
	assert.Greater(t, buyTP, entry)
	assert.Greater(t, sellStop, entry)
	assert.Less(t, sellTP, entry)
}
