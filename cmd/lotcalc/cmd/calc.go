package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fxtools/lotcalc/form"
	"github.com/fxtools/lotcalc/history"
	"github.com/fxtools/lotcalc/market"
	"github.com/fxtools/lotcalc/pricing"
	"github.com/fxtools/lotcalc/risk"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate a position size",
	Long: `Calculate lot size, risk, margin and risk/reward for a trade.

The stop-loss (and optional take-profit) can be given either as a
price or as a pip distance; the other representation is derived.
When --entry is omitted the entry price is auto-filled from the
reference price table.

Examples:
  lotcalc calc --symbol EUR/USD --entry 1.0700 --stop-loss 1.0650
  lotcalc calc --symbol XAU/USD --stop-pips 150 --tp-pips 450 --direction sell
  lotcalc calc --symbol GBP/USD --stop-pips 30 --risk-type amount --risk-value 250`,
	RunE: runCalc,
}

var (
	calcSymbol    string
	calcDirection string
	calcEntry     float64
	calcStopPrice float64
	calcStopPips  float64
	calcTPPrice   float64
	calcTPPips    float64
	calcAccount   float64
	calcCurrency  string
	calcLeverage  float64
	calcRiskType  string
	calcRiskValue float64
	calcNoSave    bool
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVarP(&calcSymbol, "symbol", "s", "", "instrument symbol, e.g. EUR/USD (default from config)")
	calcCmd.Flags().StringVarP(&calcDirection, "direction", "d", "buy", "trade direction: buy or sell")
	calcCmd.Flags().Float64VarP(&calcEntry, "entry", "e", 0, "entry price (omit to auto-fill from reference prices)")
	calcCmd.Flags().Float64Var(&calcStopPrice, "stop-loss", 0, "stop-loss price")
	calcCmd.Flags().Float64Var(&calcStopPips, "stop-pips", 0, "stop-loss distance in pips")
	calcCmd.Flags().Float64Var(&calcTPPrice, "take-profit", 0, "take-profit price (optional)")
	calcCmd.Flags().Float64Var(&calcTPPips, "tp-pips", 0, "take-profit distance in pips (optional)")
	calcCmd.Flags().Float64Var(&calcAccount, "account-size", 0, "account size (default from config)")
	calcCmd.Flags().StringVar(&calcCurrency, "currency", "", "account currency (default from config)")
	calcCmd.Flags().Float64Var(&calcLeverage, "leverage", 0, "leverage ratio, e.g. 500 for 1:500 (default from config)")
	calcCmd.Flags().StringVar(&calcRiskType, "risk-type", "", "percentage or amount (default from config)")
	calcCmd.Flags().Float64Var(&calcRiskValue, "risk-value", 0, "risk percentage or amount (default from config)")
	calcCmd.Flags().BoolVar(&calcNoSave, "no-save", false, "do not archive the result to history")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()

	resolver := pricing.Resolver{Legacy: cfg.LegacyPips()}
	rates := market.NewRates(log)

	f := form.New(resolver, rates, log)
	f.AccountCurrency = cfg.Account.Currency
	f.AccountSize = cfg.Account.Size
	f.Leverage = cfg.Account.Leverage
	f.RiskType = risk.RiskType(cfg.Risk.Type)
	f.RiskValue = cfg.Risk.Value

	if calcCurrency != "" {
		f.AccountCurrency = calcCurrency
	}
	if calcAccount > 0 {
		f.AccountSize = calcAccount
	}
	if cmd.Flags().Changed("leverage") {
		f.Leverage = calcLeverage
	}
	if calcRiskType != "" {
		f.RiskType = risk.RiskType(calcRiskType)
	}
	if calcRiskValue > 0 {
		f.RiskValue = calcRiskValue
	}

	symbol := calcSymbol
	if symbol == "" {
		symbol = cfg.Instrument
	}
	f.SetInstrument(symbol)

	switch calcDirection {
	case "buy", "sell":
		f.SetDirection(pricing.Direction(calcDirection))
	default:
		return fmt.Errorf("direction must be buy or sell, got %q", calcDirection)
	}

	if cmd.Flags().Changed("entry") {
		f.SetEntryPrice(calcEntry)
	} else {
		f.FillEntryFromMarket(cmd.Context(), market.DefaultPrices())
	}
	if _, ok := f.EntryPrice(); !ok {
		return fmt.Errorf("no entry price: pass --entry (no reference price for %s)", symbol)
	}

	switch {
	case cmd.Flags().Changed("stop-loss"):
		f.SetStopLossPrice(calcStopPrice)
	case cmd.Flags().Changed("stop-pips"):
		f.SetStopLossPips(calcStopPips)
	default:
		return fmt.Errorf("a stop-loss is required: pass --stop-loss or --stop-pips")
	}

	switch {
	case cmd.Flags().Changed("take-profit"):
		f.SetTakeProfitPrice(calcTPPrice)
	case cmd.Flags().Changed("tp-pips"):
		f.SetTakeProfitPips(calcTPPips)
	}

	res, err := f.Calculate()
	if errors.Is(err, risk.ErrStopTooTight) {
		return fmt.Errorf("stop-loss is less than half a pip from entry; widen the stop (planned risk %.2f %s)",
			res.TotalRiskAmount, f.AccountCurrency)
	}
	if err != nil {
		return err
	}
	if res.LotSize <= 0 {
		return fmt.Errorf("inputs incomplete: account size, risk value, entry and stop-loss must all be positive")
	}

	printResult(f, res)

	if !calcNoSave {
		h, err := openHistory(cfg, log)
		if err != nil {
			return err
		}
		defer h.Close()
		if err := h.Add(history.NewEntry(f.Snapshot(), res)); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	return nil
}

func printResult(f *form.Form, res risk.Result) {
	entry, _ := f.EntryPrice()
	ccy := f.AccountCurrency

	fmt.Printf("%s %s @ %g\n", f.Instrument().Symbol, f.Direction(), entry)
	fmt.Printf("  Lot size:        %.2f (%s)\n", res.LotSize, res.Category)
	fmt.Printf("  Risk:            %.2f %s (%.2f%% of account)\n", res.TotalRiskAmount, ccy, res.EffectiveRiskPct)
	fmt.Printf("  Risk per pip:    %.2f %s\n", res.RiskPerPip, ccy)
	fmt.Printf("  Stop-loss:       %g (%.1f pips)\n", f.SL.Effective, res.StopLossPips)
	if res.TakeProfitPips != nil {
		fmt.Printf("  Take-profit:     %g (%.1f pips)\n", f.TP.Effective, *res.TakeProfitPips)
	}
	if res.PotentialProfit != nil {
		fmt.Printf("  Potential profit: %.2f %s\n", *res.PotentialProfit, ccy)
	}
	if res.RiskReward != nil {
		fmt.Printf("  Risk/reward:     1:%.2f\n", *res.RiskReward)
	}
	fmt.Printf("  Margin required: %.2f %s\n", res.MarginRequired, ccy)
}
