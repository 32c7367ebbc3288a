package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fxtools/lotcalc/market"
	"github.com/fxtools/lotcalc/pricing"
)

var instrumentsCategory string

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List the instrument catalog",
	Long: `List catalog instruments with their contract sizes and pip
multipliers. Categories: "Major FX", "Minor FX", "Commodities",
"Indices", "Crypto".`,
	RunE: runInstruments,
}

func init() {
	rootCmd.AddCommand(instrumentsCmd)
	instrumentsCmd.Flags().StringVarP(&instrumentsCategory, "category", "c", "", "filter by category")
}

func runInstruments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	resolver := pricing.Resolver{Legacy: cfg.LegacyPips()}

	list := market.List(market.Category(instrumentsCategory))
	if len(list) == 0 {
		return fmt.Errorf("no instruments in category %q", instrumentsCategory)
	}

	fmt.Printf("%-12s %-6s %-6s %12s %10s  %s\n", "SYMBOL", "BASE", "QUOTE", "CONTRACT", "PIP", "CATEGORY")
	for _, m := range list {
		fmt.Printf("%-12s %-6s %-6s %12.0f %10.4f  %s\n",
			m.Symbol, m.BaseCurrency, m.QuoteCurrency, m.ContractSize,
			resolver.Multiplier(m.Symbol), m.Category)
	}
	return nil
}
