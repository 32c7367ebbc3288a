package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fxtools/lotcalc/market"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the static USD exchange-rate table",
	Long: `Show the exchange rates used to convert pip values and margin into
the account currency. Commodities and crypto are priced via the entry
price instead and do not appear here.`,
	RunE: runRates,
}

func init() {
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, args []string) error {
	table := market.NewRates(newLogger()).Snapshot()

	ccys := make([]string, 0, len(table))
	for ccy := range table {
		ccys = append(ccys, ccy)
	}
	sort.Strings(ccys)

	fmt.Printf("%-6s %12s\n", "CCY", "USD RATE")
	for _, ccy := range ccys {
		fmt.Printf("%-6s %12.4f\n", ccy, table[ccy])
	}
	return nil
}
