package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the calculation history",
	Long: `Manage the bounded calculation history (newest first, 10 entries).

Subcommands:
  list  - Show archived calculations
  clear - Delete all archived calculations`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show archived calculations",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all archived calculations",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := openHistory(cfg, newLogger())
	if err != nil {
		return err
	}
	defer h.Close()

	entries := h.Entries()
	if len(entries) == 0 {
		fmt.Println("No archived calculations.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  %s %s @ %g  lot %.2f  risk %.2f %s\n",
			e.Time.Format("2006-01-02 15:04"),
			e.ID,
			e.Inputs.Instrument.Symbol,
			e.Inputs.Direction,
			e.Inputs.EntryPrice,
			e.Result.LotSize,
			e.Result.TotalRiskAmount,
			e.Inputs.AccountCurrency,
		)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := openHistory(cfg, newLogger())
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Clear(); err != nil {
		return err
	}
	fmt.Println("✓ History cleared")
	return nil
}
