package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fxtools/lotcalc/config"
	"github.com/fxtools/lotcalc/history"
)

var rootCmd = &cobra.Command{
	Use:   "lotcalc",
	Short: "A forex position-sizing calculator",
	Long: `Lotcalc computes forex position-sizing metrics from a small set of
trade parameters.

It provides tools for:
  - Risk-based lot-size calculation with margin and risk/reward
  - Stop-loss and take-profit entry as a price or a pip distance
  - Metals, indices and crypto pip handling alongside FX pairs
  - A bounded calculation history persisted locally
  - Static instrument, exchange-rate and reference-price catalogs`,
}

var (
	cfgFile string
	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func openHistory(cfg *config.Config, log *zap.Logger) (*history.History, error) {
	var store history.Store
	switch cfg.History.Backend {
	case "sqlite":
		s, err := history.NewSQLite(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		store = s
	default:
		store = history.NewJSONFile(cfg.History.Path)
	}
	return history.Open(store, log)
}
