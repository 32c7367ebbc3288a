package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/fxtools/lotcalc/market"
)

// Config holds the calculator defaults. File values can be overridden
// per-field through LOTCALC_* environment variables.
type Config struct {
	Account    AccountConfig `json:"account" yaml:"account"`
	Risk       RiskConfig    `json:"risk" yaml:"risk"`
	Pip        PipConfig     `json:"pip" yaml:"pip"`
	History    HistoryConfig `json:"history" yaml:"history"`
	Instrument string        `json:"instrument" yaml:"instrument" env:"LOTCALC_INSTRUMENT"`
}

// AccountConfig contains account defaults.
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency" env:"LOTCALC_ACCOUNT_CURRENCY"`
	Size     float64 `json:"size" yaml:"size" env:"LOTCALC_ACCOUNT_SIZE"`
	Leverage float64 `json:"leverage" yaml:"leverage" env:"LOTCALC_LEVERAGE"`
}

// RiskConfig contains risk defaults.
type RiskConfig struct {
	Type  string  `json:"type" yaml:"type" env:"LOTCALC_RISK_TYPE"`   // "percentage" or "amount"
	Value float64 `json:"value" yaml:"value" env:"LOTCALC_RISK_VALUE"`
}

// PipConfig selects the metals/indices pip-multiplier variant.
type PipConfig struct {
	Multiplier string `json:"multiplier" yaml:"multiplier" env:"LOTCALC_PIP_MULTIPLIER"` // "modern" (0.10) or "legacy" (0.01)
}

// HistoryConfig selects where calculation history is persisted.
type HistoryConfig struct {
	Backend string `json:"backend" yaml:"backend" env:"LOTCALC_HISTORY_BACKEND"` // "json" or "sqlite"
	Path    string `json:"path" yaml:"path" env:"LOTCALC_HISTORY_PATH"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Size:     10_000,
			Leverage: 500,
		},
		Risk: RiskConfig{
			Type:  "percentage",
			Value: 1,
		},
		Pip: PipConfig{
			Multiplier: "modern",
		},
		History: HistoryConfig{
			Backend: "json",
			Path:    "./lotcalc-history.json",
		},
		Instrument: "EUR/USD",
	}
}

// Load returns defaults overlaid with the config file (when path is
// non-empty) and then with environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// Try YAML first, fall back to JSON.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if jerr := json.Unmarshal(data, cfg); jerr != nil {
				return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves the configuration (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Size <= 0 {
		return fmt.Errorf("account.size must be positive")
	}
	if c.Account.Leverage < 0 {
		return fmt.Errorf("account.leverage must not be negative")
	}
	if c.Risk.Type != "percentage" && c.Risk.Type != "amount" {
		return fmt.Errorf("risk.type must be 'percentage' or 'amount'")
	}
	if c.Risk.Value <= 0 {
		return fmt.Errorf("risk.value must be positive")
	}
	if c.Pip.Multiplier != "modern" && c.Pip.Multiplier != "legacy" {
		return fmt.Errorf("pip.multiplier must be 'modern' or 'legacy'")
	}
	if c.History.Backend != "json" && c.History.Backend != "sqlite" {
		return fmt.Errorf("history.backend must be 'json' or 'sqlite'")
	}
	if c.History.Path == "" {
		return fmt.Errorf("history.path is required")
	}
	// Free-text symbols are synthesized at runtime, but the configured
	// default must come from the catalog.
	if _, ok := market.Instruments[c.Instrument]; !ok {
		return fmt.Errorf("unknown instrument: %s", c.Instrument)
	}
	return nil
}

// LegacyPips reports whether the legacy 0.01 metals/indices pip
// multiplier is selected.
func (c *Config) LegacyPips() bool {
	return c.Pip.Multiplier == "legacy"
}
