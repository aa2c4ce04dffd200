package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/backtest/sim"
)

// Config represents the complete backtest configuration
type Config struct {
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// BacktestConfig contains simulation and analyzer parameters
type BacktestConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	Slippage       float64 `json:"slippage" yaml:"slippage"`
	LatencySec     float64 `json:"latency_sec" yaml:"latency_sec"`
	StepDuration   float64 `json:"step_duration,omitempty" yaml:"step_duration,omitempty"`
	RiskFree       float64 `json:"risk_free,omitempty" yaml:"risk_free,omitempty"`
	Sizing         string  `json:"sizing,omitempty" yaml:"sizing,omitempty"` // "all-in" or "fixed-notional"
	Notional       float64 `json:"notional,omitempty" yaml:"notional,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty"` // "none", "csv" or "sqlite"
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
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

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Backtest.Slippage < 0 {
		return fmt.Errorf("backtest.slippage must be non-negative")
	}
	if c.Backtest.LatencySec < 0 {
		return fmt.Errorf("backtest.latency_sec must be non-negative")
	}
	if c.Backtest.StepDuration < 0 {
		return fmt.Errorf("backtest.step_duration must be non-negative")
	}
	switch c.Backtest.Sizing {
	case "", "all-in":
	case "fixed-notional":
		if c.Backtest.Notional <= 0 {
			return fmt.Errorf("backtest.notional must be positive for fixed-notional sizing")
		}
	default:
		return fmt.Errorf("backtest.sizing must be 'all-in' or 'fixed-notional', got %q", c.Backtest.Sizing)
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal runs_file, trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite', got %q", c.Journal.Type)
	}
	return nil
}

// SimParams converts the backtest section into engine parameters.
func (c *Config) SimParams() sim.Params {
	p := sim.Params{
		InitialCapital: c.Backtest.InitialCapital,
		Slippage:       c.Backtest.Slippage,
		LatencySec:     c.Backtest.LatencySec,
		StepDuration:   c.Backtest.StepDuration,
	}
	if c.Backtest.Sizing == "fixed-notional" {
		p.Sizer = sim.FixedNotional{Notional: c.Backtest.Notional}
	}
	return p
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Backtest: BacktestConfig{
			InitialCapital: 10000,
			Slippage:       0.0005,
			LatencySec:     0,
			StepDuration:   sim.DefaultStepDuration,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
