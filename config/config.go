// Package config loads and validates the scanner/backtest configuration
// from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete run configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Risk     RiskConfig     `json:"risk" yaml:"risk"`
	Scanner  ScannerConfig  `json:"scanner" yaml:"scanner"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

type RiskConfig struct {
	MaxPositionSize   float64 `json:"max_position_size" yaml:"max_position_size"`
	MaxDailyLoss      float64 `json:"max_daily_loss" yaml:"max_daily_loss"`
	MaxTotalPositions int     `json:"max_total_positions" yaml:"max_total_positions"`
}

type ScannerConfig struct {
	MovingAverageDays int     `json:"moving_average_days" yaml:"moving_average_days"`
	GapPercent        float64 `json:"gap_percent" yaml:"gap_percent"`
	OrderDollarSize   float64 `json:"order_dollar_size" yaml:"order_dollar_size"`
	Direction         string  `json:"direction" yaml:"direction"` // "down", "up", "both"

	// SameDayClose reproduces the historical same-day moving average
	// instead of the corrected previous-close one.
	SameDayClose bool `json:"same_day_close,omitempty" yaml:"same_day_close,omitempty"`
}

type BacktestConfig struct {
	Start        string  `json:"start" yaml:"start"` // YYYY-MM-DD
	End          string  `json:"end" yaml:"end"`
	PositionSize float64 `json:"position_size" yaml:"position_size"`
}

type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml) or JSON.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

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

// Dates parses the backtest window.
func (c *Config) Dates() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.Backtest.Start)
	if err != nil {
		return start, end, fmt.Errorf("backtest.start: %w", err)
	}
	end, err = time.Parse("2006-01-02", c.Backtest.End)
	if err != nil {
		return start, end, fmt.Errorf("backtest.end: %w", err)
	}
	return start, end, nil
}

func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Risk.MaxPositionSize <= 0 || c.Risk.MaxPositionSize > 1 {
		return fmt.Errorf("risk.max_position_size must be between 0 and 1")
	}
	if c.Risk.MaxDailyLoss <= 0 || c.Risk.MaxDailyLoss > 1 {
		return fmt.Errorf("risk.max_daily_loss must be between 0 and 1")
	}
	if c.Risk.MaxTotalPositions <= 0 {
		return fmt.Errorf("risk.max_total_positions must be positive")
	}
	if c.Scanner.MovingAverageDays <= 0 {
		return fmt.Errorf("scanner.moving_average_days must be positive")
	}
	if c.Scanner.GapPercent <= 0 {
		return fmt.Errorf("scanner.gap_percent must be positive")
	}
	if c.Scanner.OrderDollarSize <= 0 {
		return fmt.Errorf("scanner.order_dollar_size must be positive")
	}
	switch c.Scanner.Direction {
	case "down", "up", "both":
	default:
		return fmt.Errorf("scanner.direction must be 'down', 'up' or 'both'")
	}
	if c.Backtest.PositionSize <= 0 || c.Backtest.PositionSize > 1 {
		return fmt.Errorf("backtest.position_size must be between 0 and 1")
	}
	if _, _, err := c.Dates(); err != nil {
		return err
	}

	switch c.Journal.Type {
	case "none":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.RunsFile == "" {
			return fmt.Errorf("journal trades_file and runs_file required for csv type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}

	return nil
}

// Default returns a configuration with the scanner scripts' historical
// defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialCapital: 100_000,
		},
		Risk: RiskConfig{
			MaxPositionSize:   0.1,
			MaxDailyLoss:      0.02,
			MaxTotalPositions: 5,
		},
		Scanner: ScannerConfig{
			MovingAverageDays: 20,
			GapPercent:        3.0,
			OrderDollarSize:   10_000,
			Direction:         "both",
		},
		Backtest: BacktestConfig{
			Start:        "2022-01-03",
			End:          "2022-12-30",
			PositionSize: 0.1,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./gapscan.sqlite",
		},
	}
}
