package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gapscan",
	Short: "A gap-versus-moving-average scanner and backtest engine",
	Long: `Gapscan scans a universe of instruments for price gaps relative to a
moving average, sizes trades under a risk budget, and backtests the
resulting strategy over historical daily bars.

It provides tools for:
  - Scanning daily bars for gap-up / gap-down signals
  - Backtesting the gap strategy day by day with risk limits
  - Journaling trade ledgers and run summaries (SQLite or CSV)
  - Daily and strategy-level performance metrics`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
