package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/gapscan/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBacktestConsumesConfigFile(t *testing.T) {
	dir := t.TempDir()

	bars := filepath.Join(dir, "bars.csv")
	require.NoError(t, os.WriteFile(bars,
		[]byte("SPY,2024-03-04,500,501,499,500,100\n"), 0644))

	db := filepath.Join(dir, "journal.db")
	cfg := config.Default()
	cfg.Backtest.Start = "2024-03-04"
	cfg.Backtest.End = "2024-03-04"
	cfg.Journal.DBPath = db

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, cfg.SaveToFile(cfgPath))

	// Dates and journal location come from the file; only bars and
	// config are flags.
	rootCmd.SetArgs([]string{"backtest", "--bars", bars, "--config", cfgPath})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(db)
	assert.NoError(t, err, "journal DB from the config file should exist")
}
