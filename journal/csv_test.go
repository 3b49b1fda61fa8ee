package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	runsPath := filepath.Join(dir, "runs.csv")

	j, err := NewCSV(tradesPath, runsPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordRun(testRun("R1")))
	require.NoError(t, j.RecordTrade(testTrade("R1", "T-000001", 4)))
	require.NoError(t, j.RecordTrade(testTrade("R1", "T-000002", 5)))
	require.NoError(t, j.Close())

	trades := readAll(t, tradesPath)
	require.Len(t, trades, 3) // header plus two records
	assert.Equal(t, "trade_id", trades[0][1])

	row := trades[1]
	assert.Equal(t, "R1", row[0])
	assert.Equal(t, "T-000001", row[1])
	assert.Equal(t, "2024-03-04", row[2])
	assert.Equal(t, "SPY", row[3])
	assert.Equal(t, "sell", row[4])
	assert.Equal(t, "511.250000", row[5])
	assert.Equal(t, "19", row[6])
	assert.Equal(t, "123.500000", row[7])
	assert.Equal(t, "86400.000000", row[8])

	runs := readAll(t, runsPath)
	require.Len(t, runs, 2)
	assert.Equal(t, "R1", runs[1][0])
	assert.Equal(t, "gap-scan", runs[1][2])
	assert.Equal(t, "2024-03-04", runs[1][3])
	assert.Equal(t, "100000.000000", runs[1][5])
	assert.Equal(t, "101250.000000", runs[1][6])
}

func TestCSVJournalBadPath(t *testing.T) {
	_, err := NewCSV("no/such/dir/trades.csv", "no/such/dir/runs.csv")
	assert.Error(t, err)
}
