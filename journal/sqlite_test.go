package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func testRun(runID string) Run {
	return Run{
		RunID:          runID,
		Created:        time.Date(2024, 3, 8, 16, 0, 0, 0, time.UTC),
		Strategy:       "gap-scan",
		Start:          time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		InitialCapital: 100_000,
		FinalCapital:   101_250,
	}
}

func testTrade(runID, tradeID string, day int) TradeRecord {
	return TradeRecord{
		RunID:      runID,
		TradeID:    tradeID,
		Date:       time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Symbol:     "SPY",
		Action:     "sell",
		Price:      511.25,
		Quantity:   19,
		RealizedPL: 123.5,
		HoldTime:   24 * time.Hour,
	}
}

func TestSQLiteRunRoundTrip(t *testing.T) {
	j := newTestDB(t)

	want := testRun("R1")
	require.NoError(t, j.RecordRun(want))

	got, err := j.GetRun("R1")
	require.NoError(t, err)
	assert.Equal(t, want.RunID, got.RunID)
	assert.Equal(t, want.Strategy, got.Strategy)
	assert.True(t, want.Created.Equal(got.Created))
	assert.True(t, want.Start.Equal(got.Start))
	assert.True(t, want.End.Equal(got.End))
	assert.Equal(t, want.InitialCapital, got.InitialCapital)
	assert.Equal(t, want.FinalCapital, got.FinalCapital)
}

func TestSQLiteGetRunMissing(t *testing.T) {
	j := newTestDB(t)
	_, err := j.GetRun("nope")
	assert.Error(t, err)
}

func TestSQLiteDuplicateRunRejected(t *testing.T) {
	j := newTestDB(t)
	require.NoError(t, j.RecordRun(testRun("R1")))
	assert.Error(t, j.RecordRun(testRun("R1")))
}

func TestSQLiteTradesByRun(t *testing.T) {
	j := newTestDB(t)
	require.NoError(t, j.RecordRun(testRun("R1")))

	// Insert out of ID order; listing is by trade_id.
	require.NoError(t, j.RecordTrade(testTrade("R1", "T-000002", 5)))
	require.NoError(t, j.RecordTrade(testTrade("R1", "T-000001", 4)))
	require.NoError(t, j.RecordTrade(testTrade("R2", "T-000001", 4)))

	trades, err := j.ListTradesByRun("R1")
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, "T-000001", trades[0].TradeID)
	assert.Equal(t, "T-000002", trades[1].TradeID)

	got := trades[0]
	assert.Equal(t, "SPY", got.Symbol)
	assert.Equal(t, 19, got.Quantity)
	assert.Equal(t, 123.5, got.RealizedPL)
	assert.Equal(t, 24*time.Hour, got.HoldTime)
	assert.True(t, got.Closing())
}

func TestSQLiteTradesBetween(t *testing.T) {
	j := newTestDB(t)
	require.NoError(t, j.RecordTrade(testTrade("R1", "T-000001", 4)))
	require.NoError(t, j.RecordTrade(testTrade("R1", "T-000002", 6)))
	require.NoError(t, j.RecordTrade(testTrade("R1", "T-000003", 8)))

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	trades, err := j.ListTradesBetween(start, end)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "T-000002", trades[0].TradeID)
}
