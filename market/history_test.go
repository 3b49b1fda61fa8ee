package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func bar(symbol string, day int, close float64) Bar {
	return Bar{Symbol: symbol, Date: d(day), Open: close, High: close, Low: close, Close: close}
}

func TestDayNormalizes(t *testing.T) {
	noon := time.Date(2024, 3, 4, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, d(4), Day(noon))

	// Non-UTC times normalize through UTC.
	est := time.FixedZone("EST", -5*3600)
	evening := time.Date(2024, 3, 4, 20, 0, 0, 0, est) // 01:00 UTC on the 5th
	assert.Equal(t, d(5), Day(evening))
}

func TestHistoryLookup(t *testing.T) {
	h := NewHistory()
	h.Add(bar("SPY", 6, 103))
	h.Add(bar("SPY", 4, 101)) // out of order on purpose
	h.Add(bar("SPY", 5, 102))

	b, ok := h.Bar("SPY", d(5))
	require.True(t, ok)
	assert.Equal(t, 102.0, b.Close)

	_, ok = h.Bar("SPY", d(7))
	assert.False(t, ok)
	_, ok = h.Bar("QQQ", d(5))
	assert.False(t, ok)

	assert.Equal(t, 3, h.Len("SPY"))
	assert.Equal(t, 0, h.Len("QQQ"))
}

func TestHistorySymbolsSorted(t *testing.T) {
	h := NewHistory()
	for _, sym := range []string{"MSFT", "AAPL", "GOOG"} {
		h.Add(bar(sym, 4, 100))
	}
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT"}, h.Symbols())
}

func TestDaySlice(t *testing.T) {
	h := NewHistory()
	h.Add(bar("MSFT", 4, 100))
	h.Add(bar("AAPL", 4, 100))
	h.Add(bar("AAPL", 5, 101))

	slice := h.DaySlice(d(4))
	require.Len(t, slice, 2)
	assert.Equal(t, "AAPL", slice[0].Symbol)
	assert.Equal(t, "MSFT", slice[1].Symbol)

	assert.Empty(t, h.DaySlice(d(6)))
}

func TestWindows(t *testing.T) {
	h := NewHistory()
	for i := 1; i <= 5; i++ {
		h.Add(bar("SPY", i, float64(100+i)))
	}

	// Strictly before the 5th, oldest first.
	w := h.WindowBefore("SPY", d(5), 3)
	require.Len(t, w, 3)
	assert.Equal(t, 102.0, w[0].Close)
	assert.Equal(t, 104.0, w[2].Close)

	// Short history returns what there is.
	assert.Len(t, h.WindowBefore("SPY", d(3), 5), 2)
	assert.Empty(t, h.WindowBefore("SPY", d(1), 3))

	// Inclusive variant ends at the session itself.
	w = h.WindowThrough("SPY", d(5), 3)
	require.Len(t, w, 3)
	assert.Equal(t, 105.0, w[2].Close)
}

func TestPreviousClose(t *testing.T) {
	h := NewHistory()
	h.Add(bar("SPY", 4, 101))
	h.Add(bar("SPY", 6, 103)) // gap over the 5th

	c, ok := h.PreviousClose("SPY", d(6))
	require.True(t, ok)
	assert.Equal(t, 101.0, c)

	_, ok = h.PreviousClose("SPY", d(4))
	assert.False(t, ok)
}
