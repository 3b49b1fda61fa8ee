// Package market holds daily OHLCV bars and the per-symbol history the
// scanner and backtest engine read from.
package market

import "time"

// Bar is one daily OHLCV session for a single symbol.
type Bar struct {
	Symbol string
	Date   time.Time // session date, normalized to midnight UTC
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Day truncates t to its calendar date in UTC. All history lookups key on
// this normalization, so callers can pass any time within the session.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
