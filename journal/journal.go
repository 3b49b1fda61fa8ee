// Package journal persists trade ledgers and backtest run summaries.
package journal

import "time"

// TradeRecord is one append-only ledger entry. Opening legs carry a zero
// RealizedPL and HoldTime; closing legs carry the realized result and how
// long the position was held.
type TradeRecord struct {
	RunID    string
	TradeID  string
	Date     time.Time
	Symbol   string
	Action   string // "buy" or "sell"
	Price    float64
	Quantity int

	RealizedPL float64
	HoldTime   time.Duration
}

// Closing reports whether this record realized P/L. Every "sell" in the
// ledger comes from a position close; opens are always "buy". A same-day
// round trip closes with a zero HoldTime, so the action alone is the
// discriminator.
func (t TradeRecord) Closing() bool {
	return t.Action == "sell"
}

// Run mirrors one row of the runs table: a single backtest execution.
type Run struct {
	RunID    string
	Created  time.Time
	Strategy string

	Start time.Time
	End   time.Time

	InitialCapital float64
	FinalCapital   float64
}

type Journal interface {
	RecordRun(Run) error
	RecordTrade(TradeRecord) error
	Close() error
}
