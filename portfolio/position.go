// Package portfolio owns account capital and open positions, and enforces
// the admission rules that decide which trades are allowed.
package portfolio

import "time"

type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// Position is one open holding. At most one exists per symbol.
type Position struct {
	Symbol       string
	Side         Side
	Quantity     int
	EntryPrice   float64
	CurrentPrice float64
	Value        float64 // CurrentPrice * Quantity
	EntryTime    time.Time
}

// UnrealizedPL marks the position against its current price. Shorts profit
// when price falls.
func (p Position) UnrealizedPL() float64 {
	pl := (p.CurrentPrice - p.EntryPrice) * float64(p.Quantity)
	if p.Side == Short {
		pl = -pl
	}
	return pl
}

// Snapshot is a read-only projection of a position for reporting.
type Snapshot struct {
	Symbol       string
	Side         Side
	Quantity     int
	EntryPrice   float64
	CurrentPrice float64
	Value        float64
	UnrealizedPL float64
	HoldTime     time.Duration
}
