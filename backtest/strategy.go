package backtest

import (
	"time"

	"github.com/rustyeddy/gapscan/market"
	"github.com/rustyeddy/gapscan/scanner"
)

// Strategy produces the signals for one simulated day. The gap scanner is
// the usual implementation; anything that can see the history and emit
// signals (a predictor, a replayed signal file) plugs in the same way.
type Strategy interface {
	Name() string
	Scan(hist *market.History, day time.Time) []scanner.Signal
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(hist *market.History, day time.Time) []scanner.Signal

func (f StrategyFunc) Name() string { return "func" }

func (f StrategyFunc) Scan(hist *market.History, day time.Time) []scanner.Signal {
	return f(hist, day)
}
