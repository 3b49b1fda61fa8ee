// Package predict adapts an opaque gap-direction classifier into the same
// signal stream the scanner produces, so a trained model can drive the
// backtest engine without the engine knowing the difference.
package predict

import (
	"math"
	"time"

	"github.com/rustyeddy/gapscan/market"
	"github.com/rustyeddy/gapscan/scanner"
)

// Prediction is one classifier output for a session: +1 expects an up
// move, -1 a down move, 0 no edge.
type Prediction struct {
	Symbol    string
	Direction int
}

// Predictor is the opaque model boundary. Training lives elsewhere; the
// core only consumes predictions.
type Predictor interface {
	Predict(hist *market.History, day time.Time) []Prediction
}

// Strategy turns predictions into sized signals priced at the session
// open, budgeted the same way the scanner budgets.
type Strategy struct {
	Predictor       Predictor
	OrderDollarSize float64
}

func (s *Strategy) Name() string { return "gap-predictor" }

func (s *Strategy) Scan(hist *market.History, day time.Time) []scanner.Signal {
	var out []scanner.Signal

	for _, p := range s.Predictor.Predict(hist, day) {
		if p.Direction == 0 {
			continue
		}

		bar, ok := hist.Bar(p.Symbol, day)
		if !ok || bar.Open <= 0 {
			continue
		}

		qty := int(math.Floor(s.OrderDollarSize / bar.Open))
		if qty == 0 {
			continue
		}

		action := scanner.Buy
		if p.Direction < 0 {
			action = scanner.Sell
		}

		out = append(out, scanner.Signal{
			Symbol:   p.Symbol,
			Action:   action,
			Price:    bar.Open,
			Quantity: qty,
		})
	}

	return out
}
