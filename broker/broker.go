// Package broker defines the order-execution collaborator boundary. The
// backtest never touches it (fills are simulated at the signal's reference
// price); a live scan submits here first and mutates the portfolio only on
// acknowledgment.
package broker

import "context"

type OrderType string

const (
	Market OrderType = "market"
	Limit  OrderType = "limit"
)

type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

type OrderRequest struct {
	Symbol   string
	Quantity int
	Side     OrderSide
	Type     OrderType

	// LimitPrice is required for limit orders, ignored otherwise.
	LimitPrice *float64
}

// Broker submits orders and returns an opaque order identifier. A failed
// submission is fire-and-log for callers: skip the signal, never corrupt
// portfolio state.
type Broker interface {
	SubmitOrder(ctx context.Context, req OrderRequest) (string, error)
	CancelAll(ctx context.Context) error
}
