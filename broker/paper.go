package broker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Fill is a paper broker acknowledgment.
type Fill struct {
	OrderID string
	OrderRequest
}

// Paper acknowledges every well-formed order without executing anything.
// It stands in for a live brokerage in dry runs and tests.
type Paper struct {
	mu     sync.Mutex
	nextID int
	fills  []Fill
	log    *zap.SugaredLogger
}

func NewPaper(log *zap.SugaredLogger) *Paper {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Paper{log: log}
}

func (p *Paper) SubmitOrder(ctx context.Context, req OrderRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Symbol == "" {
		return "", fmt.Errorf("submit order: symbol is required")
	}
	if req.Quantity <= 0 {
		return "", fmt.Errorf("submit order %s: quantity must be positive, got %d", req.Symbol, req.Quantity)
	}
	if req.Side != Buy && req.Side != Sell {
		return "", fmt.Errorf("submit order %s: invalid side %q", req.Symbol, req.Side)
	}
	if req.Type == Limit && (req.LimitPrice == nil || *req.LimitPrice <= 0) {
		return "", fmt.Errorf("submit order %s: limit order needs a positive limit price", req.Symbol)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := fmt.Sprintf("PAPER-%06d", p.nextID)
	p.fills = append(p.fills, Fill{OrderID: id, OrderRequest: req})

	p.log.Infow("paper order accepted",
		"order_id", id, "symbol", req.Symbol, "side", req.Side,
		"quantity", req.Quantity, "type", req.Type)
	return id, nil
}

func (p *Paper) CancelAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.log.Infow("cancelled all open paper orders", "count", len(p.fills))
	p.fills = nil
	return nil
}

// Fills returns a copy of every acknowledged order.
func (p *Paper) Fills() []Fill {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Fill, len(p.fills))
	copy(out, p.fills)
	return out
}
