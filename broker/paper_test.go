package broker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperSubmitOrder(t *testing.T) {
	p := NewPaper(nil)
	ctx := context.Background()

	id, err := p.SubmitOrder(ctx, OrderRequest{Symbol: "SPY", Quantity: 10, Side: Buy, Type: Market})
	require.NoError(t, err)
	assert.Equal(t, "PAPER-000001", id)

	id, err = p.SubmitOrder(ctx, OrderRequest{Symbol: "QQQ", Quantity: 5, Side: Sell, Type: Market})
	require.NoError(t, err)
	assert.Equal(t, "PAPER-000002", id)

	fills := p.Fills()
	require.Len(t, fills, 2)
	assert.Equal(t, "SPY", fills[0].Symbol)
	assert.Equal(t, Sell, fills[1].Side)
}

func TestPaperRejectsMalformedOrders(t *testing.T) {
	p := NewPaper(nil)
	ctx := context.Background()
	price := 100.0

	tests := []struct {
		name string
		req  OrderRequest
	}{
		{"missing symbol", OrderRequest{Quantity: 10, Side: Buy, Type: Market}},
		{"zero quantity", OrderRequest{Symbol: "SPY", Quantity: 0, Side: Buy, Type: Market}},
		{"bad side", OrderRequest{Symbol: "SPY", Quantity: 10, Side: OrderSide("hold"), Type: Market}},
		{"limit without price", OrderRequest{Symbol: "SPY", Quantity: 10, Side: Buy, Type: Limit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.SubmitOrder(ctx, tt.req)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, p.Fills())

	// A limit order with a price is fine.
	_, err := p.SubmitOrder(ctx, OrderRequest{
		Symbol: "SPY", Quantity: 10, Side: Buy, Type: Limit, LimitPrice: &price,
	})
	assert.NoError(t, err)
}

func TestPaperCancelAll(t *testing.T) {
	p := NewPaper(nil)
	ctx := context.Background()

	_, err := p.SubmitOrder(ctx, OrderRequest{Symbol: "SPY", Quantity: 10, Side: Buy, Type: Market})
	require.NoError(t, err)

	require.NoError(t, p.CancelAll(ctx))
	assert.Empty(t, p.Fills())
}

func TestPaperHonorsContext(t *testing.T) {
	p := NewPaper(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.SubmitOrder(ctx, OrderRequest{Symbol: "SPY", Quantity: 10, Side: Buy, Type: Market})
	assert.Error(t, err)
	assert.Error(t, p.CancelAll(ctx))
}
