package portfolio

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rustyeddy/gapscan/journal"
	"go.uber.org/zap"
)

// Limits are the risk rules evaluated on every admission check.
type Limits struct {
	// MaxPositionFrac caps a single position's value as a fraction of
	// current capital.
	MaxPositionFrac float64

	// MaxDailyLossFrac sets the advisory daily-loss line as a fraction of
	// initial capital. Breaching it raises an Alert; it never blocks opens.
	MaxDailyLossFrac float64

	// MaxOpenPositions caps how many symbols may be held at once.
	MaxOpenPositions int
}

// DefaultLimits mirrors the limits the scanner scripts ran with.
func DefaultLimits() Limits {
	return Limits{
		MaxPositionFrac:  0.1,
		MaxDailyLossFrac: 0.02,
		MaxOpenPositions: 5,
	}
}

// Alert is an advisory risk event. Alerts are queued, never enforced;
// whether a breach halts trading is the caller's policy.
type Alert struct {
	Time time.Time
	Code string
	Msg  string
}

// Manager tracks capital and open positions for one account.
//
// Rejections (position cap, capital cap, duplicate symbol) are boolean
// results, not errors; update/close on an absent symbol is a no-op. Only
// contract violations (non-positive price or quantity) surface as errors.
//
// Current capital moves only on realized P/L from closes. Unrealized P/L
// of open positions shows up in the daily P/L bookkeeping, never in
// capital.
type Manager struct {
	mu sync.Mutex

	initialCapital float64
	currentCapital float64
	dailyPNL       float64
	limits         Limits

	positions map[string]*Position
	alerts    []Alert
	log       *zap.SugaredLogger
}

func NewManager(initialCapital float64, limits Limits, log *zap.SugaredLogger) *Manager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Manager{
		initialCapital: initialCapital,
		currentCapital: initialCapital,
		limits:         limits,
		positions:      make(map[string]*Position),
		log:            log,
	}
}

// CanOpen runs the admission rules without side effects.
func (m *Manager) CanOpen(symbol string, price float64, quantity int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canOpenLocked(symbol, price, quantity)
}

func (m *Manager) canOpenLocked(symbol string, price float64, quantity int) bool {
	if len(m.positions) >= m.limits.MaxOpenPositions {
		m.log.Warnw("max open positions reached",
			"symbol", symbol, "max", m.limits.MaxOpenPositions)
		return false
	}

	value := price * float64(quantity)
	maxValue := m.currentCapital * m.limits.MaxPositionFrac
	if value > maxValue {
		m.log.Warnw("position value exceeds size limit",
			"symbol", symbol, "value", value, "limit", maxValue)
		return false
	}

	if _, ok := m.positions[symbol]; ok {
		m.log.Warnw("position already open", "symbol", symbol)
		return false
	}

	return true
}

// Open re-validates admission and, if accepted, creates the position with
// entry and current price both set to price. Rejection is (false, nil).
// The admission check and the open are one atomic decision; a CanOpen
// answer from an earlier call may already be stale.
func (m *Manager) Open(symbol string, price float64, quantity int, side Side, at time.Time) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("open %s: quantity must be positive, got %d", symbol, quantity)
	}
	if price <= 0 {
		return false, fmt.Errorf("open %s: price must be positive, got %v", symbol, price)
	}
	if side != Long && side != Short {
		return false, fmt.Errorf("open %s: invalid side %q", symbol, side)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.canOpenLocked(symbol, price, quantity) {
		return false, nil
	}

	m.positions[symbol] = &Position{
		Symbol:       symbol,
		Side:         side,
		Quantity:     quantity,
		EntryPrice:   price,
		CurrentPrice: price,
		Value:        price * float64(quantity),
		EntryTime:    at,
	}

	m.log.Infow("opened position",
		"symbol", symbol, "side", side, "quantity", quantity, "price", price)
	return true, nil
}

// Update marks the position to price and folds the value delta into the
// daily P/L. Unknown symbols are a no-op. A daily-loss breach returns (and
// queues) an advisory alert; it does not block anything.
func (m *Manager) Update(symbol string, price float64) *Alert {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos, ok := m.positions[symbol]
	if !ok {
		return nil
	}

	newValue := price * float64(pos.Quantity)
	m.dailyPNL += newValue - pos.Value
	pos.CurrentPrice = price
	pos.Value = newValue

	limit := -m.initialCapital * m.limits.MaxDailyLossFrac
	if m.dailyPNL < limit {
		a := Alert{
			Time: time.Now().UTC(),
			Code: "DAILY_LOSS_LIMIT",
			Msg: fmt.Sprintf("daily pnl %.2f below limit %.2f",
				m.dailyPNL, limit),
		}
		m.alerts = append(m.alerts, a)
		m.log.Warnw("daily loss limit breached",
			"daily_pnl", m.dailyPNL, "limit", limit)
		return &a
	}

	return nil
}

// Close removes the position, realizes its P/L into current capital and
// daily P/L, and returns the closing ledger record. Closing an absent
// symbol is a no-op returning (zero, false), so close-then-close is
// idempotent.
func (m *Manager) Close(symbol string, price float64, at time.Time) (journal.TradeRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos, ok := m.positions[symbol]
	if !ok {
		return journal.TradeRecord{}, false
	}
	delete(m.positions, symbol)

	pnl := (price - pos.EntryPrice) * float64(pos.Quantity)
	if pos.Side == Short {
		pnl = -pnl
	}

	m.currentCapital += pnl
	m.dailyPNL += pnl

	m.log.Infow("closed position",
		"symbol", symbol, "price", price, "pnl", pnl)

	return journal.TradeRecord{
		Date:       at,
		Symbol:     symbol,
		Action:     "sell",
		Price:      price,
		Quantity:   pos.Quantity,
		RealizedPL: pnl,
		HoldTime:   at.Sub(pos.EntryTime),
	}, true
}

// ResetDailyPNL zeroes the daily P/L accumulator. The driving loop calls
// this exactly once per simulated trading day.
func (m *Manager) ResetDailyPNL() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dailyPNL = 0
}

// Summary returns snapshots of all open positions ordered by symbol, with
// hold times measured against asOf. Empty when nothing is open.
func (m *Manager) Summary(asOf time.Time) []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	syms := make([]string, 0, len(m.positions))
	for s := range m.positions {
		syms = append(syms, s)
	}
	sort.Strings(syms)

	out := make([]Snapshot, 0, len(syms))
	for _, s := range syms {
		pos := m.positions[s]
		out = append(out, Snapshot{
			Symbol:       pos.Symbol,
			Side:         pos.Side,
			Quantity:     pos.Quantity,
			EntryPrice:   pos.EntryPrice,
			CurrentPrice: pos.CurrentPrice,
			Value:        pos.Value,
			UnrealizedPL: pos.UnrealizedPL(),
			HoldTime:     asOf.Sub(pos.EntryTime),
		})
	}
	return out
}

// Position returns a copy of the open position for symbol, if any.
func (m *Manager) Position(symbol string) (Position, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos, ok := m.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

func (m *Manager) OpenPositions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.positions)
}

func (m *Manager) InitialCapital() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialCapital
}

func (m *Manager) CurrentCapital() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentCapital
}

func (m *Manager) DailyPNL() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dailyPNL
}

// Alerts returns a copy of all advisory alerts raised so far.
func (m *Manager) Alerts() []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}
