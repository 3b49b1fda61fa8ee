// Package scanner turns daily bar history into gap-versus-moving-average
// trade signals.
package scanner

import (
	"math"
	"time"

	"github.com/rustyeddy/gapscan/market"
	"go.uber.org/zap"
)

type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
)

// Direction selects which side of the gap rule a scan applies.
type Direction int

const (
	// Down emits sell signals on down-gaps confirmed below trend.
	Down Direction = iota
	// Up emits buy signals on up-gaps confirmed above trend.
	Up
	// Both runs the down and up rules together.
	Both
)

// Signal is one scan hit, consumed once by the backtest engine or the live
// trade path.
type Signal struct {
	Symbol     string
	Action     Action
	Price      float64 // session open, the reference fill price
	Quantity   int
	GapPercent float64
	MovingAvg  float64
}

// Config parameterizes a scan. One scanner covers both gap directions; the
// original pair of near-identical scan scripts differed only in the
// mirrored inequalities.
type Config struct {
	// Window is the moving-average window in sessions.
	Window int

	// GapPercent is the trigger threshold; a session qualifies when its
	// gap magnitude exceeds it in the scanned direction.
	GapPercent float64

	// OrderDollarSize is the fixed budget per signal; suggested quantity
	// is floor(OrderDollarSize / open). Symbols that floor to zero are
	// dropped.
	OrderDollarSize float64

	Direction Direction

	// SameDayClose computes the moving average over a window ending at
	// the scanned session's own close instead of the previous session's.
	// That reproduces the historical pipeline, which could not fetch the
	// current day and averaged over what it had. Leave false for the
	// corrected previous-close average.
	SameDayClose bool
}

func DefaultConfig() Config {
	return Config{
		Window:          20,
		GapPercent:      3.0,
		OrderDollarSize: 10_000,
		Direction:       Both,
	}
}

type Scanner struct {
	cfg Config
	log *zap.SugaredLogger
}

func New(cfg Config, log *zap.SugaredLogger) *Scanner {
	if cfg.Window <= 0 {
		cfg.Window = 20
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scanner{cfg: cfg, log: log}
}

func (s *Scanner) Name() string { return "gap-scan" }

// Scan evaluates every symbol with a session on day and returns signals in
// symbol order. Symbols lacking a previous close or enough history for the
// moving average are skipped, not errors.
func (s *Scanner) Scan(hist *market.History, day time.Time) []Signal {
	var out []Signal

	for _, bar := range hist.DaySlice(day) {
		prevClose, ok := hist.PreviousClose(bar.Symbol, day)
		if !ok || prevClose == 0 {
			continue
		}

		ma, ok := s.movingAverage(hist, bar.Symbol, day)
		if !ok {
			continue
		}

		gap := GapPercent(bar.Open, prevClose)

		var action Action
		switch {
		case s.scansDown() && gap < -s.cfg.GapPercent && bar.Open < ma:
			// Down-gap still below trend: the move has room, short it.
			action = Sell
		case s.scansUp() && gap > s.cfg.GapPercent && bar.Open > ma:
			action = Buy
		default:
			continue
		}

		qty := int(math.Floor(s.cfg.OrderDollarSize / bar.Open))
		if qty == 0 {
			// Unaffordable at one-share granularity.
			continue
		}

		s.log.Infow("signal",
			"symbol", bar.Symbol, "action", action,
			"gap_percent", gap, "ma", ma, "open", bar.Open)

		out = append(out, Signal{
			Symbol:     bar.Symbol,
			Action:     action,
			Price:      bar.Open,
			Quantity:   qty,
			GapPercent: gap,
			MovingAvg:  ma,
		})
	}

	return out
}

func (s *Scanner) movingAverage(hist *market.History, symbol string, day time.Time) (float64, bool) {
	var bars []market.Bar
	if s.cfg.SameDayClose {
		bars = hist.WindowThrough(symbol, day, s.cfg.Window)
	} else {
		bars = hist.WindowBefore(symbol, day, s.cfg.Window)
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	ma, err := MovingAverage(closes, s.cfg.Window)
	if err != nil {
		// Insufficient history; the symbol sits out this session.
		return 0, false
	}
	return ma, true
}

func (s *Scanner) scansDown() bool {
	return s.cfg.Direction == Down || s.cfg.Direction == Both
}

func (s *Scanner) scansUp() bool {
	return s.cfg.Direction == Up || s.cfg.Direction == Both
}
