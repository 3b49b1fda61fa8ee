// Package backtest drives a strategy day by day over historical bars,
// routing signals through the position manager and accumulating the trade
// ledger and daily-return series.
package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/gapscan/journal"
	"github.com/rustyeddy/gapscan/market"
	"github.com/rustyeddy/gapscan/perf"
	"github.com/rustyeddy/gapscan/portfolio"
	"github.com/rustyeddy/gapscan/scanner"
	"go.uber.org/zap"
)

type Config struct {
	Start time.Time
	End   time.Time

	InitialCapital float64

	// PositionFrac sizes each buy: quantity =
	// floor(current_capital * PositionFrac / price). It doubles as the
	// manager's per-position cap, so an accepted size always admits.
	PositionFrac float64

	// MaxDailyLossFrac and MaxOpenPositions pass through to the position
	// manager's limits.
	MaxDailyLossFrac float64
	MaxOpenPositions int
}

func DefaultConfig(start, end time.Time) Config {
	return Config{
		Start:            start,
		End:              end,
		InitialCapital:   100_000,
		PositionFrac:     0.1,
		MaxDailyLossFrac: 0.02,
		MaxOpenPositions: 5,
	}
}

// Result is everything a run produced. Two runs over identical inputs
// produce identical ledgers and return series; only RunID differs.
type Result struct {
	RunID    string
	Strategy string

	Ledger       []journal.TradeRecord
	DailyReturns []float64

	Daily   []perf.DailyMetrics
	Metrics perf.StrategyMetrics

	InitialCapital float64
	FinalCapital   float64
	Start, End     time.Time
}

type Engine struct {
	hist  *market.History
	strat Strategy
	cfg   Config

	pm      *portfolio.Manager
	journal journal.Journal // optional
	log     *zap.SugaredLogger

	ledger  []journal.TradeRecord
	returns []float64
	nextID  int
}

// NewEngine builds an engine over hist. j may be nil to skip persistence;
// log may be nil for silence.
func NewEngine(hist *market.History, strat Strategy, cfg Config, j journal.Journal, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		hist:  hist,
		strat: strat,
		cfg:   cfg,
		pm: portfolio.NewManager(cfg.InitialCapital, portfolio.Limits{
			MaxPositionFrac:  cfg.PositionFrac,
			MaxDailyLossFrac: cfg.MaxDailyLossFrac,
			MaxOpenPositions: cfg.MaxOpenPositions,
		}, log),
		journal: j,
		log:     log,
	}
}

// Manager exposes the engine's position manager, mainly for inspection
// after a run.
func (e *Engine) Manager() *portfolio.Manager { return e.pm }

// Run walks the calendar from Start to End inclusive. Weekends and days
// without session data contribute nothing: no signals, no return entry,
// no daily reset.
func (e *Engine) Run() (Result, error) {
	if e.hist == nil {
		return Result{}, fmt.Errorf("backtest: history is required")
	}
	if e.strat == nil {
		return Result{}, fmt.Errorf("backtest: strategy is required")
	}
	if e.cfg.End.Before(e.cfg.Start) {
		return Result{}, fmt.Errorf("backtest: end %s before start %s",
			e.cfg.End.Format("2006-01-02"), e.cfg.Start.Format("2006-01-02"))
	}

	start := market.Day(e.cfg.Start)
	end := market.Day(e.cfg.End)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if len(e.hist.DaySlice(day)) == 0 {
			continue
		}

		if err := e.runDay(day); err != nil {
			return Result{}, err
		}
	}

	daily := perf.Daily(e.ledger)
	metrics := perf.Strategy(daily)

	res := Result{
		RunID:          journal.NewRunID(),
		Strategy:       e.strat.Name(),
		Ledger:         e.ledger,
		DailyReturns:   e.returns,
		Daily:          daily,
		Metrics:        metrics,
		InitialCapital: e.cfg.InitialCapital,
		FinalCapital:   e.pm.CurrentCapital(),
		Start:          start,
		End:            end,
	}

	e.record(res)
	return res, nil
}

// runDay applies one trading day: signals in scanner order, then the
// day's return, then the daily reset. Signal order matters because each
// accepted open changes the capital and count the next admission check
// sees.
func (e *Engine) runDay(day time.Time) error {
	for _, sig := range e.strat.Scan(e.hist, day) {
		switch sig.Action {
		case scanner.Buy:
			if err := e.applyBuy(sig, day); err != nil {
				return err
			}
		case scanner.Sell:
			e.applySell(sig, day)
		}
	}

	e.returns = append(e.returns, e.pm.DailyPNL()/e.pm.CurrentCapital())
	e.pm.ResetDailyPNL()
	return nil
}

func (e *Engine) applyBuy(sig scanner.Signal, day time.Time) error {
	if sig.Price <= 0 {
		e.log.Warnw("dropping buy signal with bad price",
			"symbol", sig.Symbol, "price", sig.Price)
		return nil
	}

	qty := int(math.Floor(e.pm.CurrentCapital() * e.cfg.PositionFrac / sig.Price))
	if qty <= 0 {
		return nil
	}

	ok, err := e.pm.Open(sig.Symbol, sig.Price, qty, portfolio.Long, day)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	e.append(journal.TradeRecord{
		Date:     day,
		Symbol:   sig.Symbol,
		Action:   "buy",
		Price:    sig.Price,
		Quantity: qty,
	})
	return nil
}

func (e *Engine) applySell(sig scanner.Signal, day time.Time) {
	rec, ok := e.pm.Close(sig.Symbol, sig.Price, day)
	if !ok {
		// Nothing open for the symbol; sells are frequently speculative.
		return
	}
	e.append(rec)
}

func (e *Engine) append(rec journal.TradeRecord) {
	e.nextID++
	rec.TradeID = fmt.Sprintf("T-%06d", e.nextID)
	e.ledger = append(e.ledger, rec)
}

// record persists the run and its ledger. Persistence failure is a
// collaborator failure: logged, never allowed to fail the run.
func (e *Engine) record(res Result) {
	if e.journal == nil {
		return
	}

	err := e.journal.RecordRun(journal.Run{
		RunID:          res.RunID,
		Created:        time.Now().UTC(),
		Strategy:       res.Strategy,
		Start:          res.Start,
		End:            res.End,
		InitialCapital: res.InitialCapital,
		FinalCapital:   res.FinalCapital,
	})
	if err != nil {
		e.log.Errorw("record run", "run_id", res.RunID, "err", err)
	}

	for _, rec := range res.Ledger {
		rec.RunID = res.RunID
		if err := e.journal.RecordTrade(rec); err != nil {
			e.log.Errorw("record trade",
				"run_id", res.RunID, "trade_id", rec.TradeID, "err", err)
		}
	}
}
