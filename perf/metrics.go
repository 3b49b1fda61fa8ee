// Package perf derives day-level and strategy-level statistics from a
// trade ledger. It is a read-only consumer: metrics are recomputed on
// demand and never fed back into the trading path.
package perf

import (
	"math"
	"sort"
	"time"

	"github.com/rustyeddy/gapscan/journal"
)

// TradingDaysPerYear annualizes the Sharpe ratio.
const TradingDaysPerYear = 252

// DailyMetrics is one calendar-date bucket of the ledger.
type DailyMetrics struct {
	Date       time.Time
	TradeCount int

	// PnL sums realized P/L across the day's closing trades.
	PnL float64

	// WinRate is the fraction of closing trades with positive P/L; zero
	// when the day closed nothing.
	WinRate float64

	// ProfitLossRatio is mean winning P/L over |mean losing P/L|; zero
	// when the day had no wins or no losses.
	ProfitLossRatio float64
}

// StrategyMetrics aggregates the daily buckets for a whole run.
type StrategyMetrics struct {
	TotalPnL     float64
	AvgDailyPnL  float64
	PnLStd       float64
	BestDayPnL   float64
	WorstDayPnL  float64
	TotalTrades  int
	AvgTradesDay float64

	AvgWinRate         float64
	AvgProfitLossRatio float64
	TradingDaysRatio   float64

	SharpeRatio float64
	MaxDrawdown float64
}

// Daily buckets the ledger by calendar date, ordered by date.
func Daily(ledger []journal.TradeRecord) []DailyMetrics {
	if len(ledger) == 0 {
		return nil
	}

	buckets := make(map[time.Time][]journal.TradeRecord)
	for _, rec := range ledger {
		d := dateOf(rec.Date)
		buckets[d] = append(buckets[d], rec)
	}

	dates := make([]time.Time, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]DailyMetrics, 0, len(dates))
	for _, d := range dates {
		recs := buckets[d]

		var (
			pnl    float64
			closes int
			wins   int
			sumWin float64
			nWin   int
			sumLos float64
			nLos   int
		)
		for _, rec := range recs {
			if !rec.Closing() {
				continue
			}
			closes++
			pnl += rec.RealizedPL
			switch {
			case rec.RealizedPL > 0:
				wins++
				sumWin += rec.RealizedPL
				nWin++
			case rec.RealizedPL < 0:
				sumLos += rec.RealizedPL
				nLos++
			}
		}

		dm := DailyMetrics{
			Date:       d,
			TradeCount: len(recs),
			PnL:        pnl,
		}
		if closes > 0 {
			dm.WinRate = float64(wins) / float64(closes)
		}
		if nWin > 0 && nLos > 0 {
			dm.ProfitLossRatio = (sumWin / float64(nWin)) / math.Abs(sumLos/float64(nLos))
		}

		out = append(out, dm)
	}
	return out
}

// Strategy reduces the daily buckets to run-level statistics.
func Strategy(daily []DailyMetrics) StrategyMetrics {
	var m StrategyMetrics
	if len(daily) == 0 {
		return m
	}

	pnls := make([]float64, len(daily))
	tradingDays := 0

	m.BestDayPnL = math.Inf(-1)
	m.WorstDayPnL = math.Inf(1)

	for i, d := range daily {
		pnls[i] = d.PnL
		m.TotalPnL += d.PnL
		m.TotalTrades += d.TradeCount
		m.AvgWinRate += d.WinRate
		m.AvgProfitLossRatio += d.ProfitLossRatio
		if d.TradeCount > 0 {
			tradingDays++
		}
		if d.PnL > m.BestDayPnL {
			m.BestDayPnL = d.PnL
		}
		if d.PnL < m.WorstDayPnL {
			m.WorstDayPnL = d.PnL
		}
	}

	n := float64(len(daily))
	m.AvgDailyPnL = m.TotalPnL / n
	m.PnLStd = stddev(pnls)
	m.AvgTradesDay = float64(m.TotalTrades) / n
	m.AvgWinRate /= n
	m.AvgProfitLossRatio /= n
	m.TradingDaysRatio = float64(tradingDays) / n

	m.SharpeRatio = sharpe(pnls)
	m.MaxDrawdown = MaxDrawdown(cumulative(pnls))

	return m
}

// sharpe annualizes the mean/σ of the daily-pnl percentage-change series.
// Terms whose previous pnl is zero are undefined and skipped.
func sharpe(pnls []float64) float64 {
	var changes []float64
	for i := 1; i < len(pnls); i++ {
		if pnls[i-1] == 0 {
			continue
		}
		changes = append(changes, pnls[i]/pnls[i-1]-1)
	}
	if len(changes) < 2 {
		return 0
	}

	sd := stddev(changes)
	if sd == 0 {
		return 0
	}
	return math.Sqrt(TradingDaysPerYear) * mean(changes) / sd
}

// MaxDrawdown returns the deepest relative decline of the cumulative pnl
// series from its running maximum. Points where the running maximum is not
// yet positive have no defined drawdown and are skipped.
func MaxDrawdown(cumulative []float64) float64 {
	runMax := math.Inf(-1)
	minDD := 0.0

	for _, c := range cumulative {
		if c > runMax {
			runMax = c
		}
		if runMax <= 0 {
			continue
		}
		dd := (c - runMax) / runMax
		if dd < minDD {
			minDD = dd
		}
	}
	return minDD
}

func cumulative(xs []float64) []float64 {
	out := make([]float64, len(xs))
	sum := 0.0
	for i, x := range xs {
		sum += x
		out[i] = sum
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mu := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - mu
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
