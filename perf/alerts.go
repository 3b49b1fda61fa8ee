package perf

import (
	"fmt"
	"time"
)

type Severity string

const (
	SeverityHigh Severity = "high"
)

// Alert is an advisory risk flag derived from the daily metrics. Alerts
// never halt a simulation; they are records for the report.
type Alert struct {
	Date     time.Time
	Type     string
	Severity Severity
	Message  string
}

// RiskLimits configures CheckRiskLimits. Both thresholds are negative
// numbers: an absolute daily loss and a relative drawdown.
type RiskLimits struct {
	MaxDailyLoss float64 // e.g. -10000 (account currency)
	MaxDrawdown  float64 // e.g. -0.2 (fraction of peak)
}

// CheckRiskLimits flags every day whose pnl is below MaxDailyLoss, and
// flags once, at its deepest point, a drawdown below MaxDrawdown.
func CheckRiskLimits(daily []DailyMetrics, limits RiskLimits) []Alert {
	var alerts []Alert

	for _, d := range daily {
		if d.PnL < limits.MaxDailyLoss {
			alerts = append(alerts, Alert{
				Date:     d.Date,
				Type:     "daily_loss_limit",
				Severity: SeverityHigh,
				Message: fmt.Sprintf("daily pnl (%.2f) below limit (%.2f)",
					d.PnL, limits.MaxDailyLoss),
			})
		}
	}

	if worst, at, ok := worstDrawdown(daily); ok && worst < limits.MaxDrawdown {
		alerts = append(alerts, Alert{
			Date:     at,
			Type:     "max_drawdown",
			Severity: SeverityHigh,
			Message: fmt.Sprintf("drawdown (%.2f%%) below limit (%.2f%%)",
				worst*100, limits.MaxDrawdown*100),
		})
	}

	return alerts
}

// worstDrawdown locates the deepest drawdown of the daily pnl series and
// the date it bottomed out.
func worstDrawdown(daily []DailyMetrics) (float64, time.Time, bool) {
	var (
		cum    float64
		runMax = 0.0
		have   bool
		worst  float64
		at     time.Time
	)

	for _, d := range daily {
		cum += d.PnL
		if cum > runMax {
			runMax = cum
		}
		if runMax <= 0 {
			continue
		}
		dd := (cum - runMax) / runMax
		if !have || dd < worst {
			worst = dd
			at = d.Date
			have = true
		}
	}
	return worst, at, have
}
