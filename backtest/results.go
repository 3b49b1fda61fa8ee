package backtest

import (
	"fmt"
	"io"
	"time"
)

// PrintResult writes a human-readable run summary.
func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:          %s\n", r.RunID)
	fmt.Fprintf(w, "Strategy:        %s\n", r.Strategy)
	fmt.Fprintf(w, "Period:          %s -> %s\n",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	fmt.Fprintf(w, "Initial Capital: %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final Capital:   %.2f\n", r.FinalCapital)
	fmt.Fprintf(w, "Total P/L:       %.2f\n", r.Metrics.TotalPnL)
	fmt.Fprintf(w, "Trades:          %d\n", r.Metrics.TotalTrades)
	fmt.Fprintf(w, "Avg Win Rate:    %.2f%%\n", r.Metrics.AvgWinRate*100)
	fmt.Fprintf(w, "Sharpe Ratio:    %.3f\n", r.Metrics.SharpeRatio)
	fmt.Fprintf(w, "Max Drawdown:    %.2f%%\n", r.Metrics.MaxDrawdown*100)
	fmt.Fprintf(w, "Trading Days:    %d\n", len(r.DailyReturns))

	if len(r.Ledger) > 0 {
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintln(w, " Trades")
		for _, t := range r.Ledger {
			line := fmt.Sprintf("  %s %s %-5s %-6s qty=%-5d px=%.2f",
				t.TradeID, t.Date.Format("2006-01-02"), t.Action, t.Symbol,
				t.Quantity, t.Price)
			if t.Closing() {
				line += fmt.Sprintf(" pnl=%.2f held=%s", t.RealizedPL, holdDays(t.HoldTime))
			}
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w, "==================================================")
}

func holdDays(d time.Duration) string {
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%dd", days)
}
