package perf

import (
	"encoding/json"
	"io"
	"time"
)

// Report bundles a run's metrics and alerts into the flat structure the
// reporting collaborator consumes. The core has no opinion on where it is
// written.
type Report struct {
	Date     string          `json:"date"`
	Daily    []DailyMetrics  `json:"daily_metrics"`
	Strategy StrategyMetrics `json:"strategy_metrics"`
	Alerts   []Alert         `json:"alerts"`
}

func NewReport(daily []DailyMetrics, strategy StrategyMetrics, alerts []Alert, asOf time.Time) Report {
	return Report{
		Date:     asOf.UTC().Format("2006-01-02"),
		Daily:    daily,
		Strategy: strategy,
		Alerts:   alerts,
	}
}

// WriteJSON renders the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
