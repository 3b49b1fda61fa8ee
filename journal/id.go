package journal

import "github.com/oklog/ulid/v2"

// NewRunID returns a time-sortable identifier for a backtest run, so run
// listings and range queries order by creation time without a sequence
// table. Trade IDs within a run are sequential; run identity is the only
// ID allowed to differ between otherwise identical runs.
func NewRunID() string {
	return ulid.Make().String()
}
