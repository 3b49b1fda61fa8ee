package market

import (
	"context"
	"time"
)

// Source is the market-data collaborator boundary. A vendor client fetches
// daily bars for the given symbols over [start, end]; the core only ever
// consumes the resulting History.
type Source interface {
	Bars(ctx context.Context, symbols []string, start, end time.Time) (*History, error)
}

// FileSource serves bars out of a local CSV file, the offline stand-in for
// a vendor data client.
type FileSource struct {
	Path string
}

// Bars loads the file and filters to the requested symbols and date range.
// An empty symbols slice means every symbol in the file.
func (s FileSource) Bars(ctx context.Context, symbols []string, start, end time.Time) (*History, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := LoadCSV(s.Path)
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		want[sym] = true
	}

	start = Day(start)
	end = Day(end)

	out := NewHistory()
	for _, sym := range all.Symbols() {
		if len(want) > 0 && !want[sym] {
			continue
		}
		for _, b := range all.series(sym) {
			if b.Date.Before(start) || b.Date.After(end) {
				continue
			}
			out.Add(b)
		}
	}
	return out, nil
}
