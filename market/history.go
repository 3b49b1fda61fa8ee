package market

import (
	"sort"
	"time"
)

// History is a per-symbol, date-sorted collection of daily bars. It is the
// in-memory form of the market-data collaborator: addressable by
// (symbol, date) and able to answer rolling window queries for the
// moving-average computation.
//
// History is not safe for concurrent mutation; build it once, then read.
type History struct {
	bars  map[string][]Bar
	dirty map[string]bool
}

func NewHistory() *History {
	return &History{
		bars:  make(map[string][]Bar),
		dirty: make(map[string]bool),
	}
}

// Add appends a bar. Bars may arrive in any order; series are sorted
// lazily on first read.
func (h *History) Add(b Bar) {
	b.Date = Day(b.Date)
	h.bars[b.Symbol] = append(h.bars[b.Symbol], b)
	h.dirty[b.Symbol] = true
}

func (h *History) series(symbol string) []Bar {
	s := h.bars[symbol]
	if h.dirty[symbol] {
		sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
		h.dirty[symbol] = false
	}
	return s
}

// Symbols returns all known symbols in lexical order. The scanner iterates
// this, which is what makes signal order deterministic.
func (h *History) Symbols() []string {
	out := make([]string, 0, len(h.bars))
	for sym := range h.bars {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Bar returns the bar for (symbol, date), if one exists.
func (h *History) Bar(symbol string, date time.Time) (Bar, bool) {
	date = Day(date)
	s := h.series(symbol)
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(date) })
	if i < len(s) && s[i].Date.Equal(date) {
		return s[i], true
	}
	return Bar{}, false
}

// DaySlice returns every symbol's bar for the given date, ordered by
// symbol. An empty result means no session data for that date (weekend or
// holiday).
func (h *History) DaySlice(date time.Time) []Bar {
	var out []Bar
	for _, sym := range h.Symbols() {
		if b, ok := h.Bar(sym, date); ok {
			out = append(out, b)
		}
	}
	return out
}

// WindowBefore returns up to n sessions strictly before date, oldest
// first. Fewer than n bars means insufficient history; callers decide
// whether that skips the symbol.
func (h *History) WindowBefore(symbol string, date time.Time, n int) []Bar {
	date = Day(date)
	s := h.series(symbol)
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(date) })
	lo := i - n
	if lo < 0 {
		lo = 0
	}
	return s[lo:i]
}

// WindowThrough is WindowBefore but inclusive of the session at date, when
// present. It exists for parity with data pipelines that compute the
// moving average off same-day closes.
func (h *History) WindowThrough(symbol string, date time.Time, n int) []Bar {
	date = Day(date)
	s := h.series(symbol)
	i := sort.Search(len(s), func(i int) bool { return s[i].Date.After(date) })
	lo := i - n
	if lo < 0 {
		lo = 0
	}
	return s[lo:i]
}

// PreviousClose returns the closing price of the last session strictly
// before date.
func (h *History) PreviousClose(symbol string, date time.Time) (float64, bool) {
	w := h.WindowBefore(symbol, date, 1)
	if len(w) == 0 {
		return 0, false
	}
	return w[0].Close, true
}

// Len reports the number of sessions stored for symbol.
func (h *History) Len(symbol string) int {
	return len(h.bars[symbol])
}
