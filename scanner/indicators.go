package scanner

import "fmt"

// MovingAverage is the trailing mean of the closing prices over the most
// recent window observations.
func MovingAverage(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("window must be positive, got %d", window)
	}
	if len(closes) < window {
		return 0, fmt.Errorf("not enough sessions: need %d, got %d", window, len(closes))
	}

	sum := 0.0
	for i := len(closes) - window; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(window), nil
}

// GapPercent is the percentage move of the open against the previous
// session's close.
func GapPercent(open, previousClose float64) float64 {
	return (open - previousClose) / previousClose * 100
}
