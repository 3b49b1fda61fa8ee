package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads daily bars from a CSV file with columns
// symbol,date,open,high,low,close,volume. A header row starting with
// "symbol" is skipped. Dates are YYYY-MM-DD.
func LoadCSV(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses bars from r into a History. See LoadCSV for the format.
func ReadCSV(r io.Reader) (*History, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	h := NewHistory()
	line := 0

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return h, nil
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(row) == 0 {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "symbol") {
			continue
		}

		b, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		h.Add(b)
	}
}

func parseRow(row []string) (Bar, error) {
	if len(row) < 6 {
		return Bar{}, fmt.Errorf("bad row (need symbol,date,open,high,low,close[,volume]): %v", row)
	}

	sym := strings.TrimSpace(row[0])
	if sym == "" {
		return Bar{}, fmt.Errorf("empty symbol")
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(row[1]))
	if err != nil {
		return Bar{}, fmt.Errorf("bad date %q: %w", row[1], err)
	}

	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[2+i]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad price %q: %w", row[2+i], err)
		}
		vals[i] = v
	}

	var vol float64
	if len(row) > 6 {
		vol, err = strconv.ParseFloat(strings.TrimSpace(row[6]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad volume %q: %w", row[6], err)
		}
	}

	return Bar{
		Symbol: sym,
		Date:   date,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vol,
	}, nil
}
