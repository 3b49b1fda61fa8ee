package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, start_date, end_date, initial_capital, final_capital)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Start, r.End, r.InitialCapital, r.FinalCapital,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, trade_id, date, symbol, action, price, quantity, realized_pl, hold_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.TradeID, t.Date, t.Symbol, t.Action,
		t.Price, t.Quantity, t.RealizedPL, t.HoldTime.Seconds(),
	)
	return err
}

// GetRun returns a single run summary by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	var r Run

	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, start_date, end_date, initial_capital, final_capital
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(&r.RunID, &r.Created, &r.Strategy, &r.Start, &r.End,
		&r.InitialCapital, &r.FinalCapital)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListTradesByRun returns a run's ledger in insertion (trade_id) order.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, trade_id, date, symbol, action, price, quantity, realized_pl, hold_seconds
		FROM trades
		WHERE run_id = ?
		ORDER BY trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	return scanTrades(rows)
}

// ListTradesBetween returns trades dated within [start, end).
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, trade_id, date, symbol, action, price, quantity, realized_pl, hold_seconds
		FROM trades
		WHERE date >= ? AND date < ?
		ORDER BY date ASC, trade_id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return scanTrades(rows)
}

func scanTrades(rows *sql.Rows) ([]TradeRecord, error) {
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		var holdSecs float64
		if err := rows.Scan(
			&rec.RunID,
			&rec.TradeID,
			&rec.Date,
			&rec.Symbol,
			&rec.Action,
			&rec.Price,
			&rec.Quantity,
			&rec.RealizedPL,
			&holdSecs,
		); err != nil {
			return nil, err
		}
		rec.HoldTime = time.Duration(holdSecs * float64(time.Second))
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
