package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, dataset, initial_capital, slippage, latency_sec,
		 step_duration, risk_free, final_equity, total_return_pct,
		 annualized_pct, max_drawdown_pct, sharpe_ratio, sortino_ratio, trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Dataset, r.InitialCapital, r.Slippage,
		r.LatencySec, r.StepDuration, r.RiskFree, r.FinalEquity,
		r.TotalReturnPct, r.AnnualizedPct, r.MaxDrawdownPct,
		r.SharpeRatio, r.SortinoRatio, r.Trades,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(t TradeRow) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, timestamp, side, shares, price, notional)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Timestamp, t.Side, t.Shares, t.Price, t.Notional,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquityRow) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, timestamp, equity, drawdown_pct, step_return)
		VALUES (?, ?, ?, ?, ?)`,
		e.RunID, e.Timestamp, e.Equity, e.DrawdownPct, e.Return,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
