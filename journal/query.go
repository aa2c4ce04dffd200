package journal

import "fmt"

// ListRuns returns all journaled runs, newest first.
func (j *SQLiteJournal) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, dataset, initial_capital, slippage,
		       latency_sec, step_duration, risk_free, final_equity,
		       total_return_pct, annualized_pct, max_drawdown_pct,
		       sharpe_ratio, sortino_ratio, trades
		FROM runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		err := rows.Scan(&r.RunID, &r.Created, &r.Dataset, &r.InitialCapital,
			&r.Slippage, &r.LatencySec, &r.StepDuration, &r.RiskFree,
			&r.FinalEquity, &r.TotalReturnPct, &r.AnnualizedPct,
			&r.MaxDrawdownPct, &r.SharpeRatio, &r.SortinoRatio, &r.Trades)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by ID.
func (j *SQLiteJournal) GetRun(runID string) (Run, error) {
	var r Run
	err := j.db.QueryRow(`
		SELECT run_id, created, dataset, initial_capital, slippage,
		       latency_sec, step_duration, risk_free, final_equity,
		       total_return_pct, annualized_pct, max_drawdown_pct,
		       sharpe_ratio, sortino_ratio, trades
		FROM runs WHERE run_id = ?`, runID).
		Scan(&r.RunID, &r.Created, &r.Dataset, &r.InitialCapital,
			&r.Slippage, &r.LatencySec, &r.StepDuration, &r.RiskFree,
			&r.FinalEquity, &r.TotalReturnPct, &r.AnnualizedPct,
			&r.MaxDrawdownPct, &r.SharpeRatio, &r.SortinoRatio, &r.Trades)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return r, nil
}

// ListTrades returns a run's trade log in execution order.
func (j *SQLiteJournal) ListTrades(runID string) ([]TradeRow, error) {
	rows, err := j.db.Query(`
		SELECT run_id, timestamp, side, shares, price, notional
		FROM trades WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []TradeRow
	for rows.Next() {
		var t TradeRow
		err := rows.Scan(&t.RunID, &t.Timestamp, &t.Side, &t.Shares, &t.Price, &t.Notional)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// ListEquity returns a run's equity path in step order.
func (j *SQLiteJournal) ListEquity(runID string) ([]EquityRow, error) {
	rows, err := j.db.Query(`
		SELECT run_id, timestamp, equity, drawdown_pct, step_return
		FROM equity WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eq []EquityRow
	for rows.Next() {
		var e EquityRow
		err := rows.Scan(&e.RunID, &e.Timestamp, &e.Equity, &e.DrawdownPct, &e.Return)
		if err != nil {
			return nil, err
		}
		eq = append(eq, e)
	}
	return eq, rows.Err()
}
