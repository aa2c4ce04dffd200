package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	dataset TEXT NOT NULL,
	initial_capital REAL NOT NULL,
	slippage REAL NOT NULL,
	latency_sec REAL NOT NULL,
	step_duration REAL NOT NULL,
	risk_free REAL NOT NULL,
	final_equity REAL NOT NULL,
	total_return_pct REAL NOT NULL,
	annualized_pct REAL NOT NULL,
	max_drawdown_pct REAL NOT NULL,
	sharpe_ratio REAL NOT NULL,
	sortino_ratio REAL NOT NULL,
	trades INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	side TEXT NOT NULL,
	shares INTEGER NOT NULL,
	price REAL NOT NULL,
	notional REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	equity REAL NOT NULL,
	drawdown_pct REAL NOT NULL,
	step_return REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id);
`
