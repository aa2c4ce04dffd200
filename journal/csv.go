package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes runs, trades and equity rows to three CSV files.
type CSVJournal struct {
	runs       *csv.Writer
	trades     *csv.Writer
	equity     *csv.Writer
	rf, tf, ef *os.File
}

func NewCSV(runsPath, tradesPath, equityPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		return nil, err
	}

	rw := csv.NewWriter(rf)
	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := rw.Write([]string{"run_id", "created", "dataset", "initial_capital", "slippage", "latency_sec", "step_duration", "risk_free", "final_equity", "total_return_pct", "annualized_pct", "max_drawdown_pct", "sharpe_ratio", "sortino_ratio", "trades"}); err != nil {
		return nil, err
	}
	if err := tw.Write([]string{"run_id", "timestamp", "side", "shares", "price", "notional"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "timestamp", "equity", "drawdown_pct", "step_return"}); err != nil {
		return nil, err
	}

	for _, w := range []*csv.Writer{rw, tw, ew} {
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CSVJournal{rw, tw, ew, rf, tf, ef}, nil
}

func (j *CSVJournal) RecordRun(r Run) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Dataset,
		f(r.InitialCapital),
		f(r.Slippage),
		f(r.LatencySec),
		f(r.StepDuration),
		f(r.RiskFree),
		f(r.FinalEquity),
		f(r.TotalReturnPct),
		f(r.AnnualizedPct),
		f(r.MaxDrawdownPct),
		f(r.SharpeRatio),
		f(r.SortinoRatio),
		strconv.Itoa(r.Trades),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordTrade(t TradeRow) error {
	err := j.trades.Write([]string{
		t.RunID,
		t.Timestamp,
		t.Side,
		strconv.Itoa(t.Shares),
		f(t.Price),
		f(t.Notional),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquityRow) error {
	err := j.equity.Write([]string{
		e.RunID,
		e.Timestamp,
		f(e.Equity),
		f(e.DrawdownPct),
		f(e.Return),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.runs, j.trades, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, file := range []*os.File{j.rf, j.tf, j.ef} {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
