// Package journal persists backtest runs: one summary row per run plus the
// full trade log and equity path, to CSV files or a SQLite database.
package journal

import (
	"time"

	"github.com/rustyeddy/backtest/internal/id"
	"github.com/rustyeddy/backtest/perf"
	"github.com/rustyeddy/backtest/sim"
)

// Run mirrors the runs table: the parameters a backtest ran with and the
// statistics it produced.
type Run struct {
	RunID   string
	Created time.Time
	Dataset string

	InitialCapital float64
	Slippage       float64
	LatencySec     float64
	StepDuration   float64
	RiskFree       float64

	FinalEquity    float64
	TotalReturnPct float64
	AnnualizedPct  float64
	MaxDrawdownPct float64
	SharpeRatio    float64
	SortinoRatio   float64
	Trades         int
}

// TradeRow is one executed trade within a run. Timestamp is the opaque token
// from the signal file, stored as text.
type TradeRow struct {
	RunID     string
	Timestamp string
	Side      string
	Shares    int
	Price     float64
	Notional  float64
}

// EquityRow is one step of a run's equity path.
type EquityRow struct {
	RunID       string
	Timestamp   string
	Equity      float64
	DrawdownPct float64
	Return      float64
}

type Journal interface {
	RecordRun(Run) error
	RecordTrade(TradeRow) error
	RecordEquity(EquityRow) error
	Close() error
}

// NewRun builds a Run row with a fresh ULID from a finished backtest.
func NewRun(dataset string, p sim.Params, riskFree float64, s perf.Stats) Run {
	return Run{
		RunID:          id.New(),
		Created:        time.Now().UTC(),
		Dataset:        dataset,
		InitialCapital: p.InitialCapital,
		Slippage:       p.Slippage,
		LatencySec:     p.LatencySec,
		StepDuration:   p.StepDuration,
		RiskFree:       riskFree,
		FinalEquity:    s.FinalEquity,
		TotalReturnPct: s.TotalReturnPct,
		AnnualizedPct:  s.AnnualizedPct,
		MaxDrawdownPct: s.MaxDrawdownPct,
		SharpeRatio:    s.SharpeRatio,
		SortinoRatio:   s.SortinoRatio,
		Trades:         s.TradeCount,
	}
}

// Record writes a run summary and its full trade log and equity path to j.
func Record(j Journal, run Run, res *sim.Result) error {
	if err := j.RecordRun(run); err != nil {
		return err
	}
	for _, t := range res.Trades {
		err := j.RecordTrade(TradeRow{
			RunID:     run.RunID,
			Timestamp: t.Timestamp,
			Side:      string(t.Side),
			Shares:    t.Shares,
			Price:     t.Price,
			Notional:  t.Notional,
		})
		if err != nil {
			return err
		}
	}
	for i, e := range res.Equity {
		err := j.RecordEquity(EquityRow{
			RunID:       run.RunID,
			Timestamp:   e.Timestamp,
			Equity:      e.Equity,
			DrawdownPct: res.Drawdowns[i],
			Return:      res.Returns[i],
		})
		if err != nil {
			return err
		}
	}
	return nil
}
