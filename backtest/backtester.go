// Package backtest is the host-facing facade: load a signal file, run the
// simulation, read or print the results. All failure states surface as error
// returns or logged no-ops; nothing panics across this boundary.
package backtest

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/backtest/perf"
	"github.com/rustyeddy/backtest/signal"
	"github.com/rustyeddy/backtest/sim"
)

// Backtester wires the signal loader, the simulation engine and the
// performance analyzer behind one small surface. Each Run produces a fresh
// sim.Result; the Backtester itself holds no accounting state between runs.
type Backtester struct {
	params   sim.Params
	riskFree float64
	log      zerolog.Logger

	signals []signal.Record
	result  *sim.Result
	stats   perf.Stats
}

// Option configures a Backtester.
type Option func(*Backtester)

// WithCapital sets the initial capital (default 10000).
func WithCapital(c float64) Option {
	return func(b *Backtester) { b.params.InitialCapital = c }
}

// WithSlippage sets the proportional slippage (default 0.0005).
func WithSlippage(s float64) Option {
	return func(b *Backtester) { b.params.Slippage = s }
}

// WithLatency sets the modeled fill latency in seconds (default 0).
func WithLatency(l float64) Option {
	return func(b *Backtester) { b.params.LatencySec = l }
}

// WithStepDuration sets the modeled seconds per record (default 0.1).
func WithStepDuration(d float64) Option {
	return func(b *Backtester) { b.params.StepDuration = d }
}

// WithSizer sets the position-sizing policy (default sim.AllInCash).
func WithSizer(s sim.Sizer) Option {
	return func(b *Backtester) { b.params.Sizer = s }
}

// WithRiskFree sets the annual risk-free rate used by the Sharpe and Sortino
// ratios (default 0).
func WithRiskFree(r float64) Option {
	return func(b *Backtester) { b.riskFree = r }
}

// WithLogger sets the diagnostics logger (default stderr).
func WithLogger(lg zerolog.Logger) Option {
	return func(b *Backtester) { b.log = lg }
}

// New returns a Backtester with the default parameters: capital 10000,
// slippage 0.0005, no latency.
func New(opts ...Option) *Backtester {
	b := &Backtester{
		params: sim.Params{
			InitialCapital: 10000,
			Slippage:       0.0005,
		},
		log: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Params returns the simulation parameters in effect.
func (b *Backtester) Params() sim.Params { return b.params }

// Load reads the signal CSV at path, replacing any previously loaded series
// and clearing prior results.
func (b *Backtester) Load(path string) error {
	loader := signal.NewCSVLoader(b.log)
	recs, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	b.signals = recs
	b.result = nil
	b.stats = perf.Stats{}
	return nil
}

// LoadFrom reads signal CSV rows from r. See Load.
func (b *Backtester) LoadFrom(r io.Reader) error {
	loader := signal.NewCSVLoader(b.log)
	recs, err := loader.Load(r)
	if err != nil {
		return err
	}

	b.signals = recs
	b.result = nil
	b.stats = perf.Stats{}
	return nil
}

// Signals returns the loaded series.
func (b *Backtester) Signals() []signal.Record { return b.signals }

// Run simulates the loaded series and computes its statistics. Running with
// no signals loaded is a logged no-op, not an error: results stay empty.
func (b *Backtester) Run() error {
	if len(b.signals) == 0 {
		b.log.Warn().Msg("run: no signals loaded, nothing to do")
		b.result = &sim.Result{}
		b.stats = perf.Stats{}
		return nil
	}

	res, err := sim.Run(b.signals, b.params)
	if err != nil {
		return fmt.Errorf("run backtest: %w", err)
	}
	b.result = res

	equity := make([]float64, len(res.Equity))
	for i, e := range res.Equity {
		equity[i] = e.Equity
	}
	b.stats = perf.Analyze(equity, res.Returns, b.params.InitialCapital, b.riskFree, len(res.Trades))
	return nil
}

// Result returns the raw simulation output of the last Run, or nil before
// any run.
func (b *Backtester) Result() *sim.Result { return b.result }

// Results returns the summary statistics of the last Run. All-zero before
// any run or after an empty one.
func (b *Backtester) Results() perf.Stats { return b.stats }

// sampleTrades is how many trades PrintResults shows.
const sampleTrades = 5

// PrintResults writes a formatted report of the last run to w.
func (b *Backtester) PrintResults(w io.Writer) {
	s := b.stats

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Results")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Initial Capital:   $%.2f\n", b.params.InitialCapital)
	fmt.Fprintf(w, "Final Equity:      $%.2f\n", s.FinalEquity)
	fmt.Fprintf(w, "Total Return:      %.2f%%\n", s.TotalReturnPct)
	fmt.Fprintf(w, "Annualized Return: %.2f%%\n", s.AnnualizedPct)
	fmt.Fprintf(w, "Max Drawdown:      %.2f%%\n", s.MaxDrawdownPct)
	fmt.Fprintf(w, "Sharpe Ratio:      %.2f\n", s.SharpeRatio)
	fmt.Fprintf(w, "Sortino Ratio:     %.2f\n", s.SortinoRatio)
	fmt.Fprintf(w, "Total Trades:      %d\n", s.TradeCount)

	if b.result == nil || len(b.result.Trades) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sample Trades")
	fmt.Fprintln(w, "--------------------------------------------------")
	n := len(b.result.Trades)
	if n > sampleTrades {
		n = sampleTrades
	}
	for _, t := range b.result.Trades[:n] {
		fmt.Fprintf(w, "%s: %s %d shares @ $%.2f = $%.2f\n",
			t.Timestamp, t.Side, t.Shares, t.Price, t.Notional)
	}
}
