// Package sim simulates execution of a long/flat trading signal against its
// price series. A run is a pure sequential fold over the input: it owns all
// of its state for the duration of the call and returns fresh output slices,
// so independent runs are safe to execute concurrently.
package sim

import (
	"github.com/rustyeddy/backtest/signal"
)

// Side: BUY opens the long position, SELL flattens it.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Trade is one executed transition of the signal.
type Trade struct {
	Timestamp string
	Side      Side
	Shares    int
	Price     float64 // effective fill price after latency and slippage
	Notional  float64 // Shares * Price
}

// EquityPoint is the mark-to-market portfolio value at one record.
type EquityPoint struct {
	Timestamp string
	Equity    float64
}

// Result holds everything one simulation run produced. Equity, Drawdowns and
// Returns have the same length and order as the input series; Trades has one
// entry per executed transition.
type Result struct {
	Trades    []Trade
	Equity    []EquityPoint
	Drawdowns []float64 // percent decline from the high-water mark, [0,100]
	Returns   []float64 // per-step fractional equity change
	FinalCash float64
	FinalPos  int
}

// FinalEquity returns the last equity value, or the initial capital when the
// run saw no records.
func (r *Result) FinalEquity(initialCapital float64) float64 {
	if len(r.Equity) == 0 {
		return initialCapital
	}
	return r.Equity[len(r.Equity)-1].Equity
}

// Run executes the signal series under p and returns the full trade log and
// equity path. An empty series is not an error: the result is simply empty.
//
// Execution policy, per record in order:
//   - a transition fires only when the record's signal differs from the last
//     seen signal
//   - the fill price is read latencySteps records ahead (clamped to the last
//     record), then adjusted for slippage against the trader
//   - buys size via p.Sizer from the cash balance; a buy that cannot afford
//     one share executes nothing but still consumes the signal, so the same
//     failed buy is not re-attempted until the signal changes again
//   - sells always flatten the whole position
//
// Equity is marked to the record's own unadjusted price.
func Run(signals []signal.Record, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Equity:    make([]EquityPoint, 0, len(signals)),
		Drawdowns: make([]float64, 0, len(signals)),
		Returns:   make([]float64, 0, len(signals)),
	}

	cash := p.InitialCapital
	position := 0
	lastSignal := 0

	prevEquity := p.InitialCapital
	highWater := p.InitialCapital

	steps := p.latencySteps()
	sizer := p.sizer()

	for i, rec := range signals {
		if rec.Signal != lastSignal {
			price := fillPrice(signals, i, steps)

			switch {
			case rec.Signal == 1 && position == 0:
				price *= 1 + p.Slippage
				shares := sizer.Shares(cash, price)
				if shares > 0 {
					position = shares
					cash -= float64(shares) * price
					res.Trades = append(res.Trades, Trade{
						Timestamp: rec.Timestamp,
						Side:      Buy,
						Shares:    shares,
						Price:     price,
						Notional:  float64(shares) * price,
					})
				}

			case rec.Signal == 0 && position > 0:
				price *= 1 - p.Slippage
				proceeds := float64(position) * price
				res.Trades = append(res.Trades, Trade{
					Timestamp: rec.Timestamp,
					Side:      Sell,
					Shares:    position,
					Price:     price,
					Notional:  proceeds,
				})
				cash += proceeds
				position = 0
			}

			// The signal is consumed even when no trade executed.
			lastSignal = rec.Signal
		}

		equity := cash + float64(position)*rec.Price
		res.Equity = append(res.Equity, EquityPoint{Timestamp: rec.Timestamp, Equity: equity})

		if equity > highWater {
			highWater = equity
		}
		res.Drawdowns = append(res.Drawdowns, (highWater-equity)/highWater*100)

		res.Returns = append(res.Returns, equity/prevEquity-1)
		prevEquity = equity
	}

	res.FinalCash = cash
	res.FinalPos = position
	return res, nil
}

// fillPrice looks up the execution base price with the latency offset
// applied, clamped to the last record.
func fillPrice(signals []signal.Record, i, steps int) float64 {
	idx := i + steps
	if idx > len(signals)-1 {
		idx = len(signals) - 1
	}
	return signals[idx].Price
}
