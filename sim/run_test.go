package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtest/signal"
)

func series(prices []float64, sigs []int) []signal.Record {
	recs := make([]signal.Record, len(prices))
	for i := range prices {
		recs[i] = signal.Record{Timestamp: stamp(i), Price: prices[i], Signal: sigs[i]}
	}
	return recs
}

func stamp(i int) string {
	return string(rune('a' + i))
}

func TestRunBuyThenSell(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{100, 100, 110, 110, 90},
		[]int{0, 1, 1, 0, 0},
	)

	res, err := Run(recs, Params{InitialCapital: 10000})
	require.NoError(t, err)

	require.Len(t, res.Trades, 2)

	buy := res.Trades[0]
	assert.Equal(t, Buy, buy.Side)
	assert.Equal(t, 100, buy.Shares)
	assert.InDelta(t, 100.0, buy.Price, 1e-9)
	assert.Equal(t, stamp(1), buy.Timestamp)

	sell := res.Trades[1]
	assert.Equal(t, Sell, sell.Side)
	assert.Equal(t, 100, sell.Shares)
	assert.InDelta(t, 110.0, sell.Price, 1e-9)

	require.Len(t, res.Equity, 5)
	assert.InDelta(t, 11000.0, res.Equity[4].Equity, 1e-9)
	assert.InDelta(t, 11000.0, res.FinalEquity(10000), 1e-9)
	assert.Equal(t, 0, res.FinalPos)
}

func TestRunEquityInvariant(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{50, 52, 51, 55, 53, 56, 54},
		[]int{0, 1, 1, 0, 1, 1, 0},
	)

	p := Params{InitialCapital: 1000, Slippage: 0.001}
	res, err := Run(recs, p)
	require.NoError(t, err)

	// Replay the accounting from the trade log and check
	// equity = cash + position*price at every step.
	cash := p.InitialCapital
	position := 0
	ti := 0
	for i, rec := range recs {
		for ti < len(res.Trades) && res.Trades[ti].Timestamp == rec.Timestamp {
			tr := res.Trades[ti]
			if tr.Side == Buy {
				cash -= tr.Notional
				position += tr.Shares
			} else {
				cash += tr.Notional
				position -= tr.Shares
			}
			ti++
		}
		assert.GreaterOrEqual(t, position, 0)
		assert.GreaterOrEqual(t, cash, 0.0)
		assert.InDelta(t, cash+float64(position)*rec.Price, res.Equity[i].Equity, 1e-9)
	}
	assert.Equal(t, len(res.Trades), ti)
}

func TestRunTradesAlternate(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{10, 11, 10, 12, 11, 13, 12, 14},
		[]int{0, 1, 0, 1, 0, 1, 0, 1},
	)

	res, err := Run(recs, Params{InitialCapital: 500})
	require.NoError(t, err)
	require.NotEmpty(t, res.Trades)

	assert.Equal(t, Buy, res.Trades[0].Side)
	for i := 1; i < len(res.Trades); i++ {
		assert.NotEqual(t, res.Trades[i-1].Side, res.Trades[i].Side,
			"consecutive trades must alternate")
	}
}

func TestRunDrawdownBounds(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{100, 120, 80, 140, 60, 150},
		[]int{1, 1, 1, 1, 1, 1},
	)

	res, err := Run(recs, Params{InitialCapital: 10000})
	require.NoError(t, err)

	hwm := 0.0
	for i, e := range res.Equity {
		if e.Equity > hwm {
			hwm = e.Equity
		}
		dd := res.Drawdowns[i]
		assert.GreaterOrEqual(t, dd, 0.0)
		assert.LessOrEqual(t, dd, 100.0)
		assert.InDelta(t, (hwm-e.Equity)/hwm*100, dd, 1e-9)
	}
}

func TestRunIdempotent(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{100, 101, 99, 103, 98, 105},
		[]int{0, 1, 1, 0, 1, 0},
	)
	p := Params{InitialCapital: 2500, Slippage: 0.0005, LatencySec: 0.2}

	a, err := Run(recs, p)
	require.NoError(t, err)
	b, err := Run(recs, p)
	require.NoError(t, err)

	assert.Equal(t, a.Trades, b.Trades)
	assert.Equal(t, a.Equity, b.Equity)
	assert.Equal(t, a.Drawdowns, b.Drawdowns)
	assert.Equal(t, a.Returns, b.Returns)
}

func TestRunInsufficientCash(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{100, 100, 100, 100},
		[]int{0, 1, 1, 1},
	)

	res, err := Run(recs, Params{InitialCapital: 50})
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	assert.Equal(t, 0, res.FinalPos)
	for _, e := range res.Equity {
		assert.InDelta(t, 50.0, e.Equity, 1e-9)
	}
}

func TestRunFailedBuyConsumesSignal(t *testing.T) {
	t.Parallel()

	// The buy at index 1 cannot afford one share. The signal stays 1 through
	// index 3 where the price has dropped below the cash balance; no buy may
	// fire there because the failed buy already consumed the signal.
	recs := series(
		[]float64{100, 100, 100, 40},
		[]int{0, 1, 1, 1},
	)

	res, err := Run(recs, Params{InitialCapital: 50})
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	assert.Equal(t, 0, res.FinalPos)
}

func TestRunRisingPricesNoDrawdown(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{100, 101, 102, 103, 104, 105},
		[]int{1, 1, 1, 1, 1, 1},
	)

	res, err := Run(recs, Params{InitialCapital: 10000})
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	assert.Equal(t, Buy, res.Trades[0].Side)
	for _, dd := range res.Drawdowns {
		assert.Zero(t, dd)
	}
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()

	res, err := Run(nil, Params{InitialCapital: 10000})
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	assert.Empty(t, res.Equity)
	assert.Empty(t, res.Drawdowns)
	assert.Empty(t, res.Returns)
	assert.InDelta(t, 10000.0, res.FinalEquity(10000), 1e-9)
}

func TestRunSlippage(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{100, 100, 100},
		[]int{0, 1, 0},
	)

	res, err := Run(recs, Params{InitialCapital: 10000, Slippage: 0.01})
	require.NoError(t, err)

	require.Len(t, res.Trades, 2)
	assert.InDelta(t, 101.0, res.Trades[0].Price, 1e-9, "buys pay price*(1+s)")
	assert.InDelta(t, 99.0, res.Trades[1].Price, 1e-9, "sells receive price*(1-s)")
}

func TestRunLatencyOffset(t *testing.T) {
	t.Parallel()

	// 0.2s latency over 0.1s steps reads the price two records ahead.
	recs := series(
		[]float64{100, 100, 105, 110, 110},
		[]int{0, 1, 1, 1, 1},
	)

	res, err := Run(recs, Params{InitialCapital: 10000, LatencySec: 0.2})
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	assert.InDelta(t, 110.0, res.Trades[0].Price, 1e-9)
	// Equity still marks to the record's own price, not the delayed fill.
	assert.InDelta(t, 10000-90*110+90*100, res.Equity[1].Equity, 1e-9)
}

func TestRunLatencyClampedToLastRecord(t *testing.T) {
	t.Parallel()

	recs := series(
		[]float64{100, 100, 120},
		[]int{0, 1, 1},
	)

	// Offset far beyond the series end clamps to the last price.
	res, err := Run(recs, Params{InitialCapital: 10000, LatencySec: 10})
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	assert.InDelta(t, 120.0, res.Trades[0].Price, 1e-9)
}

func TestRunReturnBaseline(t *testing.T) {
	t.Parallel()

	// The first return compares against the initial capital, so a flat
	// first step yields exactly zero.
	recs := series(
		[]float64{100, 100},
		[]int{0, 0},
	)

	res, err := Run(recs, Params{InitialCapital: 10000})
	require.NoError(t, err)

	require.Len(t, res.Returns, 2)
	assert.Zero(t, res.Returns[0])
	assert.Zero(t, res.Returns[1])
}

func TestRunInvalidParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    Params
	}{
		{"zero capital", Params{}},
		{"negative capital", Params{InitialCapital: -1}},
		{"negative slippage", Params{InitialCapital: 100, Slippage: -0.1}},
		{"negative latency", Params{InitialCapital: 100, LatencySec: -1}},
		{"negative step", Params{InitialCapital: 100, StepDuration: -0.1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Run(nil, tt.p)
			assert.Error(t, err)
		})
	}
}
