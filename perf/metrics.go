// Package perf reduces a simulation's equity path and return series into
// summary statistics. Every function tolerates degenerate input (empty
// series, zero variance, no losing steps) by returning 0 rather than NaN.
package perf

import "math"

// TradingDays is the annualization basis for returns and ratios.
const TradingDays = 252

// Stats summarizes one backtest run.
type Stats struct {
	FinalEquity    float64
	TotalReturnPct float64
	AnnualizedPct  float64
	MaxDrawdownPct float64
	SharpeRatio    float64
	SortinoRatio   float64
	TradeCount     int
}

// TotalReturn is the percentage gain of the final equity over the initial
// capital.
func TotalReturn(equity []float64, initialCapital float64) float64 {
	if len(equity) == 0 || initialCapital == 0 {
		return 0
	}
	return (equity[len(equity)-1]/initialCapital - 1) * 100
}

// MaxDrawdown is the largest percentage decline from a running peak,
// recomputed from the raw equity values. It agrees with the engine's
// per-step drawdown series by construction.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}

	maxDD := 0.0
	peak := equity[0]
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}
		dd := (peak - v) / peak * 100
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// SharpeRatio is the annualized mean excess return over the population
// standard deviation of the return series. riskFree is an annual rate.
func SharpeRatio(returns []float64, riskFree float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	mean := mean(returns)
	stdDev := stdDevPop(returns, mean)
	if stdDev == 0 {
		return 0
	}

	return (mean - riskFree/TradingDays) / stdDev * math.Sqrt(TradingDays)
}

// SortinoRatio is SharpeRatio with the denominator replaced by the downside
// deviation: the population standard deviation of only the negative returns.
func SortinoRatio(returns []float64, riskFree float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	var sumSq float64
	downside := 0
	for _, r := range returns {
		if r < 0 {
			sumSq += r * r
			downside++
		}
	}
	if downside == 0 {
		return 0
	}
	dd := math.Sqrt(sumSq / float64(downside))

	return (mean(returns) - riskFree/TradingDays) / dd * math.Sqrt(TradingDays)
}

// AnnualizedReturn compounds the total return over the run's length in
// trading years (steps/252).
func AnnualizedReturn(totalReturnPct float64, steps int) float64 {
	years := float64(steps) / TradingDays
	if years <= 0 {
		return 0
	}
	return (math.Pow(1+totalReturnPct/100, 1/years) - 1) * 100
}

// Analyze computes the full Stats for one run. riskFree is the annual
// risk-free rate (0.02 = 2%).
func Analyze(equity, returns []float64, initialCapital, riskFree float64, tradeCount int) Stats {
	s := Stats{TradeCount: tradeCount}

	if len(equity) == 0 || len(returns) == 0 {
		return s
	}

	s.FinalEquity = equity[len(equity)-1]
	s.TotalReturnPct = TotalReturn(equity, initialCapital)
	s.MaxDrawdownPct = MaxDrawdown(equity)
	s.SharpeRatio = SharpeRatio(returns, riskFree)
	s.SortinoRatio = SortinoRatio(returns, riskFree)
	s.AnnualizedPct = AnnualizedReturn(s.TotalReturnPct, len(returns))
	return s
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdDevPop(xs []float64, mean float64) float64 {
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}
