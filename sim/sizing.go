package sim

// Sizer picks the number of shares a buy acquires given the cash on hand and
// the effective (slippage-adjusted) fill price. Shares truncate toward zero,
// never round up, so the cash balance can never go negative.
type Sizer interface {
	Shares(cash, price float64) int
}

// AllInCash spends the whole cash balance on every buy.
type AllInCash struct{}

func (AllInCash) Shares(cash, price float64) int {
	if price <= 0 {
		return 0
	}
	return int(cash / price)
}

// FixedNotional targets a fixed dollar amount per buy, capped at the cash on
// hand.
type FixedNotional struct {
	Notional float64
}

func (s FixedNotional) Shares(cash, price float64) int {
	if price <= 0 {
		return 0
	}
	target := s.Notional
	if target > cash {
		target = cash
	}
	if target <= 0 {
		return 0
	}
	return int(target / price)
}
