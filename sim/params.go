package sim

import "fmt"

// DefaultStepDuration is the modeled spacing between consecutive signal
// records, in seconds. The latency model converts a latency duration into a
// whole number of record steps with it. Timestamps on the records themselves
// are opaque and never consulted.
const DefaultStepDuration = 0.1

// Params configures a single simulation run.
type Params struct {
	// InitialCapital is the starting cash balance. Must be positive.
	InitialCapital float64

	// Slippage is the proportional fill penalty: buys pay
	// price*(1+Slippage), sells receive price*(1-Slippage).
	Slippage float64

	// LatencySec models order-fill delay. Execution price is read
	// floor(LatencySec/StepDuration) records ahead of the signal, clamped
	// to the last record.
	LatencySec float64

	// StepDuration is the modeled seconds per record. Zero means
	// DefaultStepDuration.
	StepDuration float64

	// Sizer decides how many shares a buy acquires. Nil means AllInCash.
	Sizer Sizer
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	if p.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %v", p.InitialCapital)
	}
	if p.Slippage < 0 {
		return fmt.Errorf("slippage must be non-negative, got %v", p.Slippage)
	}
	if p.LatencySec < 0 {
		return fmt.Errorf("latency must be non-negative, got %v", p.LatencySec)
	}
	if p.StepDuration < 0 {
		return fmt.Errorf("step duration must be non-negative, got %v", p.StepDuration)
	}
	return nil
}

func (p Params) stepDuration() float64 {
	if p.StepDuration > 0 {
		return p.StepDuration
	}
	return DefaultStepDuration
}

func (p Params) sizer() Sizer {
	if p.Sizer != nil {
		return p.Sizer
	}
	return AllInCash{}
}

// latencySteps converts the latency duration into a record offset.
func (p Params) latencySteps() int {
	if p.LatencySec <= 0 {
		return 0
	}
	return int(p.LatencySec / p.stepDuration())
}
