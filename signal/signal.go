// Package signal holds the input data model for a backtest: a time-ordered
// series of (price, desired-position) observations.
package signal

// Record is a single observation from a signal file.
//
// Timestamp is an opaque ordering token. It is carried through to trades and
// equity rows untouched; nothing in this module parses it as a wall-clock
// time or validates its spacing.
type Record struct {
	Timestamp string
	Price     float64
	Signal    int // 0 = flat, 1 = long
}