package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Simulate long/flat trading signals against historical prices",
	Long: `Backtester replays a time-ordered signal file (timestamp,price,signal)
through an all-in/all-out execution simulation and reports performance
statistics for the resulting equity path.

It provides tools for:
  - Simulating signal execution with slippage and fill latency
  - Computing return, drawdown, Sharpe and Sortino statistics
  - Journaling runs, trades and equity curves to CSV or SQLite
  - Reviewing past runs from the journal`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// logger returns the CLI diagnostics logger.
func logger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// envOr returns the value of the environment variable key, or fallback when
// unset. Used for flag defaults so a .env can carry site settings.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
