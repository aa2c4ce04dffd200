package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rustyeddy/backtest/cmd/backtester/cmd"
)

func main() {
	// Optional .env for BACKTEST_* defaults; a missing file is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
