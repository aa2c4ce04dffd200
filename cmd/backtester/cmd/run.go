package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtest/backtest"
	"github.com/rustyeddy/backtest/config"
	"github.com/rustyeddy/backtest/journal"
	"github.com/rustyeddy/backtest/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest over a signal CSV file",
	Long: `Run loads a signal CSV (timestamp,price,signal), simulates execution and
prints the performance report.

Example:
  backtester run -f data/signals.csv --capital 10000 --slippage 0.0005
  backtester run -f data/signals.csv --db ./backtests.sqlite`,
	RunE: runRun,
}

var (
	runSignalsPath string
	runConfigPath  string
	runDBPath      string
	runCapital     float64
	runSlippage    float64
	runLatency     float64
	runStep        float64
	runRiskFree    float64
	runSizing      string
	runNotional    float64
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runSignalsPath, "file", "f", "", "path to signal CSV (timestamp,price,signal) (required)")
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML/JSON config file")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", envOr("BACKTEST_DB", ""), "journal this run to a SQLite DB at path")

	runCmd.Flags().Float64Var(&runCapital, "capital", 10_000, "initial capital")
	runCmd.Flags().Float64Var(&runSlippage, "slippage", 0.0005, "proportional slippage (0.0005 = 0.05%)")
	runCmd.Flags().Float64Var(&runLatency, "latency", 0, "fill latency in seconds")
	runCmd.Flags().Float64Var(&runStep, "step", sim.DefaultStepDuration, "modeled seconds per record for the latency offset")
	runCmd.Flags().Float64Var(&runRiskFree, "risk-free", 0, "annual risk-free rate for Sharpe/Sortino (0.02 = 2%)")
	runCmd.Flags().StringVar(&runSizing, "sizing", "all-in", "position sizing: all-in or fixed-notional")
	runCmd.Flags().Float64Var(&runNotional, "notional", 10_000, "target notional per buy for fixed-notional sizing")

	runCmd.MarkFlagRequired("file")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	p := cfg.SimParams()

	bt := backtest.New(
		backtest.WithCapital(p.InitialCapital),
		backtest.WithSlippage(p.Slippage),
		backtest.WithLatency(p.LatencySec),
		backtest.WithStepDuration(p.StepDuration),
		backtest.WithSizer(p.Sizer),
		backtest.WithRiskFree(cfg.Backtest.RiskFree),
		backtest.WithLogger(logger()),
	)

	if err := bt.Load(runSignalsPath); err != nil {
		return err
	}
	if err := bt.Run(); err != nil {
		return err
	}

	bt.PrintResults(os.Stdout)

	if cfg.Journal.Type != "" && cfg.Journal.Type != "none" {
		if err := journalRun(cfg, bt); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
	}

	return nil
}

// loadRunConfig merges the optional config file with command-line flags.
// Flags that were set explicitly win over file values.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flagSet := func(name string) bool { return cmd.Flags().Changed(name) }

	if runConfigPath == "" || flagSet("capital") {
		cfg.Backtest.InitialCapital = runCapital
	}
	if runConfigPath == "" || flagSet("slippage") {
		cfg.Backtest.Slippage = runSlippage
	}
	if runConfigPath == "" || flagSet("latency") {
		cfg.Backtest.LatencySec = runLatency
	}
	if runConfigPath == "" || flagSet("step") {
		cfg.Backtest.StepDuration = runStep
	}
	if runConfigPath == "" || flagSet("risk-free") {
		cfg.Backtest.RiskFree = runRiskFree
	}
	if runConfigPath == "" || flagSet("sizing") {
		cfg.Backtest.Sizing = runSizing
	}
	if runConfigPath == "" || flagSet("notional") {
		cfg.Backtest.Notional = runNotional
	}
	if runDBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = runDBPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func journalRun(cfg *config.Config, bt *backtest.Backtester) error {
	var j journal.Journal
	var err error

	switch cfg.Journal.Type {
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.RunsFile, cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	defer j.Close()

	run := journal.NewRun(runSignalsPath, bt.Params(), cfg.Backtest.RiskFree, bt.Results())
	if err := journal.Record(j, run, bt.Result()); err != nil {
		return err
	}

	fmt.Printf("\nJournaled run %s\n", run.RunID)
	return nil
}
