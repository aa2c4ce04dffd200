package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtest/journal"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List backtest runs recorded in the journal",
	Long: `Runs lists the journaled backtest runs in a SQLite journal, newest first.

Example:
  backtester runs --db ./backtests.sqlite
  backtester runs --db ./backtests.sqlite --trades 01JF...`,
	RunE: runRuns,
}

var (
	runsDBPath  string
	runsTradeID string
)

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVarP(&runsDBPath, "db", "d", envOr("BACKTEST_DB", "./backtests.sqlite"), "path to SQLite journal DB")
	runsCmd.Flags().StringVar(&runsTradeID, "trades", "", "show the trade log for the given run ID")
}

func runRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if runsTradeID != "" {
		return printTrades(j, runsTradeID)
	}

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs journaled")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tDATASET\tRETURN%\tMAX DD%\tSHARPE\tTRADES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%d\n",
			r.RunID, r.Created.Format(time.RFC3339), r.Dataset,
			r.TotalReturnPct, r.MaxDrawdownPct, r.SharpeRatio, r.Trades)
	}
	return w.Flush()
}

func printTrades(j *journal.SQLiteJournal, runID string) error {
	trades, err := j.ListTrades(runID)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	if len(trades) == 0 {
		fmt.Printf("no trades for run %s\n", runID)
		return nil
	}

	for _, t := range trades {
		fmt.Printf("%s: %s %d shares @ $%.2f = $%.2f\n",
			t.Timestamp, t.Side, t.Shares, t.Price, t.Notional)
	}
	return nil
}
