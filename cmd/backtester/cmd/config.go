package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtest/config"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write a default configuration file",
	Long: `Config writes a configuration file populated with the default backtest
parameters. The format follows the extension: .yaml/.yml for YAML, anything
else for JSON.

Example:
  backtester config backtest.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := config.Default()
	if err := cfg.SaveToFile(path); err != nil {
		return err
	}

	fmt.Printf("wrote default config to %s\n", path)
	return nil
}
