package cmd

import (
	"github.com/rustyeddy/trade/internal/logger"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "trade",
	Short: "Position and cost basis tracking for a single asset",
	Long: `Trade replays the operations and corporate events of an asset and
keeps its position, average price and accumulated results.

It provides tools for:
  - Replaying trade scripts (trades, fees, splits, bonus issues, dividends)
  - Reporting the day by day position log as Org or JSON
  - Journaling operations, events and positions to CSV or SQLite
  - Querying a SQLite journal`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := logger.Init(logLevel)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
}
