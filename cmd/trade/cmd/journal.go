package cmd

import (
	"fmt"
	"io"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journal data",
	Long: `Query and display journal records from a SQLite database.

Subcommands:
  operation  - Get details of an operation by ID
  operations - List operations dated within [from, to)
  events     - List events dated within [from, to)
  position   - Show the position of an asset on a day

Examples:
  trade journal operations --from 2024-01-01 --to 2024-02-01
  trade journal position --asset GOOG --on 2024-01-15`,
}

var journalOperationCmd = &cobra.Command{
	Use:   "operation <id>",
	Short: "Get details of an operation",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOperation,
}

var journalOperationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List operations dated within [from, to)",
	Args:  cobra.NoArgs,
	RunE:  runJournalOperations,
}

var journalEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events dated within [from, to)",
	Args:  cobra.NoArgs,
	RunE:  runJournalEvents,
}

var journalPositionCmd = &cobra.Command{
	Use:   "position",
	Short: "Show the last position of an asset on or before a day",
	Args:  cobra.NoArgs,
	RunE:  runJournalPosition,
}

var (
	journalDBPath string
	journalFrom   string
	journalTo     string
	journalAsset  string
	journalOn     string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalOperationCmd)
	journalCmd.AddCommand(journalOperationsCmd)
	journalCmd.AddCommand(journalEventsCmd)
	journalCmd.AddCommand(journalPositionCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./trade.sqlite", "path to SQLite journal DB")

	for _, c := range []*cobra.Command{journalOperationsCmd, journalEventsCmd} {
		c.Flags().StringVar(&journalFrom, "from", "0000-01-01", "first day (YYYY-MM-DD)")
		c.Flags().StringVar(&journalTo, "to", "9999-12-31", "day after the last (YYYY-MM-DD)")
	}

	journalPositionCmd.Flags().StringVar(&journalAsset, "asset", "", "asset symbol (required)")
	journalPositionCmd.Flags().StringVar(&journalOn, "on", "9999-12-31", "day (YYYY-MM-DD)")
	journalPositionCmd.MarkFlagRequired("asset")
}

func openJournal() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func validateRange(from, to string) error {
	if err := accumulator.ValidateDate(from); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if err := accumulator.ValidateDate(to); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	return nil
}

func runJournalOperation(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetOperation(args[0])
	if err != nil {
		return fmt.Errorf("get operation: %w", err)
	}

	printOperations(cmd.OutOrStdout(), []journal.OperationRecord{rec})
	return nil
}

func runJournalOperations(cmd *cobra.Command, args []string) error {
	if err := validateRange(journalFrom, journalTo); err != nil {
		return err
	}
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListOperationsBetween(journalFrom, journalTo)
	if err != nil {
		return fmt.Errorf("query operations: %w", err)
	}

	printOperations(cmd.OutOrStdout(), recs)
	return nil
}

func runJournalEvents(cmd *cobra.Command, args []string) error {
	if err := validateRange(journalFrom, journalTo); err != nil {
		return err
	}
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListEventsBetween(journalFrom, journalTo)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "| Date | Asset | Event | ID |")
	fmt.Fprintln(out, "|------+-------+-------+----|")
	for _, rec := range recs {
		fmt.Fprintf(out, "| %s | %s | %s | %s |\n", rec.Date, rec.Asset, rec.Name, rec.ID)
	}
	return nil
}

func runJournalPosition(cmd *cobra.Command, args []string) error {
	if err := accumulator.ValidateDate(journalOn); err != nil {
		return fmt.Errorf("on: %w", err)
	}
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.PositionAsOf(journalAsset, journalOn)
	if err != nil {
		return fmt.Errorf("query position: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s on %s: %s @ %s\n", rec.Asset, rec.Date, rec.Quantity, rec.Price)
	return nil
}

func printOperations(w io.Writer, recs []journal.OperationRecord) {
	fmt.Fprintln(w, "| Date | Asset | # | Quantity | Price | Results | ID |")
	fmt.Fprintln(w, "|------+-------+---+----------+-------+---------+----|")
	for _, rec := range recs {
		fmt.Fprintf(w, "| %s | %s | %d | %s | %s | %s | %s |\n",
			rec.Date, rec.Asset, rec.Seq, rec.Quantity, rec.Price, rec.Results, rec.ID)
	}
}
