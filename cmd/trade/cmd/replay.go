package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/config"
	"github.com/rustyeddy/trade/internal/logger"
	"github.com/rustyeddy/trade/journal"
	"github.com/rustyeddy/trade/market"
	"github.com/rustyeddy/trade/replay"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a trade script into a position",
	Long: `Replay the rows of a CSV script (date,kind,quantity,price,args...)
and print the resulting position and results.

Examples:
  trade replay -f goog.csv --symbol GOOG
  trade replay -f goog.csv -c goog.yaml --log
  trade replay -f goog.csv --symbol GOOG --json
  trade replay -f goog.csv -c goog.yaml --report goog.org`,
	RunE: runReplay,
}

var (
	replayScriptPath string
	replayConfigPath string
	replaySymbol     string
	replayCurrency   string
	replayShowLog    bool
	replayJSON       bool
	replayReportPath string
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayScriptPath, "file", "f", "", "CSV script to replay (required)")
	replayCmd.Flags().StringVarP(&replayConfigPath, "config", "c", "", "path to config file")
	replayCmd.Flags().StringVar(&replaySymbol, "symbol", "", "asset symbol, overrides the config")
	replayCmd.Flags().StringVar(&replayCurrency, "currency", "", "asset currency, overrides the config")
	replayCmd.Flags().BoolVar(&replayShowLog, "log", false, "print the day by day log")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print the status (and log) as JSON")
	replayCmd.Flags().StringVar(&replayReportPath, "report", "", "write an Org summary to this path")
	replayCmd.MarkFlagRequired("file")
}

// replayConfig loads the config file, applies the flag overrides and only
// then validates, so the file may leave out what the flags provide.
func replayConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if replayConfigPath != "" {
		var err error
		if cfg, err = config.Load(replayConfigPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if replaySymbol != "" {
		cfg.Asset.Symbol = replaySymbol
	}
	if replayCurrency != "" {
		cfg.Asset.Currency = replayCurrency
	}
	// The journal and the report are built from the log.
	if replayShowLog || replayReportPath != "" || cfg.Journal.Type != "" {
		cfg.Logging = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := replayConfig()
	if err != nil {
		return err
	}
	// --log-level wins over the config file.
	if replayConfigPath != "" && cfg.Log.Level != "" && !cmd.Flags().Changed("log-level") {
		if _, err := logger.Init(cfg.Log.Level); err != nil {
			return err
		}
	}

	acc := accumulator.New(cfg.AssetInfo(), cfg.Options()...)
	slog.Info("replay", "script", replayScriptPath, "asset", acc.Asset().Symbol)

	if err := replay.CSV(cmd.Context(), replayScriptPath, acc, replay.Options{}); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}

	j, err := cfg.OpenJournal()
	if err != nil {
		return err
	}
	if j != nil {
		err := journal.Export(j, acc)
		if cerr := j.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("export journal: %w", err)
		}
		slog.Info("journal exported", "type", cfg.Journal.Type, "days", acc.Log().Len())
	}

	if replayReportPath != "" {
		if err := journal.NewSummary(acc, replayScriptPath).WriteOrgFile(replayReportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		slog.Info("report written", "path", replayReportPath)
	}

	out := cmd.OutOrStdout()
	if replayJSON {
		return printReplayJSON(out, acc)
	}
	printReplay(out, acc)
	return nil
}

func printReplay(w io.Writer, acc *accumulator.Accumulator) {
	currency := acc.Asset().Currency
	results := acc.Results()

	fmt.Fprintf(w, "Replay complete: %s\n", acc.Asset())
	fmt.Fprintf(w, "  Date:     %s\n", acc.Date())
	fmt.Fprintf(w, "  Quantity: %s\n", acc.Quantity())
	fmt.Fprintf(w, "  Price:    %s\n", market.Format(acc.Price(), currency))
	for _, name := range results.Names() {
		fmt.Fprintf(w, "  %s: %s\n", name, market.Format(results[name], currency))
	}

	if replayShowLog {
		fmt.Fprintln(w)
		fmt.Fprint(w, journal.FormatLogOrg(acc.Asset().Symbol, acc.Log()))
	}
}

func printReplayJSON(w io.Writer, acc *accumulator.Accumulator) error {
	out := struct {
		Asset  market.Asset       `json:"asset"`
		Status accumulator.Status `json:"status"`
		Log    *accumulator.Log   `json:"log,omitempty"`
	}{
		Asset:  acc.Asset(),
		Status: acc.Status(),
	}
	if replayShowLog {
		out.Log = acc.Log()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
