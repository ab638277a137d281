package journal

import (
	"path/filepath"
	"testing"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/event"
	"github.com/rustyeddy/trade/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

// tradedAccumulator buys 100 at 10, sells 50 at 16 and splits 2:1 over
// three days:
//
//	2024-01-02  100 @ 10
//	2024-01-03   50 @ 10, trades 300
//	2024-01-04  100 @ 5
func tradedAccumulator(t *testing.T) *accumulator.Accumulator {
	t.Helper()

	acc := accumulator.New(market.NewAsset("GOOG", "Alphabet", "USD"), accumulator.WithLogging())
	acc.Accumulate(dec("100"), dec("10"), "2024-01-02", nil)
	acc.Accumulate(dec("-50"), dec("16"), "2024-01-03", nil)

	split, err := event.NewSplit("2024-01-04", dec("2"), dec("1"))
	require.NoError(t, err)
	require.NoError(t, acc.AccumulateEvent(split))
	return acc
}
