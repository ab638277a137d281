package event

import (
	"errors"
	"testing"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		n, d         string
		q, p         string
		wantQ, wantP string
	}{
		{"2:1", "2", "1", "100", "10", "200", "5"},
		{"1:4 reverse", "1", "4", "100", "10", "25", "40"},
		{"short", "3", "1", "-30", "9", "-90", "3"},
		{"flat", "2", "1", "0", "0", "0", "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewSplit("2020-06-01", dec(tt.n), dec(tt.d))
			require.NoError(t, err)

			q, p, delta := s.UpdatePortfolio(dec(tt.q), dec(tt.p))
			assertDecimal(t, tt.wantQ, q)
			assertDecimal(t, tt.wantP, p)
			assert.Nil(t, delta)
			assert.True(t, q.Mul(p).Equal(dec(tt.q).Mul(dec(tt.p))))
		})
	}
}

func TestSplitZeroRatioIsNoop(t *testing.T) {
	t.Parallel()

	s := Split{Header: Header{On: "2020-06-01", Label: "broken"}}
	q, p, _ := s.UpdatePortfolio(dec("10"), dec("3"))
	assertDecimal(t, "10", q)
	assertDecimal(t, "3", p)
}

func TestBonusIssue(t *testing.T) {
	t.Parallel()

	b, err := NewBonusIssue("2020-06-01", dec("1"), dec("4"))
	require.NoError(t, err)
	assert.Equal(t, "bonus 1/4", b.Name())
	assert.Equal(t, "2020-06-01", b.Date())

	q, p, delta := b.UpdatePortfolio(dec("100"), dec("10"))
	assertDecimal(t, "125", q)
	assertDecimal(t, "8", p)
	assert.Nil(t, delta)

	q, p, _ = b.UpdatePortfolio(decimal.Zero, decimal.Zero)
	assertDecimal(t, "0", q)
	assertDecimal(t, "0", p)
}

func TestCashDividend(t *testing.T) {
	t.Parallel()

	d, err := NewCashDividend("2020-06-01", dec("0.25"))
	require.NoError(t, err)

	q, p, delta := d.UpdatePortfolio(dec("200"), dec("10"))
	assertDecimal(t, "200", q)
	assertDecimal(t, "10", p)
	assertDecimal(t, "50", delta[DividendsResult])

	_, _, delta = d.UpdatePortfolio(decimal.Zero, decimal.Zero)
	assert.Nil(t, delta)
}

func TestCashAdjustment(t *testing.T) {
	t.Parallel()

	c, err := NewCashAdjustment("2020-06-01", dec("1.5"))
	require.NoError(t, err)

	q, p, delta := c.UpdatePortfolio(dec("100"), dec("10"))
	assertDecimal(t, "100", q)
	assertDecimal(t, "8.5", p)
	assert.Nil(t, delta)

	q, p, delta = c.UpdatePortfolio(dec("100"), dec("1"))
	assertDecimal(t, "100", q)
	assertDecimal(t, "0", p)
	assertDecimal(t, "50", delta[AdjustmentsResult])
}

func TestConstructorsValidate(t *testing.T) {
	t.Parallel()

	_, err := NewSplit("2020-06-01", dec("0"), dec("1"))
	assert.Error(t, err)
	_, err = NewSplit("June 1st", dec("2"), dec("1"))
	assert.Error(t, err)
	_, err = NewBonusIssue("2020-06-01", dec("1"), dec("0"))
	assert.Error(t, err)
	_, err = NewCashDividend("2020-06-01", dec("-1"))
	assert.Error(t, err)
	_, err = NewCashAdjustment("", dec("1"))

	var inErr *accumulator.InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, "date", inErr.Field)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    string
		args    []string
		want    string
		wantErr string
	}{
		{"split", []string{"2", "1"}, "split 2:1", ""},
		{"BONUS", []string{"1", "10"}, "bonus 1/10", ""},
		{"Dividend", []string{"0.5"}, "dividend 0.5", ""},
		{"ADJUST", []string{" 2 "}, "adjustment 2", ""},
		{"SPLIT", []string{"2"}, "", "need arg1=numerator"},
		{"SPLIT", []string{"x", "1"}, "", "bad numerator"},
		{"DIVIDEND", nil, "", "need arg1=amount"},
		{"MERGER", nil, "", "unknown event"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.kind+tt.want, func(t *testing.T) {
			t.Parallel()
			e, err := Parse(tt.kind, "2021-03-04", tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name())
			assert.Equal(t, "2021-03-04", e.Date())
		})
	}

	assert.True(t, IsKind(" split"))
	assert.False(t, IsKind("TRADE"))
}

func TestEventsThroughAccumulator(t *testing.T) {
	t.Parallel()

	acc := accumulator.New(market.Asset{Symbol: "ITSA4"}, accumulator.WithLogging())
	acc.Accumulate(dec("100"), dec("10"), "2020-01-02", nil)

	split, err := NewSplit("2020-02-03", dec("2"), dec("1"))
	require.NoError(t, err)
	require.NoError(t, acc.AccumulateEvent(split))

	div, err := NewCashDividend("2020-02-03", dec("0.1"))
	require.NoError(t, err)
	require.NoError(t, acc.AccumulateEvent(div))
	require.NoError(t, acc.AccumulateEvent(div))

	assertDecimal(t, "200", acc.Quantity())
	assertDecimal(t, "5", acc.Price())
	assertDecimal(t, "40", acc.Results()[DividendsResult])

	day, ok := acc.Log().Day("2020-02-03")
	require.True(t, ok)
	require.Len(t, day.Events, 3)
	assert.Equal(t, "split 2:1", day.Events[0].Name)
	assert.Equal(t, "dividend 0.1", day.Events[2].Name)
	assert.Nil(t, day.Operations)
}
