package operation

import (
	"errors"
	"testing"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var petr4 = market.Asset{Symbol: "PETR4", Currency: "BRL"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestVolumeAndRealPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		quantity    string
		price       string
		commissions Commissions
		volume      string
		realPrice   string
	}{
		{"buy without costs", "100", "10", nil, "1000", "10"},
		{"buy pays commissions", "100", "10", Commissions{"brokerage": dec("4"), "tax": dec("1")}, "1000", "10.05"},
		{"sell pays commissions", "-100", "10", Commissions{"brokerage": dec("5")}, "1000", "9.95"},
		{"zero quantity", "0", "10", Commissions{"brokerage": dec("5")}, "0", "10"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			op := &Operation{
				Date:        "2015-01-01",
				Asset:       petr4,
				Quantity:    dec(tt.quantity),
				Price:       dec(tt.price),
				Commissions: tt.commissions,
			}
			assertDecimal(t, tt.volume, op.Volume())
			assertDecimal(t, tt.realPrice, op.RealPrice())
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := &Operation{Date: "2015-01-01", Quantity: dec("1"), Price: dec("1")}
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name  string
		op    *Operation
		field string
	}{
		{"missing date", &Operation{Quantity: dec("1"), Price: dec("1")}, "date"},
		{"bad date", &Operation{Date: "2015-1-1", Quantity: dec("1"), Price: dec("1")}, "date"},
		{"negative price", &Operation{Date: "2015-01-01", Quantity: dec("1"), Price: dec("-1")}, "price"},
		{"negative commission", &Operation{Date: "2015-01-01", Quantity: dec("1"), Price: dec("1"),
			Commissions: Commissions{"tax": dec("-1")}}, "commission tax"},
		{"commissions over sale price", &Operation{Date: "2015-01-01", Quantity: dec("-1"), Price: dec("1"),
			Commissions: Commissions{"brokerage": dec("5")}}, "real price"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.op.Validate()
			var inErr *accumulator.InputError
			require.True(t, errors.As(err, &inErr))
			assert.Equal(t, tt.field, inErr.Field)
		})
	}
}

func TestAccumulateOperationUsesRealPrice(t *testing.T) {
	t.Parallel()

	acc := accumulator.New(petr4)
	buy := &Operation{Date: "2015-01-01", Asset: petr4, Quantity: dec("100"), Price: dec("10"),
		Commissions: Commissions{"brokerage": dec("10")}}
	sell := &Operation{Date: "2015-01-02", Asset: petr4, Quantity: dec("-100"), Price: dec("12"),
		Commissions: Commissions{"brokerage": dec("10")}}

	require.NoError(t, acc.AccumulateOperation(buy))
	assertDecimal(t, "10.1", acc.Price())

	require.NoError(t, acc.AccumulateOperation(sell))
	assertDecimal(t, "0", acc.Quantity())
	// 100*11.9 - 100*10.1
	assertDecimal(t, "180", acc.Results()[accumulator.TradesResult])

	err := acc.AccumulateOperation(&Operation{Quantity: dec("1"), Price: dec("1")})
	assert.Error(t, err)
}

func TestSaleCommissionsUpToPrice(t *testing.T) {
	t.Parallel()

	// Commissions that eat the whole sale leave a real price of zero.
	even := &Operation{Date: "2015-01-01", Quantity: dec("-2"), Price: dec("3"),
		Commissions: Commissions{"brokerage": dec("6")}}
	require.NoError(t, even.Validate())
	assertDecimal(t, "0", even.RealPrice())

	acc := accumulator.New(petr4)
	over := &Operation{Date: "2015-01-01", Asset: petr4, Quantity: dec("-1"), Price: dec("1"),
		Commissions: Commissions{"brokerage": dec("5")}}
	err := acc.AccumulateOperation(over)
	var inErr *accumulator.InputError
	require.True(t, errors.As(err, &inErr))
	assert.Contains(t, err.Error(), `invalid real price "-4"`)
	assert.True(t, acc.Quantity().IsZero())
	assert.True(t, acc.Price().IsZero())
}
