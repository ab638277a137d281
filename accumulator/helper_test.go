package accumulator

import (
	"testing"

	"github.com/rustyeddy/trade/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testAsset = market.Asset{Symbol: "GOOG", Currency: "USD"}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

// fakeTrade is a minimal Trade.
type fakeTrade struct {
	date     string
	quantity decimal.Decimal
	price    decimal.Decimal
	err      error
}

func (f fakeTrade) TradeDate() string              { return f.date }
func (f fakeTrade) TradeQuantity() decimal.Decimal { return f.quantity }
func (f fakeTrade) RealPrice() decimal.Decimal     { return f.price }
func (f fakeTrade) Validate() error                { return f.err }

// multiplyEvent scales the quantity by factor and divides the price by it.
type multiplyEvent struct {
	date   string
	name   string
	factor decimal.Decimal
	delta  Results
}

func (e multiplyEvent) Name() string { return e.name }
func (e multiplyEvent) Date() string { return e.date }
func (e multiplyEvent) UpdatePortfolio(q, p decimal.Decimal) (decimal.Decimal, decimal.Decimal, Results) {
	if e.factor.IsZero() {
		return decimal.Zero, p, e.delta
	}
	return q.Mul(e.factor), p.Div(e.factor), e.delta
}
