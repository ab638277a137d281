// market/asset.go
package market

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Asset describes a tradable asset. The accumulator only stores it and
// hands it back; nothing in the position math depends on its fields.
type Asset struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// NewAsset returns an asset with an upper-cased symbol and currency.
func NewAsset(symbol, name, currency string) Asset {
	return Asset{
		Symbol:   strings.ToUpper(strings.TrimSpace(symbol)),
		Name:     strings.TrimSpace(name),
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}
}

func (a Asset) String() string {
	if a.Name == "" {
		return a.Symbol
	}
	return fmt.Sprintf("%s (%s)", a.Symbol, a.Name)
}

// Validate checks the symbol is set and, when given, that the currency is
// a known ISO 4217 code.
func (a Asset) Validate() error {
	if strings.TrimSpace(a.Symbol) == "" {
		return fmt.Errorf("asset symbol is required")
	}
	code := strings.ToUpper(strings.TrimSpace(a.Currency))
	if code != "" && money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q for asset %s", a.Currency, a.Symbol)
	}
	return nil
}

// Amounts in minor units beyond int64 are not formatted by go-money.
var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// Format renders amount using the display rules of currency
// (grapheme, separators, fraction digits). Unknown or empty currencies
// fall back to the plain decimal text.
func Format(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.String()
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.String()
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return amount.StringFixed(int32(cur.Fraction))
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}
