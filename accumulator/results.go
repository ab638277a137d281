package accumulator

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// TradesResult is the result name that receives realized gains and losses
// from offsetting trades.
const TradesResult = "trades"

// Results maps a result name (trades, daytrade, commissions, dividends...)
// to an accumulated amount.
type Results map[string]decimal.Decimal

// defaultResults is what a trade carries when the caller gives no results.
func defaultResults() Results {
	return Results{TradesResult: decimal.Zero}
}

// Add sums value into name, creating the entry at zero first.
func (r Results) Add(name string, value decimal.Decimal) {
	r[name] = r[name].Add(value)
}

// Merge adds every entry of other into r.
func (r Results) Merge(other Results) {
	for name, value := range other {
		r.Add(name, value)
	}
}

// Get returns the amount for name, zero when absent.
func (r Results) Get(name string) decimal.Decimal {
	return r[name]
}

// Clone returns an independent copy. A nil map clones to nil.
func (r Results) Clone() Results {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Names returns the result names in lexical order.
func (r Results) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// Equal reports whether both maps hold the same names with equal amounts.
func (r Results) Equal(other Results) bool {
	if len(r) != len(other) {
		return false
	}
	for name, value := range r {
		v, ok := other[name]
		if !ok || !v.Equal(value) {
			return false
		}
	}
	return true
}

// String renders the results as name=value pairs separated by ';',
// in name order.
func (r Results) String() string {
	var b strings.Builder
	for i, name := range r.Names() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(r[name].String())
	}
	return b.String()
}

// ParseResults reads the name=value;name=value form produced by String.
// Blank input gives an empty, non-nil map.
func ParseResults(s string) (Results, error) {
	r := make(Results)
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, &InputError{Field: "results", Value: pair, Reason: "expected name=value"}
		}
		v, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, &InputError{Field: "results", Value: pair, Reason: "bad amount"}
		}
		r.Add(name, v)
	}
	return r, nil
}
