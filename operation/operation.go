// Package operation models trade operations fed to an accumulator and
// the proration of shared commissions over a batch of them.
package operation

import (
	"maps"
	"slices"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/market"
	"github.com/shopspring/decimal"
)

// Commissions maps a commission name (brokerage, taxes...) to an amount.
type Commissions map[string]decimal.Decimal

// Total is the sum of every commission.
func (c Commissions) Total() decimal.Decimal {
	total := decimal.Zero
	for _, name := range slices.Sorted(maps.Keys(c)) {
		total = total.Add(c[name])
	}
	return total
}

// Operation is one trade: a signed quantity of an asset at a price on a
// date. Positive quantities buy, negative quantities sell.
type Operation struct {
	Date        string
	Asset       market.Asset
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Commissions Commissions
}

// Volume is the traded value, |quantity| * price.
func (o *Operation) Volume() decimal.Decimal {
	return o.Quantity.Abs().Mul(o.Price)
}

// TotalCommissions sums the commissions of the operation.
func (o *Operation) TotalCommissions() decimal.Decimal {
	return o.Commissions.Total()
}

// RealPrice is the price per unit once commissions are paid: higher than
// the execution price on purchases, lower on sales.
func (o *Operation) RealPrice() decimal.Decimal {
	if o.Quantity.IsZero() {
		return o.Price
	}
	perUnit := o.TotalCommissions().Div(o.Quantity.Abs())
	if o.Quantity.IsNegative() {
		return o.Price.Sub(perUnit)
	}
	return o.Price.Add(perUnit)
}

// SetCommission stores amount under name.
func (o *Operation) SetCommission(name string, amount decimal.Decimal) {
	if o.Commissions == nil {
		o.Commissions = make(Commissions)
	}
	o.Commissions[name] = amount
}

func (o *Operation) TradeDate() string              { return o.Date }
func (o *Operation) TradeQuantity() decimal.Decimal { return o.Quantity }

// Validate rejects operations with a malformed date, a negative price,
// a negative commission or a negative real price.
func (o *Operation) Validate() error {
	if err := accumulator.ValidateDate(o.Date); err != nil {
		return err
	}
	if o.Price.IsNegative() {
		return &accumulator.InputError{Field: "price", Value: o.Price.String(), Reason: "must not be negative"}
	}
	for name, amount := range o.Commissions {
		if amount.IsNegative() {
			return &accumulator.InputError{Field: "commission " + name, Value: amount.String(), Reason: "must not be negative"}
		}
	}
	if rp := o.RealPrice(); rp.IsNegative() {
		return &accumulator.InputError{Field: "real price", Value: rp.String(), Reason: "commissions exceed the sale price"}
	}
	return nil
}

var _ accumulator.Trade = (*Operation)(nil)
