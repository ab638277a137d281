// Package accumulator tracks the running position of a single asset:
// quantity, average price and accumulated results, as trades and
// portfolio events are applied to it in chronological order.
//
// An Accumulator is not safe for concurrent use. Keep one instance per
// asset and serialize the calls made on it.
package accumulator

import (
	"fmt"
	"log/slog"

	"github.com/rustyeddy/trade/market"
	"github.com/shopspring/decimal"
)

// Accumulator holds the quantity of an asset at some average price,
// plus the results of the operations accumulated so far.
type Accumulator struct {
	asset    market.Asset
	date     string
	quantity decimal.Decimal
	price    decimal.Decimal
	results  Results

	logging bool
	log     *Log
	logger  *slog.Logger
}

// Option configures an Accumulator at construction.
type Option func(*Accumulator)

// WithInitialStatus seeds the accumulator with a carried-forward position.
// The status is used as given; it does not go through the accumulation
// algorithm.
func WithInitialStatus(s Status) Option {
	return func(a *Accumulator) {
		a.date = s.Date
		a.quantity = s.Quantity
		a.price = s.Price
		a.results = s.Results.Clone()
		if a.results == nil {
			a.results = defaultResults()
		}
	}
}

// WithLogging keeps a per-date audit log of every operation and event.
func WithLogging() Option {
	return func(a *Accumulator) { a.logging = true }
}

// WithLogger sets the structured logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Accumulator) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns a flat accumulator for asset unless seeded with
// WithInitialStatus.
func New(asset market.Asset, opts ...Option) *Accumulator {
	a := &Accumulator{
		asset:   asset,
		results: defaultResults(),
		log:     newLog(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("asset", asset.Symbol)
	return a
}

func (a *Accumulator) Asset() market.Asset       { return a.asset }
func (a *Accumulator) Date() string              { return a.date }
func (a *Accumulator) Quantity() decimal.Decimal { return a.quantity }
func (a *Accumulator) Price() decimal.Decimal    { return a.price }
func (a *Accumulator) Logging() bool             { return a.logging }

// Log returns the audit log. It stays empty unless logging is enabled.
func (a *Accumulator) Log() *Log { return a.log }

// Results returns a copy of the accumulated results.
func (a *Accumulator) Results() Results { return a.results.Clone() }

// Status returns a snapshot of the current state.
func (a *Accumulator) Status() Status {
	return Status{
		Date:     a.date,
		Quantity: a.quantity,
		Price:    a.price,
		Results:  a.results.Clone(),
	}
}

// Accumulate applies one trade of quantity at price to the position.
//
// Trades in the direction of the position (or from flat) move the average
// price to the quantity-weighted average. Trades against the position
// realize quantity*(price - average) into the "trades" result; the
// average is kept while the position only shrinks and becomes the trade
// price when the position flips sign.
//
// results carries extra named amounts (a day-trade gain, commissions) to
// fold into the accumulated results; nil means {"trades": 0}. The map is
// copied, never modified. date keys the log entry and, when not empty,
// becomes the accumulator date.
func (a *Accumulator) Accumulate(quantity, price decimal.Decimal, date string, results Results) {
	newQuantity := a.quantity.Add(quantity)

	if results == nil {
		results = defaultResults()
	} else {
		results = results.Clone()
	}

	var newPrice decimal.Decimal
	switch {
	case sameSign(a.quantity, quantity):
		if !newQuantity.IsZero() {
			newPrice = averagePrice(a.quantity, a.price, quantity, price)
		}

	case !a.quantity.IsZero():
		if sameSign(a.quantity, newQuantity) {
			newPrice = a.price
		} else {
			newPrice = price
		}
		// Uses the full traded quantity, also when the trade flips the
		// position past zero.
		volume := quantity.Abs()
		results.Add(TradesResult, volume.Mul(price).Sub(volume.Mul(a.price)))

	default:
		newPrice = price
	}

	a.quantity = newQuantity
	if newQuantity.IsZero() {
		a.price = decimal.Zero
	} else {
		a.price = newPrice
	}
	a.results.Merge(results)
	if date != "" {
		a.date = date
	}

	a.logger.Debug("accumulate",
		"date", date,
		"trade_quantity", quantity.String(),
		"trade_price", price.String(),
		"quantity", a.quantity.String(),
		"price", a.price.String(),
	)

	if a.logging {
		a.log.appendOperation(date, a.position(), OperationEntry{
			Quantity: quantity,
			Price:    price,
			Results:  results,
		})
	}
}

// AccumulateOperation validates a trade record and accumulates its
// quantity at its real price. Invalid records leave the state untouched.
func (a *Accumulator) AccumulateOperation(op Trade) error {
	if err := op.Validate(); err != nil {
		return fmt.Errorf("accumulate operation: %w", err)
	}
	a.Accumulate(op.TradeQuantity(), op.RealPrice(), op.TradeDate(), nil)
	return nil
}

// AccumulateEvent lets e compute the new quantity and price and merges
// the results it returns. No averaging or result logic is applied here.
func (a *Accumulator) AccumulateEvent(e Event) error {
	if err := ValidateDate(e.Date()); err != nil {
		return fmt.Errorf("accumulate event %s: %w", e.Name(), err)
	}

	quantity, price, delta := e.UpdatePortfolio(a.quantity, a.price)
	a.quantity = quantity
	if quantity.IsZero() {
		a.price = decimal.Zero
	} else {
		a.price = price
	}
	a.results.Merge(delta)
	a.date = e.Date()

	a.logger.Debug("event",
		"date", e.Date(),
		"event", e.Name(),
		"quantity", a.quantity.String(),
		"price", a.price.String(),
	)

	if a.logging {
		a.log.appendEvent(e.Date(), a.position(), EventEntry{Name: e.Name()})
	}
	return nil
}

func (a *Accumulator) position() Position {
	return Position{Quantity: a.quantity, Price: a.price}
}

// sameSign treats zero as compatible with either sign.
func sameSign(x, y decimal.Decimal) bool {
	if x.IsZero() || y.IsZero() {
		return true
	}
	return x.Sign() == y.Sign()
}

// averagePrice is the quantity-weighted average of two price points.
// Callers guarantee q1+q2 is not zero.
func averagePrice(q1, p1, q2, p2 decimal.Decimal) decimal.Decimal {
	return q1.Mul(p1).Add(q2.Mul(p2)).Div(q1.Add(q2))
}
