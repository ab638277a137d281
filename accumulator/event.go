package accumulator

import "github.com/shopspring/decimal"

// Event is a portfolio-changing event such as a split or a dividend.
//
// UpdatePortfolio receives the current quantity and average price and
// returns the new pair together with any results it produced. It must not
// keep or mutate anything it is given; the accumulator owns the canonical
// results and merges the returned delta into them additively.
type Event interface {
	Name() string
	Date() string
	UpdatePortfolio(quantity, price decimal.Decimal) (decimal.Decimal, decimal.Decimal, Results)
}

// Trade is the view of an external trade-operation record needed to
// accumulate it.
type Trade interface {
	TradeDate() string
	TradeQuantity() decimal.Decimal
	// RealPrice is the execution price net of costs such as commissions.
	RealPrice() decimal.Decimal
	Validate() error
}
