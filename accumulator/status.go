package accumulator

import "github.com/shopspring/decimal"

// Status is a carried-forward position used to seed an accumulator, and
// the shape returned by Accumulator.Status.
type Status struct {
	Date     string          `json:"date" yaml:"date"`
	Quantity decimal.Decimal `json:"quantity" yaml:"quantity"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Results  Results         `json:"results" yaml:"results"`
}

// Validate checks the date and the flat-position invariant
// (quantity is zero exactly when price is zero).
func (s Status) Validate() error {
	if s.Date != "" {
		if err := ValidateDate(s.Date); err != nil {
			return err
		}
	}
	if s.Price.IsNegative() {
		return &InputError{Field: "price", Value: s.Price.String(), Reason: "must not be negative"}
	}
	if s.Quantity.IsZero() != s.Price.IsZero() {
		return &InputError{
			Field:  "status",
			Value:  s.Quantity.String() + "@" + s.Price.String(),
			Reason: "quantity and price must be zero together",
		}
	}
	return nil
}
