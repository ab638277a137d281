// Package event implements the portfolio-changing events an accumulator
// can apply: splits, bonus issues, cash dividends and cash adjustments.
package event

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/shopspring/decimal"
)

// Kind names an event variant in scripts and configuration.
type Kind string

const (
	KindSplit      Kind = "SPLIT"
	KindBonus      Kind = "BONUS"
	KindDividend   Kind = "DIVIDEND"
	KindAdjustment Kind = "ADJUST"
)

// Result names produced by events.
const (
	DividendsResult   = "dividends"
	AdjustmentsResult = "adjustments"
)

// Header carries what every event has: a date and a display name.
type Header struct {
	On    string
	Label string
}

func (h Header) Date() string { return h.On }
func (h Header) Name() string { return h.Label }

func (h Header) validate() error {
	return accumulator.ValidateDate(h.On)
}

// Split changes the number of shares by Numerator/Denominator, leaving
// the total cost of the position unchanged.
type Split struct {
	Header
	Numerator   decimal.Decimal
	Denominator decimal.Decimal
}

// NewSplit returns a numerator:denominator split, e.g. 2:1 doubles the shares.
func NewSplit(date string, numerator, denominator decimal.Decimal) (Split, error) {
	s := Split{
		Header:      Header{On: date, Label: fmt.Sprintf("split %s:%s", numerator, denominator)},
		Numerator:   numerator,
		Denominator: denominator,
	}
	if err := s.validate(); err != nil {
		return Split{}, err
	}
	if err := positive("numerator", numerator); err != nil {
		return Split{}, err
	}
	if err := positive("denominator", denominator); err != nil {
		return Split{}, err
	}
	return s, nil
}

func (s Split) UpdatePortfolio(quantity, price decimal.Decimal) (decimal.Decimal, decimal.Decimal, accumulator.Results) {
	if s.Numerator.IsZero() || s.Denominator.IsZero() {
		return quantity, price, nil
	}
	newQuantity := quantity.Mul(s.Numerator).Div(s.Denominator)
	newPrice := price.Mul(s.Denominator).Div(s.Numerator)
	return newQuantity, newPrice, nil
}

// BonusIssue grants Numerator bonus shares for every Denominator shares
// held. The cost of the position is spread over the larger quantity.
type BonusIssue struct {
	Header
	Numerator   decimal.Decimal
	Denominator decimal.Decimal
}

// NewBonusIssue returns a bonus of numerator new shares per denominator held.
func NewBonusIssue(date string, numerator, denominator decimal.Decimal) (BonusIssue, error) {
	b := BonusIssue{
		Header:      Header{On: date, Label: fmt.Sprintf("bonus %s/%s", numerator, denominator)},
		Numerator:   numerator,
		Denominator: denominator,
	}
	if err := b.validate(); err != nil {
		return BonusIssue{}, err
	}
	if err := positive("numerator", numerator); err != nil {
		return BonusIssue{}, err
	}
	if err := positive("denominator", denominator); err != nil {
		return BonusIssue{}, err
	}
	return b, nil
}

func (b BonusIssue) UpdatePortfolio(quantity, price decimal.Decimal) (decimal.Decimal, decimal.Decimal, accumulator.Results) {
	if quantity.IsZero() || b.Denominator.IsZero() {
		return quantity, price, nil
	}
	newQuantity := quantity.Add(quantity.Mul(b.Numerator).Div(b.Denominator))
	if newQuantity.IsZero() {
		return quantity, price, nil
	}
	newPrice := quantity.Mul(price).Div(newQuantity)
	return newQuantity, newPrice, nil
}

// CashDividend pays PerShare for every share held. Quantity and price are
// unchanged; the payment goes to the "dividends" result.
type CashDividend struct {
	Header
	PerShare decimal.Decimal
}

// NewCashDividend returns a dividend paying perShare.
func NewCashDividend(date string, perShare decimal.Decimal) (CashDividend, error) {
	d := CashDividend{
		Header:   Header{On: date, Label: fmt.Sprintf("dividend %s", perShare)},
		PerShare: perShare,
	}
	if err := d.validate(); err != nil {
		return CashDividend{}, err
	}
	if err := positive("per share amount", perShare); err != nil {
		return CashDividend{}, err
	}
	return d, nil
}

func (d CashDividend) UpdatePortfolio(quantity, price decimal.Decimal) (decimal.Decimal, decimal.Decimal, accumulator.Results) {
	if quantity.IsZero() {
		return quantity, price, nil
	}
	return quantity, price, accumulator.Results{DividendsResult: quantity.Mul(d.PerShare)}
}

// CashAdjustment returns capital: the average price drops by PerShare.
// The price never goes below zero; any excess over the cost basis goes to
// the "adjustments" result.
type CashAdjustment struct {
	Header
	PerShare decimal.Decimal
}

// NewCashAdjustment returns a capital return of perShare.
func NewCashAdjustment(date string, perShare decimal.Decimal) (CashAdjustment, error) {
	c := CashAdjustment{
		Header:   Header{On: date, Label: fmt.Sprintf("adjustment %s", perShare)},
		PerShare: perShare,
	}
	if err := c.validate(); err != nil {
		return CashAdjustment{}, err
	}
	if err := positive("per share amount", perShare); err != nil {
		return CashAdjustment{}, err
	}
	return c, nil
}

func (c CashAdjustment) UpdatePortfolio(quantity, price decimal.Decimal) (decimal.Decimal, decimal.Decimal, accumulator.Results) {
	if quantity.IsZero() {
		return quantity, price, nil
	}
	newPrice := price.Sub(c.PerShare)
	if !newPrice.IsNegative() {
		return quantity, newPrice, nil
	}
	excess := newPrice.Neg().Mul(quantity.Abs())
	return quantity, decimal.Zero, accumulator.Results{AdjustmentsResult: excess}
}

// Parse builds an event of kind from its script arguments:
//
//	SPLIT     numerator denominator
//	BONUS     numerator denominator
//	DIVIDEND  per-share amount
//	ADJUST    per-share amount
func Parse(kind, date string, args []string) (accumulator.Event, error) {
	switch Kind(strings.ToUpper(strings.TrimSpace(kind))) {
	case KindSplit:
		n, d, err := parseRatio(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KindSplit, err)
		}
		return NewSplit(date, n, d)
	case KindBonus:
		n, d, err := parseRatio(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KindBonus, err)
		}
		return NewBonusIssue(date, n, d)
	case KindDividend:
		amount, err := parseAmount(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KindDividend, err)
		}
		return NewCashDividend(date, amount)
	case KindAdjustment:
		amount, err := parseAmount(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KindAdjustment, err)
		}
		return NewCashAdjustment(date, amount)
	default:
		return nil, fmt.Errorf("unknown event %q", kind)
	}
}

// IsKind reports whether s names an event variant.
func IsKind(s string) bool {
	switch Kind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindSplit, KindBonus, KindDividend, KindAdjustment:
		return true
	}
	return false
}

func parseRatio(args []string) (decimal.Decimal, decimal.Decimal, error) {
	if len(args) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("need arg1=numerator arg2=denominator")
	}
	n, err := decimal.NewFromString(strings.TrimSpace(args[0]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("bad numerator %q: %w", args[0], err)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(args[1]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("bad denominator %q: %w", args[1], err)
	}
	return n, d, nil
}

func parseAmount(args []string) (decimal.Decimal, error) {
	if len(args) < 1 {
		return decimal.Zero, fmt.Errorf("need arg1=amount per share")
	}
	v, err := decimal.NewFromString(strings.TrimSpace(args[0]))
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad amount %q: %w", args[0], err)
	}
	return v, nil
}

func positive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return &accumulator.InputError{Field: field, Value: v.String(), Reason: "must be positive"}
	}
	return nil
}
