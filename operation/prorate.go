package operation

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Position groups operations in a Container. A position that updates the
// accumulated position receives its share of the commissions itself;
// otherwise (a day trade, for instance) the share goes to each of its
// underlying operations.
type Position struct {
	*Operation
	UpdatePosition bool
	Operations     []*Operation
}

// Container is a batch of operations executed together, usually a
// brokerage note for one day, with commissions charged on the whole batch.
type Container struct {
	Date        string
	Commissions Commissions
	Operations  []*Operation
	Positions   []*Position
}

// Volume is the summed volume of the container's operations.
func (c *Container) Volume() decimal.Decimal {
	total := decimal.Zero
	for _, op := range c.Operations {
		total = total.Add(op.Volume())
	}
	return total
}

// ProrateCommissions splits the container commissions over its positions
// in proportion to their volume.
func ProrateCommissions(c *Container) {
	volume := c.Volume()
	for _, pos := range c.Positions {
		if pos.UpdatePosition {
			prorate(c.Commissions, volume, pos.Operation)
			continue
		}
		for _, op := range pos.Operations {
			prorate(c.Commissions, volume, op)
		}
	}
}

// prorate gives op its share of commissions. Nothing is assigned when
// either volume is zero.
func prorate(commissions Commissions, containerVolume decimal.Decimal, op *Operation) {
	if op == nil {
		return
	}
	opVolume := op.Volume()
	if opVolume.IsZero() || containerVolume.IsZero() {
		return
	}
	percent := opVolume.Div(containerVolume).Mul(hundred)
	for name, amount := range commissions {
		op.SetCommission(name, amount.Mul(percent).Div(hundred))
	}
}
