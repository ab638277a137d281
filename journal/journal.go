// journal/journal.go
package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/pkg/id"
	"github.com/shopspring/decimal"
)

// OperationRecord is one logged trade of an asset. Seq orders the
// operations of the same day.
type OperationRecord struct {
	ID       string
	Asset    string
	Date     string
	Seq      int
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Results  accumulator.Results
}

// EventRecord is one logged event of an asset.
type EventRecord struct {
	ID    string
	Asset string
	Date  string
	Seq   int
	Name  string
}

// PositionRecord is the position of an asset at the end of a day.
type PositionRecord struct {
	Asset    string
	Date     string
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

type Journal interface {
	RecordOperation(OperationRecord) error
	RecordEvent(EventRecord) error
	RecordPosition(PositionRecord) error
	Close() error
}

// Export writes every logged day of acc to j: the day's position, then
// its operations and events in the order they were applied. The SQLite
// journal replaces rows of a day exported before; CSV journals start
// empty on open.
func Export(j Journal, acc *accumulator.Accumulator) error {
	asset := acc.Asset().Symbol
	for day := range acc.Log().All() {
		at := recordTime(day.Date)

		if err := j.RecordPosition(PositionRecord{
			Asset:    asset,
			Date:     day.Date,
			Quantity: day.Position.Quantity,
			Price:    day.Position.Price,
		}); err != nil {
			return fmt.Errorf("record position %s: %w", day.Date, err)
		}

		for i, op := range day.Operations {
			if err := j.RecordOperation(OperationRecord{
				ID:       id.NewAt(at),
				Asset:    asset,
				Date:     day.Date,
				Seq:      i,
				Quantity: op.Quantity,
				Price:    op.Price,
				Results:  op.Results,
			}); err != nil {
				return fmt.Errorf("record operation %s #%d: %w", day.Date, i, err)
			}
		}

		for i, ev := range day.Events {
			if err := j.RecordEvent(EventRecord{
				ID:    id.NewAt(at),
				Asset: asset,
				Date:  day.Date,
				Seq:   i,
				Name:  ev.Name,
			}); err != nil {
				return fmt.Errorf("record event %s #%d: %w", day.Date, i, err)
			}
		}
	}
	return nil
}

// recordTime is the timestamp embedded in record IDs: the logged day, or
// now for records logged without a usable date.
func recordTime(date string) time.Time {
	t, err := time.Parse(accumulator.DateFormat, date)
	if err != nil {
		return time.Now()
	}
	return t
}
