package accumulator

import (
	"encoding/json"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// Position is a quantity held at an average price.
type Position struct {
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OperationEntry records the arguments of one Accumulate call and the
// results it produced.
type OperationEntry struct {
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Results  Results         `json:"results"`
}

// EventEntry records one applied event.
type EventEntry struct {
	Name string `json:"name"`
}

// DayLog holds everything logged for one date. Position is the state
// after the latest call that touched the date. Operations and Events are
// nil until the first entry of their kind is logged that day.
type DayLog struct {
	Date       string           `json:"-"`
	Position   Position         `json:"position"`
	Operations []OperationEntry `json:"operations,omitempty"`
	Events     []EventEntry     `json:"events,omitempty"`
}

// Log is the per-date audit trail of an accumulator. Dates are kept in
// the order they were first touched, which is chronological when the
// caller feeds operations in date order.
type Log struct {
	days  map[string]*DayLog
	dates []string
}

func newLog() *Log {
	return &Log{days: make(map[string]*DayLog)}
}

// day returns the record for date, creating it when absent.
func (l *Log) day(date string) *DayLog {
	d, ok := l.days[date]
	if !ok {
		d = &DayLog{Date: date}
		l.days[date] = d
		l.dates = append(l.dates, date)
	}
	return d
}

func (l *Log) appendOperation(date string, pos Position, entry OperationEntry) {
	d := l.day(date)
	d.Position = pos
	d.Operations = append(d.Operations, entry)
}

func (l *Log) appendEvent(date string, pos Position, entry EventEntry) {
	d := l.day(date)
	d.Position = pos
	d.Events = append(d.Events, entry)
}

// Day returns a copy of the record for date.
func (l *Log) Day(date string) (DayLog, bool) {
	d, ok := l.days[date]
	if !ok {
		return DayLog{}, false
	}
	return d.clone(), true
}

// Dates returns the logged dates in first-touch order.
func (l *Log) Dates() []string {
	return slices.Clone(l.dates)
}

// Len is the number of logged dates.
func (l *Log) Len() int {
	return len(l.dates)
}

// All iterates over copies of the logged days in first-touch order.
func (l *Log) All() iter.Seq[DayLog] {
	return func(yield func(DayLog) bool) {
		for _, date := range l.dates {
			if !yield(l.days[date].clone()) {
				return
			}
		}
	}
}

// MarshalJSON renders the log as an object keyed by date.
func (l *Log) MarshalJSON() ([]byte, error) {
	out := make(map[string]DayLog, len(l.days))
	for date, d := range l.days {
		out[date] = *d
	}
	return json.Marshal(out)
}

func (d *DayLog) clone() DayLog {
	c := *d
	if d.Operations != nil {
		c.Operations = make([]OperationEntry, len(d.Operations))
		for i, op := range d.Operations {
			op.Results = op.Results.Clone()
			c.Operations[i] = op
		}
	}
	c.Events = slices.Clone(d.Events)
	return c
}
