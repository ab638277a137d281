package replay

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/event"
	"github.com/rustyeddy/trade/operation"
	"github.com/shopspring/decimal"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Row kinds besides the event kinds.
const (
	KindTrade  = "TRADE"
	KindBuy    = "BUY"
	KindSell   = "SELL"
	KindFees   = "FEES"
	KindResult = "RESULT"
)

// DefaultCommission names a commission given as a bare amount.
const DefaultCommission = "commission"

// Options controls how replay behaves.
type Options struct {
	// Commission names bare commission amounts. Empty means
	// DefaultCommission.
	Commission string

	// Logger receives a debug line per replayed day. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (o Options) commission() string {
	if o.Commission == "" {
		return DefaultCommission
	}
	return o.Commission
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// CSV replays a script file into acc. Files ending in .xz or .lzma are
// decompressed first.
//
// Each row is date,kind,quantity,price,arg1,arg2,... and an optional
// first row starting with "date" is a header. Kinds (case-insensitive):
//
//	TRADE     signed quantity, price, arg1=commissions (optional)
//	BUY       like TRADE, quantity forced positive
//	SELL      like TRADE, quantity forced negative
//	FEES      arg1=commissions shared by the day's trades by volume
//	RESULT    arg1=results accumulated without a position change
//	SPLIT     arg1=numerator arg2=denominator
//	BONUS     arg1=numerator arg2=denominator
//	DIVIDEND  arg1=amount per share
//	ADJUST    arg1=amount per share
//
// Commissions and results are written name=value;name=value. A bare
// commission amount is stored under Options.Commission.
//
// Rows must be in date order. A day is applied once all its rows are read,
// in row order, after FEES have been prorated. The first bad row stops the
// replay; days already applied stay applied, the pending day is dropped.
func CSV(ctx context.Context, path string, acc *accumulator.Accumulator, opts Options) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := decompress(path, f)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return Reader(ctx, r, acc, opts)
}

// decompress wraps f by the extension of path: .xz and .lzma scripts are
// decoded on the fly, anything else is read as is.
func decompress(path string, f io.Reader) (io.Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		return xz.NewReader(f)
	case ".lzma":
		return lzma.NewReader(f)
	default:
		return f, nil
	}
}

// Reader replays a script read from r into acc. See CSV for the format.
func Reader(ctx context.Context, r io.Reader, acc *accumulator.Accumulator, opts Options) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		day   *batch
		first = true
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}

		row, err := parseRow(rec, opts)
		if err != nil {
			return fmt.Errorf("row %d: %w", line, err)
		}
		row.line = line

		if day != nil && row.date != day.date {
			if row.date < day.date {
				return fmt.Errorf("row %d: date %s out of order after %s", line, row.date, day.date)
			}
			if err := day.apply(ctx, acc, opts); err != nil {
				return err
			}
			day = nil
		}
		if day == nil {
			day = &batch{date: row.date}
		}
		day.rows = append(day.rows, row)
	}

	if day != nil {
		return day.apply(ctx, acc, opts)
	}
	return nil
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "date")
}

type row struct {
	line int
	date string
	kind string

	op          *operation.Operation
	commissions operation.Commissions
	results     accumulator.Results
	event       accumulator.Event
}

func parseRow(rec []string, opts Options) (row, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	if len(rec) < 2 {
		return row{}, fmt.Errorf("need at least date,kind: %v", rec)
	}

	r := row{date: rec[0], kind: strings.ToUpper(rec[1])}
	if err := accumulator.ValidateDate(r.date); err != nil {
		return row{}, err
	}
	args := rec[min(len(rec), 4):]

	switch r.kind {
	case KindTrade, KindBuy, KindSell:
		quantity, err := field(rec, 2, "quantity")
		if err != nil {
			return row{}, err
		}
		if quantity.IsZero() {
			return row{}, &accumulator.InputError{Field: "quantity", Reason: "must not be zero"}
		}
		switch r.kind {
		case KindBuy:
			quantity = quantity.Abs()
		case KindSell:
			quantity = quantity.Abs().Neg()
		}
		price, err := field(rec, 3, "price")
		if err != nil {
			return row{}, err
		}
		r.op = &operation.Operation{Date: r.date, Quantity: quantity, Price: price}
		if len(args) > 0 {
			if r.commissions, err = parseCommissions(args[0], opts.commission()); err != nil {
				return row{}, err
			}
		}

	case KindFees:
		if len(args) == 0 || args[0] == "" {
			return row{}, fmt.Errorf("%s: need arg1=commissions", KindFees)
		}
		var err error
		if r.commissions, err = parseCommissions(args[0], opts.commission()); err != nil {
			return row{}, err
		}

	case KindResult:
		if len(args) == 0 || args[0] == "" {
			return row{}, fmt.Errorf("%s: need arg1=results", KindResult)
		}
		var err error
		if r.results, err = accumulator.ParseResults(args[0]); err != nil {
			return row{}, err
		}

	default:
		if !event.IsKind(r.kind) {
			return row{}, fmt.Errorf("unknown kind %q", rec[1])
		}
		var err error
		if r.event, err = event.Parse(r.kind, r.date, args); err != nil {
			return row{}, err
		}
	}
	return r, nil
}

func field(rec []string, i int, name string) (decimal.Decimal, error) {
	if i >= len(rec) || rec[i] == "" {
		return decimal.Zero, &accumulator.InputError{Field: name, Reason: "is required"}
	}
	v, err := decimal.NewFromString(rec[i])
	if err != nil {
		return decimal.Zero, &accumulator.InputError{Field: name, Value: rec[i], Reason: "not a number"}
	}
	return v, nil
}

func parseCommissions(s, bare string) (operation.Commissions, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.Contains(s, "=") {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return nil, &accumulator.InputError{Field: "commissions", Value: s, Reason: "not a number"}
		}
		return operation.Commissions{bare: v}, nil
	}
	parsed, err := accumulator.ParseResults(s)
	if err != nil {
		return nil, &accumulator.InputError{Field: "commissions", Value: s, Reason: "expected name=value;..."}
	}
	return operation.Commissions(parsed), nil
}

// batch holds the rows of one day.
type batch struct {
	date string
	rows []row
}

func (b *batch) apply(ctx context.Context, acc *accumulator.Accumulator, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	container := &operation.Container{Date: b.date, Commissions: operation.Commissions{}}
	for _, r := range b.rows {
		switch {
		case r.op != nil:
			r.op.Asset = acc.Asset()
			container.Operations = append(container.Operations, r.op)
			container.Positions = append(container.Positions, &operation.Position{Operation: r.op, UpdatePosition: true})
		case r.kind == KindFees:
			for name, amount := range r.commissions {
				container.Commissions[name] = container.Commissions[name].Add(amount)
			}
		}
	}
	if len(container.Commissions) > 0 {
		if container.Volume().IsZero() {
			return fmt.Errorf("day %s: %s without traded volume", b.date, KindFees)
		}
		operation.ProrateCommissions(container)
	}

	// Every operation of the day is checked before the first one is
	// accumulated, so a bad row leaves the day untouched.
	for _, r := range b.rows {
		if r.op == nil {
			continue
		}
		for name, amount := range r.commissions {
			r.op.SetCommission(name, r.op.Commissions[name].Add(amount))
		}
		if err := r.op.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", r.line, err)
		}
	}

	for _, r := range b.rows {
		var err error
		switch {
		case r.op != nil:
			err = acc.AccumulateOperation(r.op)
		case r.kind == KindResult:
			acc.Accumulate(decimal.Zero, decimal.Zero, r.date, r.results)
		case r.event != nil:
			err = acc.AccumulateEvent(r.event)
		}
		if err != nil {
			return fmt.Errorf("row %d: %w", r.line, err)
		}
	}

	opts.logger().Debug("replay day",
		"asset", acc.Asset().Symbol,
		"date", b.date,
		"rows", len(b.rows),
		"quantity", acc.Quantity().String(),
		"price", acc.Price().String(),
	)
	return nil
}
