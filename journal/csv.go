package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

var (
	operationsHeader = []string{"id", "asset", "date", "seq", "quantity", "price", "results"}
	eventsHeader     = []string{"id", "asset", "date", "seq", "name"}
	positionsHeader  = []string{"asset", "date", "quantity", "price"}
)

type CSVJournal struct {
	operations *csv.Writer
	events     *csv.Writer
	positions  *csv.Writer
	files      []*os.File
}

// NewCSV creates (or truncates) the three journal files and writes their
// headers.
func NewCSV(operationsPath, eventsPath, positionsPath string) (*CSVJournal, error) {
	j := &CSVJournal{}

	var err error
	if j.operations, err = j.create(operationsPath, operationsHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if j.events, err = j.create(eventsPath, eventsHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if j.positions, err = j.create(positionsPath, positionsHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) create(path string, header []string) (*csv.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	j.files = append(j.files, f)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	w.Flush()
	return w, w.Error()
}

func (j *CSVJournal) RecordOperation(o OperationRecord) error {
	return write(j.operations, []string{
		o.ID,
		o.Asset,
		o.Date,
		strconv.Itoa(o.Seq),
		o.Quantity.String(),
		o.Price.String(),
		o.Results.String(),
	})
}

func (j *CSVJournal) RecordEvent(e EventRecord) error {
	return write(j.events, []string{
		e.ID,
		e.Asset,
		e.Date,
		strconv.Itoa(e.Seq),
		e.Name,
	})
}

func (j *CSVJournal) RecordPosition(p PositionRecord) error {
	return write(j.positions, []string{
		p.Asset,
		p.Date,
		p.Quantity.String(),
		p.Price.String(),
	})
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.operations, j.events, j.positions} {
		w.Flush()
		if err := w.Error(); err != nil {
			j.closeFiles()
			return err
		}
	}
	return j.closeFiles()
}

func (j *CSVJournal) closeFiles() error {
	var first error
	for _, f := range j.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	j.files = nil
	return first
}

func write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
