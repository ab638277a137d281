package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordOperation stores the operation, replacing the one already stored
// at the same asset, date and seq. The stored ID is kept.
func (j *SQLite) RecordOperation(o OperationRecord) error {
	results, err := json.Marshal(o.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, err = j.db.Exec(`
		INSERT INTO operations
		(id, asset, date, seq, quantity, price, results)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(asset, date, seq) DO UPDATE SET
			quantity = excluded.quantity,
			price = excluded.price,
			results = excluded.results`,
		o.ID, o.Asset, o.Date, o.Seq, o.Quantity, o.Price, string(results),
	)
	return err
}

// RecordEvent stores the event, replacing the one already stored at the
// same asset, date and seq.
func (j *SQLite) RecordEvent(e EventRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO events
		(id, asset, date, seq, name)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(asset, date, seq) DO UPDATE SET
			name = excluded.name`,
		e.ID, e.Asset, e.Date, e.Seq, e.Name,
	)
	return err
}

// RecordPosition stores the position of the day, replacing an earlier
// one for the same asset and date.
func (j *SQLite) RecordPosition(p PositionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO positions
		(asset, date, quantity, price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(asset, date) DO UPDATE SET
			quantity = excluded.quantity,
			price = excluded.price`,
		p.Asset, p.Date, p.Quantity, p.Price,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
