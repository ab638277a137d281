package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanOperation(s scanner) (OperationRecord, error) {
	var (
		rec     OperationRecord
		results string
	)
	if err := s.Scan(
		&rec.ID,
		&rec.Asset,
		&rec.Date,
		&rec.Seq,
		&rec.Quantity,
		&rec.Price,
		&results,
	); err != nil {
		return OperationRecord{}, err
	}
	if err := json.Unmarshal([]byte(results), &rec.Results); err != nil {
		return OperationRecord{}, fmt.Errorf("decode results of %s: %w", rec.ID, err)
	}
	return rec, nil
}

// GetOperation returns a single operation record by ID.
func (j *SQLite) GetOperation(opID string) (OperationRecord, error) {
	row := j.db.QueryRow(`
		SELECT id, asset, date, seq, quantity, price, results
		FROM operations
		WHERE id = ?`, opID)

	rec, err := scanOperation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OperationRecord{}, fmt.Errorf("operation %q not found", opID)
		}
		return OperationRecord{}, err
	}
	return rec, nil
}

// ListOperationsBetween returns operations dated within [start, end),
// oldest first. Dates are YYYY-MM-DD strings, which order lexically.
func (j *SQLite) ListOperationsBetween(start, end string) ([]OperationRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, asset, date, seq, quantity, price, results
		FROM operations
		WHERE date >= ? AND date < ?
		ORDER BY date ASC, asset ASC, seq ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OperationRecord
	for rows.Next() {
		rec, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEventsBetween returns events dated within [start, end), oldest first.
func (j *SQLite) ListEventsBetween(start, end string) ([]EventRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, asset, date, seq, name
		FROM events
		WHERE date >= ? AND date < ?
		ORDER BY date ASC, asset ASC, seq ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var rec EventRecord
		if err := rows.Scan(&rec.ID, &rec.Asset, &rec.Date, &rec.Seq, &rec.Name); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PositionAsOf returns the last recorded position of asset on or before date.
func (j *SQLite) PositionAsOf(asset, date string) (PositionRecord, error) {
	row := j.db.QueryRow(`
		SELECT asset, date, quantity, price
		FROM positions
		WHERE asset = ? AND date <= ?
		ORDER BY date DESC
		LIMIT 1`, asset, date)

	var rec PositionRecord
	err := row.Scan(&rec.Asset, &rec.Date, &rec.Quantity, &rec.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PositionRecord{}, fmt.Errorf("no position for %s on or before %s: not found", asset, date)
		}
		return PositionRecord{}, err
	}
	return rec, nil
}
