// journal/schema.go
package journal

// Amounts are stored as TEXT to keep decimal values exact. Operations and
// events are unique per (asset, date, seq) so a log exported again
// replaces its rows.
const Schema = `
CREATE TABLE IF NOT EXISTS operations (
	id TEXT PRIMARY KEY,
	asset TEXT NOT NULL,
	date TEXT NOT NULL,
	seq INTEGER NOT NULL,
	quantity TEXT NOT NULL,
	price TEXT NOT NULL,
	results TEXT NOT NULL,
	UNIQUE (asset, date, seq)
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	asset TEXT NOT NULL,
	date TEXT NOT NULL,
	seq INTEGER NOT NULL,
	name TEXT NOT NULL,
	UNIQUE (asset, date, seq)
);

CREATE TABLE IF NOT EXISTS positions (
	asset TEXT NOT NULL,
	date TEXT NOT NULL,
	quantity TEXT NOT NULL,
	price TEXT NOT NULL,
	PRIMARY KEY (asset, date)
);

CREATE INDEX IF NOT EXISTS idx_operations_date ON operations(date);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
`
