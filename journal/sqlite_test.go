package journal

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/trade/accumulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('operations','events','positions')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["operations"])
	assert.True(t, found["events"])
	assert.True(t, found["positions"])
}

func TestSQLiteRecordOperation(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	rec := OperationRecord{
		ID:       "OP1",
		Asset:    "GOOG",
		Date:     "2024-01-03",
		Seq:      1,
		Quantity: dec("-50"),
		Price:    dec("16.125"),
		Results:  accumulator.Results{"trades": dec("306.25")},
	}
	require.NoError(t, j.RecordOperation(rec))

	got, err := j.GetOperation("OP1")
	require.NoError(t, err)

	assert.Equal(t, "OP1", got.ID)
	assert.Equal(t, "GOOG", got.Asset)
	assert.Equal(t, "2024-01-03", got.Date)
	assert.Equal(t, 1, got.Seq)
	assert.True(t, rec.Quantity.Equal(got.Quantity))
	assert.True(t, rec.Price.Equal(got.Price))
	assert.True(t, rec.Results.Equal(got.Results))
}

func TestSQLiteDuplicateOperationID(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	rec := OperationRecord{ID: "OP1", Asset: "GOOG", Date: "2024-01-03", Results: accumulator.Results{}}
	require.NoError(t, j.RecordOperation(rec))

	rec.Seq = 1
	assert.Error(t, j.RecordOperation(rec))
}

func TestSQLiteRecordOperationReplacesSameSeq(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	first := OperationRecord{ID: "OP1", Asset: "GOOG", Date: "2024-01-03", Quantity: dec("1"), Price: dec("10"),
		Results: accumulator.Results{"trades": dec("0")}}
	second := first
	second.ID = "OP2"
	second.Price = dec("12")
	require.NoError(t, j.RecordOperation(first))
	require.NoError(t, j.RecordOperation(second))

	got, err := j.ListOperationsBetween("2024-01-01", "2024-02-01")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "OP1", got[0].ID)
	assert.True(t, dec("12").Equal(got[0].Price))

	require.NoError(t, j.RecordEvent(EventRecord{ID: "E1", Asset: "GOOG", Date: "2024-01-04", Name: "split 2:1"}))
	require.NoError(t, j.RecordEvent(EventRecord{ID: "E2", Asset: "GOOG", Date: "2024-01-04", Name: "split 3:1"}))

	events, err := j.ListEventsBetween("2024-01-01", "2024-02-01")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "split 3:1", events[0].Name)
}

func TestSQLiteRecordPositionUpserts(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	require.NoError(t, j.RecordPosition(PositionRecord{Asset: "GOOG", Date: "2024-01-03", Quantity: dec("100"), Price: dec("10")}))
	require.NoError(t, j.RecordPosition(PositionRecord{Asset: "GOOG", Date: "2024-01-03", Quantity: dec("50"), Price: dec("10")}))

	got, err := j.PositionAsOf("GOOG", "2024-01-03")
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(got.Quantity))
	assert.True(t, dec("10").Equal(got.Price))
}
