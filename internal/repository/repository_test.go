package repository

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE leads (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    contact TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    destination TEXT NOT NULL DEFAULT '',
    travel_date TEXT NOT NULL DEFAULT '',
    days TEXT NOT NULL DEFAULT '',
    adult_count TEXT NOT NULL DEFAULT '',
    child_count TEXT NOT NULL DEFAULT '',
    budget TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'NEW',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE quotations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    trip_id TEXT NOT NULL UNIQUE,
    lead_id TEXT NOT NULL DEFAULT '',
    client_name TEXT NOT NULL DEFAULT '',
    destination TEXT NOT NULL DEFAULT '',
    travel_date TEXT NOT NULL DEFAULT '',
    days TEXT NOT NULL DEFAULT '',
    total_cost REAL NOT NULL DEFAULT 0,
    payload TEXT NOT NULL,
    submitted_at DATETIME NOT NULL
);

CREATE TABLE quotation_drafts (
    trip_id TEXT PRIMARY KEY,
    payload BLOB NOT NULL,
    updated_at DATETIME NOT NULL
);
`

// testDB opens an isolated in-memory database with the repository schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return db
}
