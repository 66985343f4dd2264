// Package sqlite implements the SQLite backend for the journal.
// Implements the same whole-collection contract as the JSON backend on top
// of a single database file.
package sqlite

// DatabaseFile is the name of the database inside the data directory.
const DatabaseFile = "journal.db"

// Schema DDL. The primary key enforces one entry per date at the storage
// level as well.
const (
	createEntries = `CREATE TABLE IF NOT EXISTS entries (
    date TEXT PRIMARY KEY,
    content TEXT NOT NULL
);`
)

const (
	selectEntries = `SELECT date, content FROM entries ORDER BY date`
	deleteEntries = `DELETE FROM entries`
	insertEntry   = `INSERT INTO entries (date, content) VALUES (?, ?)`
)
