package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// Backend persists the entry collection in a SQLite database file. The
// database is opened and closed inside each Load and Save call.
type Backend struct {
	path string
}

// NewBackend returns a Backend for the database at path. The file is created
// on the first Save.
func NewBackend(path string) *Backend {
	return &Backend{path: path}
}

// Path returns the database file the backend reads and writes.
func (b *Backend) Path() string { return b.path }

// Load reads every entry. A missing or zero-length file yields
// types.ErrNoData. A file that is not a journal database yields a
// *types.ParseError.
func (b *Backend) Load() (types.Collection, error) {
	info, err := os.Stat(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrNoData
		}
		return nil, fmt.Errorf("stat %s: %w", b.path, err)
	}
	if info.Size() == 0 {
		return nil, types.ErrNoData
	}

	// Surface permission problems as I/O errors before SQLite reports them
	// as a generic open failure.
	f, err := os.Open(b.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", b.path, err)
	}
	f.Close()

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(selectEntries)
	if err != nil {
		return nil, &types.ParseError{Path: b.path, Err: err}
	}
	defer rows.Close()

	entries := types.Collection{}
	for rows.Next() {
		var e types.Entry
		if err := rows.Scan(&e.Date, &e.Content); err != nil {
			return nil, &types.ParseError{Path: b.path, Err: err}
		}
		if err := e.Validate(); err != nil {
			return nil, &types.ParseError{Path: b.path, Err: fmt.Errorf("row %q: %w", e.Date, err)}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.ParseError{Path: b.path, Err: err}
	}
	return entries, nil
}

// Save replaces every row inside one transaction; a failure rolls back and
// leaves the previous contents in place.
func (b *Backend) Save(entries types.Collection) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createEntries); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteEntries); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	stmt, err := tx.Prepare(insertEntry)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Date, e.Content); err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}
