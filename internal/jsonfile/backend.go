// Package jsonfile implements the JSON file backend for the journal.
// The collection is stored as a single JSON array of {date, content}
// objects and replaced atomically on every save.
package jsonfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// FileName is the name of the journal file inside the data directory.
const FileName = "journal_entries.json"

// Backend persists the entry collection to a JSON file.
type Backend struct {
	path string
}

// NewBackend returns a Backend that reads and writes path. The file and its
// parent directory are created on the first Save.
func NewBackend(path string) *Backend {
	return &Backend{path: path}
}

// Path returns the file the backend reads and writes.
func (b *Backend) Path() string { return b.path }

// Load reads the whole file. A missing or zero-length file yields
// types.ErrNoData. Anything else that is not a JSON array of valid entries
// yields a *types.ParseError.
func (b *Backend) Load() (types.Collection, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrNoData
		}
		return nil, fmt.Errorf("reading %s: %w", b.path, err)
	}
	if len(data) == 0 {
		return nil, types.ErrNoData
	}

	entries, err := decodeEntries(data)
	if err != nil {
		return nil, &types.ParseError{Path: b.path, Err: err}
	}
	return entries, nil
}

// Record keys, matched exactly.
const (
	keyDate    = "date"
	keyContent = "content"
)

// decodeEntries parses a JSON array of records that carry exactly the date
// and content keys. Extra, missing or differently cased keys are rejected so
// a later save cannot drop data the journal does not understand.
func decodeEntries(data []byte) (types.Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var records []map[string]json.RawMessage
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the entry array")
	}

	// A literal null document is an empty collection.
	entries := make(types.Collection, 0, len(records))
	for i, rec := range records {
		e, err := decodeEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeEntry(rec map[string]json.RawMessage) (types.Entry, error) {
	if rec == nil {
		return types.Entry{}, errors.New("not an object")
	}
	for k := range rec {
		if k != keyDate && k != keyContent {
			return types.Entry{}, fmt.Errorf("unknown field %q", k)
		}
	}

	var e types.Entry
	if err := decodeString(rec, keyDate, &e.Date); err != nil {
		return types.Entry{}, err
	}
	if err := decodeString(rec, keyContent, &e.Content); err != nil {
		return types.Entry{}, err
	}
	if err := e.Validate(); err != nil {
		return types.Entry{}, err
	}
	return e, nil
}

func decodeString(rec map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := rec[key]
	if !ok {
		return fmt.Errorf("missing field %q", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// Save writes entries with the temp-file, fsync, rename pattern so readers
// see either the old file or the new one, never a partial write.
func (b *Backend) Save(entries types.Collection) error {
	if entries == nil {
		entries = types.Collection{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	return writeAtomic(b.path, data)
}

// writeAtomic replaces path with data. The temp file lives in the same
// directory so the final rename stays on one filesystem.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".journal-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing entries: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
