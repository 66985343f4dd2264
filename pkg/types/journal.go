package types

import (
	"errors"
	"fmt"
)

// Backend loads and saves the whole entry collection.
//
// Load returns ErrNoData when the backing file does not exist or is empty;
// callers treat that as an empty collection. Content that exists but cannot
// be parsed is reported as a *ParseError and is never treated as empty.
//
// Save replaces the stored collection. A failed Save leaves the previous
// file intact.
type Backend interface {
	Load() (Collection, error)
	Save(entries Collection) error
}

// Storage errors.
var (
	ErrNoData = errors.New("no journal data")
)

// Entry store errors.
var (
	ErrNotFound       = errors.New("entry not found")
	ErrDuplicateDate  = errors.New("entry already exists for date")
	ErrInvalidDate    = errors.New("invalid date format")
	ErrInvalidContent = errors.New("content must not be empty")
)

// ParseError reports a backing file that exists and is non-empty but does
// not hold a valid entry collection.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
