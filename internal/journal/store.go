package journal

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// Store runs entry operations against a Backend. Every call loads the
// collection fresh and, when it mutates, saves it back in full before
// returning. Store holds no entries between calls.
//
// Store is not safe for use by several processes on the same file.
type Store struct {
	backend types.Backend
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug tracing of store operations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns a Store backed by backend.
func NewStore(backend types.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current collection. A backend reporting ErrNoData yields
// an empty collection; parse and I/O errors are returned as is.
func (s *Store) Load() (types.Collection, error) {
	entries, err := s.backend.Load()
	if errors.Is(err, types.ErrNoData) {
		s.logger.Debug("journal has no data, starting empty")
		return types.Collection{}, nil
	}
	if err != nil {
		return nil, err
	}
	s.logger.Debug("journal loaded", "entries", len(entries))
	return entries, nil
}

func (s *Store) save(entries types.Collection) error {
	if err := s.backend.Save(entries); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	s.logger.Debug("journal saved", "entries", len(entries))
	return nil
}

// AddEntry creates the entry for date. Returns ErrDuplicateDate, leaving the
// existing entry untouched, if date already has one.
func (s *Store) AddEntry(date, content string) (types.Entry, error) {
	e := types.Entry{Date: date, Content: content}
	if err := e.Validate(); err != nil {
		return types.Entry{}, err
	}

	entries, err := s.Load()
	if err != nil {
		return types.Entry{}, err
	}
	updated, err := Add(entries, e)
	if err != nil {
		return types.Entry{}, err
	}
	if err := s.save(updated); err != nil {
		return types.Entry{}, err
	}
	s.logger.Debug("entry added", "date", date)
	return e, nil
}

// ViewEntry returns the entry for date. It never writes to the backend.
func (s *Store) ViewEntry(date string) (types.Entry, error) {
	if !types.ValidateDate(date) {
		return types.Entry{}, types.ErrInvalidDate
	}
	entries, err := s.Load()
	if err != nil {
		return types.Entry{}, err
	}
	return Find(entries, date)
}

// EditEntry replaces the content of the entry for date and returns it.
// Returns ErrNotFound if date has no entry.
func (s *Store) EditEntry(date, content string) (types.Entry, error) {
	if err := (types.Entry{Date: date, Content: content}).Validate(); err != nil {
		return types.Entry{}, err
	}

	entries, err := s.Load()
	if err != nil {
		return types.Entry{}, err
	}
	updated, e, err := Replace(entries, date, content)
	if err != nil {
		return types.Entry{}, err
	}
	if err := s.save(updated); err != nil {
		return types.Entry{}, err
	}
	s.logger.Debug("entry updated", "date", date)
	return e, nil
}

// DeleteEntry removes the entry for date. Returns ErrNotFound if date has
// no entry.
func (s *Store) DeleteEntry(date string) error {
	if !types.ValidateDate(date) {
		return types.ErrInvalidDate
	}

	entries, err := s.Load()
	if err != nil {
		return err
	}
	updated, err := Remove(entries, date)
	if err != nil {
		return err
	}
	if err := s.save(updated); err != nil {
		return err
	}
	s.logger.Debug("entry deleted", "date", date)
	return nil
}

// ListEntries returns every entry ordered by ascending date. An empty
// journal yields an empty slice.
func (s *Store) ListEntries() ([]types.Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}
	return Sorted(entries), nil
}
