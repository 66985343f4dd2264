// Package journal implements the entry store: pure operations over an entry
// collection and a Store that runs each operation as load, mutate, save
// against a types.Backend.
package journal

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// Add returns a new collection with e appended.
// Returns ErrDuplicateDate if an entry for e.Date already exists.
func Add(c types.Collection, e types.Entry) (types.Collection, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if lo.ContainsBy(c, byDate(e.Date)) {
		return nil, types.ErrDuplicateDate
	}
	out := make(types.Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, e), nil
}

// Find returns the entry for date. Returns ErrNotFound if there is none.
func Find(c types.Collection, date string) (types.Entry, error) {
	e, ok := lo.Find(c, byDate(date))
	if !ok {
		return types.Entry{}, types.ErrNotFound
	}
	return e, nil
}

// Replace returns a new collection in which the entry for date carries
// content, along with the updated entry. Only the first match is touched;
// the date is never changed. Returns ErrNotFound if there is no entry.
func Replace(c types.Collection, date, content string) (types.Collection, types.Entry, error) {
	if !types.ValidateContent(content) {
		return nil, types.Entry{}, types.ErrInvalidContent
	}
	_, i, ok := lo.FindIndexOf(c, byDate(date))
	if !ok {
		return nil, types.Entry{}, types.ErrNotFound
	}
	out := c.Clone()
	out[i].Content = content
	return out, out[i], nil
}

// Remove returns a new collection without the entry for date. Only the
// first match is removed. Returns ErrNotFound if there is no entry.
func Remove(c types.Collection, date string) (types.Collection, error) {
	_, i, ok := lo.FindIndexOf(c, byDate(date))
	if !ok {
		return nil, types.ErrNotFound
	}
	return slices.Delete(c.Clone(), i, i+1), nil
}

// Sorted returns a copy of c ordered by ascending date.
func Sorted(c types.Collection) types.Collection {
	out := c.Clone()
	// YYYY-MM-DD sorts lexically in date order.
	slices.SortStableFunc(out, func(a, b types.Entry) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

func byDate(date string) func(types.Entry) bool {
	return func(e types.Entry) bool { return e.Date == date }
}
