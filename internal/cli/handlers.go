// Command handlers: each validates its input, makes one store call and
// renders the result.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/journal/internal/journal"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// User-facing messages.
const (
	msgInvalidDate  = "Invalid date format. Please use YYYY-MM-DD."
	msgEmptyContent = "Journal entry cannot be empty."
	msgNotFound     = "Entry not found for the given date."
	msgDuplicate    = "An entry for %s already exists."
)

type handler struct {
	store         *journal.Store
	out           printer
	previewLength int
	now           func() time.Time
}

// fatal wraps store errors that are not user-facing.
func fatal(err error) error {
	var pe *types.ParseError
	if errors.As(err, &pe) {
		return sysError(fmt.Errorf("journal data is corrupt: %w", err))
	}
	return sysError(err)
}

// rejected prints the message for a user-facing store error and reports
// whether err was one.
func (h *handler) rejected(err error, date string) bool {
	switch {
	case errors.Is(err, types.ErrInvalidDate):
		h.out.notice(msgInvalidDate)
	case errors.Is(err, types.ErrInvalidContent):
		h.out.notice(msgEmptyContent)
	case errors.Is(err, types.ErrNotFound):
		h.out.notice(msgNotFound)
	case errors.Is(err, types.ErrDuplicateDate):
		h.out.notice(msgDuplicate, date)
	default:
		return false
	}
	return true
}

// add creates today's entry. The date always comes from the clock.
func (h *handler) add(content string) error {
	if !types.ValidateContent(content) {
		h.out.notice(msgEmptyContent)
		return nil
	}
	date := h.now().Format(types.DateLayout)

	e, err := h.store.AddEntry(date, content)
	if err != nil {
		if h.rejected(err, date) {
			return nil
		}
		return fatal(err)
	}

	if h.out.jsonMode {
		return h.out.json(e)
	}
	h.out.success("Entry for %s added.", date)
	return nil
}

func (h *handler) view(date string, full bool) error {
	if !types.ValidateDate(date) {
		h.out.notice(msgInvalidDate)
		return nil
	}

	e, err := h.store.ViewEntry(date)
	if err != nil {
		if h.rejected(err, date) {
			return nil
		}
		return fatal(err)
	}

	switch {
	case h.out.jsonMode:
		return h.out.json(e)
	case full:
		h.out.entryFull(e)
	default:
		h.out.entryLine(e, h.previewLength)
	}
	return nil
}

func (h *handler) edit(date, content string) error {
	if !types.ValidateDate(date) {
		h.out.notice(msgInvalidDate)
		return nil
	}
	if !types.ValidateContent(content) {
		h.out.notice(msgEmptyContent)
		return nil
	}

	e, err := h.store.EditEntry(date, content)
	if err != nil {
		if h.rejected(err, date) {
			return nil
		}
		return fatal(err)
	}

	if h.out.jsonMode {
		return h.out.json(e)
	}
	h.out.success("Entry for %s updated.", date)
	return nil
}

func (h *handler) remove(date string) error {
	if !types.ValidateDate(date) {
		h.out.notice(msgInvalidDate)
		return nil
	}

	if err := h.store.DeleteEntry(date); err != nil {
		if h.rejected(err, date) {
			return nil
		}
		return fatal(err)
	}

	if h.out.jsonMode {
		return h.out.json(map[string]string{"deleted": date})
	}
	h.out.success("Entry for %s deleted.", date)
	return nil
}

func (h *handler) list() error {
	entries, err := h.store.ListEntries()
	if err != nil {
		return fatal(err)
	}

	if h.out.jsonMode {
		return h.out.json(entries)
	}
	h.out.entryList(entries, h.previewLength)
	return nil
}
