package types

// DateLayout is the canonical textual form of an entry date.
const DateLayout = "2006-01-02"

// Entry is a single journal record.
// Date is the key: a Collection holds at most one Entry per Date.
type Entry struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Validate checks that the entry satisfies the date-format and non-empty
// content invariants. It returns ErrInvalidDate or ErrInvalidContent.
func (e Entry) Validate() error {
	if !ValidateDate(e.Date) {
		return ErrInvalidDate
	}
	if !ValidateContent(e.Content) {
		return ErrInvalidContent
	}
	return nil
}

// Collection is the full set of entries held by a backend.
// Order is not meaningful; see Index for key lookup.
type Collection []Entry

// Index returns the position of the first entry with the given date, or -1.
func (c Collection) Index(date string) int {
	for i := range c {
		if c[i].Date == date {
			return i
		}
	}
	return -1
}

// Clone returns a copy that can be modified without affecting c.
// The clone of a nil collection is an empty, non-nil collection.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
