// Package types defines the Entry and Collection types, the Backend
// interface, configuration, and the standard errors for the journal.
//
// Entries are keyed by their date in YYYY-MM-DD form. A Collection holds at
// most one Entry per date; backends persist a Collection as a whole.
package types
