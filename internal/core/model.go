package core

import (
	"time"
)

// Well-known dataset column names. Column headers are lower-cased at
// ingestion, so these are the only spellings the pipeline ever sees.
const (
	FieldEmail   = "email"
	FieldIndex   = "nro"
	FieldDate    = "pvm"
	FieldDueDate = "eräpäivä"
	FieldPaid    = "maksettu"
	FieldRef     = "viite"
	FieldAmount  = "summa"
)

// DateFormat is the day.month.year layout used by the dataset's date columns.
const DateFormat = "2.1.2006"

// Record is one row of the input dataset, keyed by lower-cased column name.
// Records are treated as immutable: derived views are made with WithField.
type Record map[string]string

// Get returns the value of a field, or the empty string if absent.
func (r Record) Get(key string) string {
	return r[key]
}

// Has reports whether the record carries the given field.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// WithField returns a copy of the record with one field overridden. The
// receiver is left untouched, so canonical filtered records never alias the
// display records handed to the renderer.
func (r Record) WithField(key, value string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	out[key] = value
	return out
}

// EmailGroup is an ordered, non-empty set of records that receive
// structurally identical messages. InfoHeader and InfoMsg are shown to the
// operator before the group is confirmed; they carry no other meaning.
type EmailGroup struct {
	Rows       []Record
	InfoHeader string
	InfoMsg    string
}

// Outcome is the per-record terminal result of a dispatch attempt.
type Outcome string

const (
	OutcomeOK      Outcome = "OK"
	OutcomeFailed  Outcome = "FAILED"
	OutcomeSkipped Outcome = "SKIPPED"
)

// HistoryEntry is one row of the optional send-history store.
type HistoryEntry struct {
	Recipient string
	Status    string
	Subject   string
	GroupInfo string
	DryRun    bool
	SentAt    time.Time
}
