// Package errorlog records rejected submissions in an append-only table so
// an operator can review and re-enter them. Logging a rejection never blocks
// ingestion of later submissions.
package errorlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgie-dev/budgie/internal/store"
)

// Table is the validation error table name.
const Table = "validation_errors"

// Header is the validation error table header.
var Header = []string{
	"timestamp", "submission_id", "description", "amount",
	"category", "payment_method", "errors",
}

const (
	numFields        = 7
	colTimestamp     = 0
	colSubmissionID  = 1
	colDescription   = 2
	colAmount        = 3
	colCategory      = 4
	colPaymentMethod = 5
	colErrors        = 6
)

// Entry is one rejected submission. Description, amount, and the reference
// names carry whatever raw text the submitter provided, valid or not.
type Entry struct {
	Timestamp     time.Time
	SubmissionID  string
	Description   string
	Amount        string
	Category      string
	PaymentMethod string
	Errors        []string
}

// Log appends and reads validation error entries.
type Log struct {
	store store.Store
}

// New returns a log over the store, creating the table if needed.
func New(st store.Store) (*Log, error) {
	if !st.Exists(Table) {
		if err := st.Create(Table, Header); err != nil {
			return nil, fmt.Errorf("creating error log: %w", err)
		}
	}
	return &Log{store: st}, nil
}

// MarshalEntry converts an Entry to a table row. Errors are joined with "; ".
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colSubmissionID] = e.SubmissionID
	row[colDescription] = e.Description
	row[colAmount] = e.Amount
	row[colCategory] = e.Category
	row[colPaymentMethod] = e.PaymentMethod
	row[colErrors] = strings.Join(e.Errors, "; ")
	return row
}

// UnmarshalEntry converts a table row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	return Entry{
		Timestamp:     ts,
		SubmissionID:  record[colSubmissionID],
		Description:   record[colDescription],
		Amount:        record[colAmount],
		Category:      record[colCategory],
		PaymentMethod: record[colPaymentMethod],
		Errors:        strings.Split(record[colErrors], "; "),
	}, nil
}

// Append writes one entry.
func (l *Log) Append(e Entry) error {
	if _, err := l.store.Append(Table, MarshalEntry(e)); err != nil {
		return fmt.Errorf("appending error log entry: %w", err)
	}
	return nil
}

// Read returns all entries in log order.
func (l *Log) Read() ([]Entry, error) {
	_, rows, err := l.store.Read(Table)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for i, rec := range rows {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FormatAmount renders a raw amount string the way accepted rows render
// theirs, when it parses; otherwise it is kept verbatim for review.
func FormatAmount(raw string) string {
	if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
		return d.StringFixed(2)
	}
	return raw
}
