// Package recurring applies scheduled expense templates: rules whose next
// due date has passed are posted to the ledger and advanced.
package recurring

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Table is the recurring rules table name.
const Table = "recurring"

// Header is the recurring rules table header.
var Header = []string{
	"id", "description", "amount", "category_id", "payment_method_id",
	"person_id", "related_person_id", "frequency", "start", "end",
	"last_processed", "next_due", "is_active", "notes",
}

const (
	numFields          = 14
	colID              = 0
	colDescription     = 1
	colAmount          = 2
	colCategoryID      = 3
	colPaymentMethodID = 4
	colPersonID        = 5
	colRelatedPersonID = 6
	colFrequency       = 7
	colStart           = 8
	colEnd             = 9
	colLastProcessed   = 10
	colNextDue         = 11
	colIsActive        = 12
	colNotes           = 13
)

const dateLayout = "2006-01-02"

// Frequency is how often a rule fires.
type Frequency string

const (
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	BiWeekly  Frequency = "bi-weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// NextAfter returns the due date that follows d.
func (f Frequency) NextAfter(d time.Time) (time.Time, error) {
	switch f {
	case Daily:
		return d.AddDate(0, 0, 1), nil
	case Weekly:
		return d.AddDate(0, 0, 7), nil
	case BiWeekly:
		return d.AddDate(0, 0, 14), nil
	case Monthly:
		return d.AddDate(0, 1, 0), nil
	case Quarterly:
		return d.AddDate(0, 3, 0), nil
	case Yearly:
		return d.AddDate(1, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown frequency %q", f)
}

// Rule is one recurring expense template.
type Rule struct {
	ID              int
	Description     string
	Amount          decimal.Decimal
	CategoryID      int
	PaymentMethodID int
	PersonID        int
	RelatedPersonID int
	Frequency       Frequency
	Start           time.Time
	End             time.Time // zero means no end
	LastProcessed   time.Time // zero means never fired
	NextDue         time.Time
	Active          bool
	Notes           string
}

// Due reports whether the rule should fire at now.
func (r Rule) Due(now time.Time) bool {
	if !r.Active || r.NextDue.IsZero() {
		return false
	}
	if r.NextDue.After(now) {
		return false
	}
	if !r.End.IsZero() && r.NextDue.After(r.End) {
		return false
	}
	return true
}

// MarshalRule converts a rule to a table row.
func MarshalRule(r Rule) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(r.ID)
	row[colDescription] = r.Description
	row[colAmount] = r.Amount.StringFixed(2)
	row[colCategoryID] = strconv.Itoa(r.CategoryID)
	row[colPaymentMethodID] = strconv.Itoa(r.PaymentMethodID)
	row[colPersonID] = strconv.Itoa(r.PersonID)
	row[colRelatedPersonID] = strconv.Itoa(r.RelatedPersonID)
	row[colFrequency] = string(r.Frequency)
	row[colStart] = formatDate(r.Start)
	row[colEnd] = formatDate(r.End)
	row[colLastProcessed] = formatDate(r.LastProcessed)
	row[colNextDue] = formatDate(r.NextDue)
	row[colIsActive] = strconv.FormatBool(r.Active)
	row[colNotes] = r.Notes
	return row
}

// UnmarshalRule converts a table row to a rule.
func UnmarshalRule(record []string) (Rule, error) {
	if len(record) != numFields {
		return Rule{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var r Rule
	var err error

	if r.ID, err = strconv.Atoi(record[colID]); err != nil {
		return Rule{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}
	if r.Amount, err = decimal.NewFromString(record[colAmount]); err != nil {
		return Rule{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	for _, f := range []struct {
		dst *int
		col int
	}{
		{&r.CategoryID, colCategoryID},
		{&r.PaymentMethodID, colPaymentMethodID},
		{&r.PersonID, colPersonID},
		{&r.RelatedPersonID, colRelatedPersonID},
	} {
		if *f.dst, err = strconv.Atoi(record[f.col]); err != nil {
			return Rule{}, fmt.Errorf("parsing %s %q: %w", Header[f.col], record[f.col], err)
		}
	}
	for _, f := range []struct {
		dst *time.Time
		col int
	}{
		{&r.Start, colStart},
		{&r.End, colEnd},
		{&r.LastProcessed, colLastProcessed},
		{&r.NextDue, colNextDue},
	} {
		if *f.dst, err = parseDate(record[f.col]); err != nil {
			return Rule{}, fmt.Errorf("parsing %s %q: %w", Header[f.col], record[f.col], err)
		}
	}

	r.Description = record[colDescription]
	r.Frequency = Frequency(record[colFrequency])
	r.Active = record[colIsActive] == "true"
	r.Notes = record[colNotes]
	return r, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
