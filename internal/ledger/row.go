// Package ledger stores expense records in a fixed 22-column table and
// builds new records from validated submissions.
package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgie-dev/budgie/internal/model"
)

// Column positions in the expense ledger. The order is part of the data
// contract and must not change.
const (
	ColID = iota
	ColDate
	ColTime
	ColAmount
	ColCurrency
	ColTransactionType
	ColRelatedLoanID
	ColCategoryID
	ColSubcategory
	ColPaymentMethodID
	ColAccountID
	ColPersonID
	ColRelatedPersonID
	ColDescription
	ColReceiptRef
	ColLocation
	ColStatus
	ColEntryMethod
	ColSubmissionID
	ColCreated
	ColUpdated
	ColNotes

	numColumns
)

// Header is the expense ledger header row.
var Header = []string{
	"id", "date", "time", "amount", "currency", "transaction_type",
	"related_loan_id", "category_id", "subcategory", "payment_method_id",
	"account_id", "person_id", "related_person_id", "description",
	"receipt_ref", "location", "status", "entry_method", "submission_id",
	"created", "updated", "notes",
}

const dateLayout = "2006-01-02"

// MarshalExpense renders an expense as a ledger row. Zero reference IDs and
// zero timestamps become empty cells.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numColumns)
	row[ColID] = strconv.Itoa(e.ID)
	row[ColDate] = e.Date.Format(dateLayout)
	row[ColTime] = e.Time
	row[ColAmount] = e.Amount.StringFixed(2)
	row[ColCurrency] = e.Currency
	row[ColTransactionType] = string(e.Type)
	row[ColRelatedLoanID] = formatID(e.RelatedLoanID)
	row[ColCategoryID] = formatID(e.CategoryID)
	row[ColSubcategory] = e.Subcategory
	row[ColPaymentMethodID] = formatID(e.PaymentMethodID)
	row[ColAccountID] = formatID(e.AccountID)
	row[ColPersonID] = formatID(e.PersonID)
	row[ColRelatedPersonID] = formatID(e.RelatedPersonID)
	row[ColDescription] = e.Description
	row[ColReceiptRef] = e.ReceiptRef
	row[ColLocation] = e.Location
	row[ColStatus] = string(e.Status)
	row[ColEntryMethod] = string(e.EntryMethod)
	row[ColSubmissionID] = e.SubmissionID
	row[ColCreated] = formatTimestamp(e.Created)
	row[ColUpdated] = formatTimestamp(e.Updated)
	row[ColNotes] = e.Notes
	return row
}

// UnmarshalExpense parses a ledger row back into an expense.
func UnmarshalExpense(row []string) (model.Expense, error) {
	if len(row) != numColumns {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numColumns, len(row))
	}

	var e model.Expense
	var err error

	if e.ID, err = strconv.Atoi(row[ColID]); err != nil {
		return model.Expense{}, fmt.Errorf("parsing id %q: %w", row[ColID], err)
	}
	if e.Date, err = time.Parse(dateLayout, row[ColDate]); err != nil {
		return model.Expense{}, fmt.Errorf("parsing date %q: %w", row[ColDate], err)
	}
	if e.Amount, err = decimal.NewFromString(row[ColAmount]); err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", row[ColAmount], err)
	}
	for _, f := range []struct {
		dst *int
		col int
	}{
		{&e.RelatedLoanID, ColRelatedLoanID},
		{&e.CategoryID, ColCategoryID},
		{&e.PaymentMethodID, ColPaymentMethodID},
		{&e.AccountID, ColAccountID},
		{&e.PersonID, ColPersonID},
		{&e.RelatedPersonID, ColRelatedPersonID},
	} {
		if *f.dst, err = parseID(row[f.col]); err != nil {
			return model.Expense{}, fmt.Errorf("parsing %s %q: %w", Header[f.col], row[f.col], err)
		}
	}
	if e.Created, err = parseTimestamp(row[ColCreated]); err != nil {
		return model.Expense{}, fmt.Errorf("parsing created %q: %w", row[ColCreated], err)
	}
	if e.Updated, err = parseTimestamp(row[ColUpdated]); err != nil {
		return model.Expense{}, fmt.Errorf("parsing updated %q: %w", row[ColUpdated], err)
	}

	e.Time = row[ColTime]
	e.Currency = row[ColCurrency]
	e.Type = model.TransactionType(row[ColTransactionType])
	e.Subcategory = row[ColSubcategory]
	e.Description = row[ColDescription]
	e.ReceiptRef = row[ColReceiptRef]
	e.Location = row[ColLocation]
	e.Status = model.Status(row[ColStatus])
	e.EntryMethod = model.EntryMethod(row[ColEntryMethod])
	e.SubmissionID = row[ColSubmissionID]
	e.Notes = row[ColNotes]
	return e, nil
}

func formatID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

func parseID(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
