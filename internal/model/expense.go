package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies ledger entries.
type TransactionType string

const (
	TxnRegularExpense TransactionType = "Regular Expense"
	TxnLoanPayment    TransactionType = "Loan Payment"
)

// Status represents the review state of a ledger entry.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusReviewed Status = "Reviewed"
	StatusVoided   Status = "Voided"
)

// EntryMethod records how an entry reached the ledger.
type EntryMethod string

const (
	EntryMethodForm      EntryMethod = "Form"
	EntryMethodBatch     EntryMethod = "Batch"
	EntryMethodRecurring EntryMethod = "Recurring"
	EntryMethodManual    EntryMethod = "Manual"
)

// Expense is a single row in the expenses ledger. Column order is fixed and
// positional; downstream readers index by position, not by name.
type Expense struct {
	ID              int
	Date            time.Time // transaction date
	Time            string    // submission time of day, "15:04:05"
	Amount          decimal.Decimal
	Currency        string
	Type            TransactionType
	RelatedLoanID   int // 0 = none
	CategoryID      int
	Subcategory     string // free text; "Other" is valid and reviewed later
	PaymentMethodID int
	AccountID       int
	PersonID        int
	RelatedPersonID int // 0 = none
	Description     string
	ReceiptRef      string
	Location        string
	Status          Status
	EntryMethod     EntryMethod
	SubmissionID    string
	Created         time.Time
	Updated         time.Time
	Notes           string
}
