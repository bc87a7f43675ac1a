package ledger

import (
	"time"

	"github.com/budgie-dev/budgie/internal/model"
	"github.com/budgie-dev/budgie/internal/validate"
)

// AccountResolver maps a payment method to the account the money moves from.
type AccountResolver interface {
	AccountForPaymentMethod(paymentMethodID int) int
}

// BuildOptions carries the context a validated record does not contain.
type BuildOptions struct {
	Now             time.Time
	Accounts        AccountResolver
	DefaultPersonID int
	Currency        string
	EntryMethod     model.EntryMethod
	SubmissionID    string
}

// Build derives a complete expense from a validated record. The ID is left
// zero; Append assigns it. The primary-owner default applies to PersonID
// only; an absent related person stays zero and marshals as an empty cell.
func Build(rec validate.Record, opts BuildOptions) model.Expense {
	paymentMethodID := rec.ID("paymentMethodName")
	now := opts.Now.UTC()

	return model.Expense{
		Date:            rec.Date("txnDate"),
		Time:            now.Format("15:04:05"),
		Amount:          rec.Decimal("amount"),
		Currency:        opts.Currency,
		Type:            model.TxnRegularExpense,
		CategoryID:      rec.ID("categoryName"),
		Subcategory:     rec.String("subCategoryName"),
		PaymentMethodID: paymentMethodID,
		AccountID:       opts.Accounts.AccountForPaymentMethod(paymentMethodID),
		PersonID:        opts.DefaultPersonID,
		RelatedPersonID: rec.ID("relatedToName"),
		Description:     rec.String("description"),
		ReceiptRef:      rec.String("receiptImage"),
		Location:        rec.String("location"),
		Status:          model.StatusPending,
		EntryMethod:     opts.EntryMethod,
		SubmissionID:    opts.SubmissionID,
		Created:         now,
		Updated:         now,
		Notes:           rec.String("notes"),
	}
}
