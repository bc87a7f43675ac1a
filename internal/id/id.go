// Package id builds the identifiers used for duplicate detection: submission
// IDs from the form trigger and natural keys derived from row content.
package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewSubmissionID mints a submission ID for sources that do not supply one.
func NewSubmissionID() string {
	return "sub_" + uuid.NewString()
}

// SubmissionKey returns the dedupe key for a submission ID.
func SubmissionKey(submissionID string) string {
	return "sid:" + strings.TrimSpace(submissionID)
}

// NaturalKey returns the content-derived dedupe key for a row without a
// submission ID: date, amount at two decimal places, and the description
// lowercased and trimmed.
func NaturalKey(date time.Time, amount decimal.Decimal, description string) string {
	return fmt.Sprintf("nk:%s|%s|%s",
		date.Format("2006-01-02"),
		amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(description)))
}
