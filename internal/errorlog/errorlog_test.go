package errorlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgie-dev/budgie/internal/store"
)

func TestAppendAndRead(t *testing.T) {
	st, err := store.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	log, err := New(st)
	require.NoError(t, err)

	entry := Entry{
		Timestamp:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		SubmissionID:  "sub_1",
		Description:   "Lunch",
		Amount:        "twelve",
		Category:      "Dining",
		PaymentMethod: "Cash",
		Errors:        []string{"amount must be a valid number.", "txnDate is required."},
	}
	require.NoError(t, log.Append(entry))

	entries, err := log.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestErrorsJoined(t *testing.T) {
	row := MarshalEntry(Entry{
		Timestamp: time.Now(),
		Errors:    []string{"a", "b", "c"},
	})
	assert.Equal(t, "a; b; c", row[colErrors])
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.50", FormatAmount(" 12.5 "))
	assert.Equal(t, "twelve", FormatAmount("twelve"))
}
