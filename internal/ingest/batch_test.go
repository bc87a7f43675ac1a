package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgie-dev/budgie/internal/form"
	"github.com/budgie-dev/budgie/internal/model"
)

type memSource struct {
	name   string
	header []string
	rows   []Row
}

func (m *memSource) Name() string { return m.name }

func (m *memSource) Header() ([]string, error) { return m.header, nil }

func (m *memSource) Rows() ([]Row, error) { return m.rows, nil }

var batchHeader = []string{"Date", "Amount", "Description", "Category", "Subcategory", "Payment Method"}

func batchRow(n int, sid string, values ...string) Row {
	return Row{Number: n, SubmissionID: sid, Values: values}
}

func TestReprocessImportsAndSummarizes(t *testing.T) {
	eng, _ := newTestEngine(t)

	src := &memSource{
		name:   "responses.csv",
		header: batchHeader,
		rows: []Row{
			batchRow(1, "s1", "2025-06-01", "12.50", "Lunch", "Dining", "Takeout", "Cash"),
			batchRow(2, "s2", "2025-06-02", "bad", "Broken", "Dining", "Takeout", "Cash"),
			batchRow(3, "s3", "2025-06-03", "30.00", "Groceries", "Groceries", "Weekly", "Debit Card"),
		},
	}

	var outcomes []Outcome
	summary, err := eng.Reprocess(src, form.ExpenseForm(), 0, 0, func(o Outcome) {
		outcomes = append(outcomes, o)
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 0, summary.Skipped)
	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].Result.Accepted)
	assert.False(t, outcomes[1].Result.Accepted)
	assert.True(t, outcomes[2].Result.Accepted)
}

func TestReprocessSkipsDuplicateSubmissionIDs(t *testing.T) {
	eng, _ := newTestEngine(t)

	res, err := eng.Ingest(validSubmission(), form.ExpenseForm(), "s1", model.EntryMethodForm)
	require.NoError(t, err)
	require.True(t, res.Accepted)

	src := &memSource{
		name:   "responses.csv",
		header: batchHeader,
		rows: []Row{
			batchRow(1, "s1", "2025-06-01", "12.50", "Lunch", "Dining", "Takeout", "Cash"),
			batchRow(2, "s2", "2025-06-03", "30.00", "Groceries", "Groceries", "Weekly", "Debit Card"),
		},
	}

	summary, err := eng.Reprocess(src, form.ExpenseForm(), 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Imported)

	led, err := eng.Ledger("expenses")
	require.NoError(t, err)
	all, err := led.ReadAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReprocessNaturalKeyDedupe(t *testing.T) {
	eng, _ := newTestEngine(t)

	// Two rows without submission IDs sharing date, amount (in different
	// lexical form), and description: the second is a duplicate.
	src := &memSource{
		name:   "responses.csv",
		header: batchHeader,
		rows: []Row{
			batchRow(1, "", "2025-06-01", "12.5", "Lunch at cafe", "Dining", "Takeout", "Cash"),
			batchRow(2, "", "2025-06-01", "12.50", "LUNCH AT CAFE", "Dining", "Takeout", "Cash"),
		},
	}

	summary, err := eng.Reprocess(src, form.ExpenseForm(), 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
}

func TestReprocessRowRange(t *testing.T) {
	eng, _ := newTestEngine(t)

	src := &memSource{
		name:   "responses.csv",
		header: batchHeader,
		rows: []Row{
			batchRow(1, "s1", "2025-06-01", "1.00", "One", "Dining", "Sub", "Cash"),
			batchRow(2, "s2", "2025-06-02", "2.00", "Two", "Dining", "Sub", "Cash"),
			batchRow(3, "s3", "2025-06-03", "3.00", "Three", "Dining", "Sub", "Cash"),
		},
	}

	summary, err := eng.Reprocess(src, form.ExpenseForm(), 2, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Imported)
}
