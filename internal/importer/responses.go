package importer

import (
	"strings"

	"github.com/budgie-dev/budgie/internal/ingest"
)

// submissionIDLabels are header labels recognized as the submission ID
// column, checked case-insensitively.
var submissionIDLabels = []string{"submission id", "submission_id", "response id"}

// Responses is a parsed response file: a header row plus data rows. It
// implements ingest.Source. If the header carries a submission ID column,
// that column is lifted onto each row and excluded from the field values.
type Responses struct {
	name   string
	header []string
	rows   []ingest.Row
}

// NewResponses builds a source from raw records, detecting the submission ID
// column from the header.
func NewResponses(name string, header []string, records [][]string) *Responses {
	sidCol := -1
	for i, label := range header {
		if isSubmissionIDLabel(label) {
			sidCol = i
			break
		}
	}

	outHeader := header
	if sidCol >= 0 {
		outHeader = dropColumn(header, sidCol)
	}

	rows := make([]ingest.Row, 0, len(records))
	for i, rec := range records {
		row := ingest.Row{Number: i + 1}
		if sidCol >= 0 && sidCol < len(rec) {
			row.SubmissionID = strings.TrimSpace(rec[sidCol])
			row.Values = dropColumn(rec, sidCol)
		} else {
			row.Values = rec
		}
		rows = append(rows, row)
	}
	return &Responses{name: name, header: outHeader, rows: rows}
}

func (r *Responses) Name() string { return r.name }

func (r *Responses) Header() ([]string, error) { return r.header, nil }

func (r *Responses) Rows() ([]ingest.Row, error) { return r.rows, nil }

func isSubmissionIDLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, want := range submissionIDLabels {
		if l == want {
			return true
		}
	}
	return false
}

func dropColumn(row []string, col int) []string {
	out := make([]string, 0, len(row)-1)
	out = append(out, row[:col]...)
	if col+1 < len(row) {
		out = append(out, row[col+1:]...)
	}
	return out
}
