package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgie-dev/budgie/internal/form"
	"github.com/budgie-dev/budgie/internal/id"
	"github.com/budgie-dev/budgie/internal/model"
	"github.com/budgie-dev/budgie/internal/validate"
)

// Source yields archived form responses for reprocessing.
type Source interface {
	// Name identifies the source in logs and summaries, usually a filename.
	Name() string
	// Header returns the label row.
	Header() ([]string, error)
	// Rows returns the data rows in order. Row numbers are 1-based over the
	// data rows (the header is not counted).
	Rows() ([]Row, error)
}

// Row is one archived response.
type Row struct {
	Number       int
	SubmissionID string
	Values       []string
}

// Outcome reports what happened to one row.
type Outcome struct {
	Row          int
	SubmissionID string
	Skipped      bool
	Result       Result
}

// Summary aggregates a batch run.
type Summary struct {
	Source    string
	Processed int
	Imported  int
	Skipped   int
	Rejected  int
}

// Reprocess feeds a source's rows through the pipeline, skipping rows already
// in the ledger. A row is a duplicate when its submission ID is already
// stored, or, for rows without one, when an existing row shares its date,
// amount, and description. from/to restrict to a 1-based row range; zero
// means unbounded. fn, when non-nil, receives one outcome per processed row
// as it happens.
func (e *Engine) Reprocess(src Source, cfg *form.Config, from, to int, fn func(Outcome)) (Summary, error) {
	summary := Summary{Source: src.Name()}

	header, err := src.Header()
	if err != nil {
		return summary, fmt.Errorf("reading %s header: %w", src.Name(), err)
	}
	rows, err := src.Rows()
	if err != nil {
		return summary, fmt.Errorf("reading %s rows: %w", src.Name(), err)
	}

	led, err := e.Ledger(cfg.Ledger)
	if err != nil {
		return summary, err
	}
	seen, err := led.ExistingKeys()
	if err != nil {
		return summary, fmt.Errorf("loading existing keys: %w", err)
	}

	for _, row := range rows {
		if from > 0 && row.Number < from {
			continue
		}
		if to > 0 && row.Number > to {
			continue
		}
		summary.Processed++

		outcome := Outcome{Row: row.Number, SubmissionID: row.SubmissionID}

		parsed := form.ParseRow(header, row.Values, cfg)
		if key, ok := dedupeKey(row.SubmissionID, parsed); ok && seen[key] {
			outcome.Skipped = true
			summary.Skipped++
			e.emit(fn, outcome)
			continue
		}

		result, err := e.ingestParsed(parsed, cfg, row.SubmissionID, model.EntryMethodBatch)
		if err != nil {
			return summary, fmt.Errorf("row %d: %w", row.Number, err)
		}
		outcome.SubmissionID = result.SubmissionID
		outcome.Result = result

		if result.Accepted {
			summary.Imported++
			seen[id.SubmissionKey(result.SubmissionID)] = true
			if key, ok := naturalKey(parsed); ok {
				seen[key] = true
			}
		} else {
			summary.Rejected++
		}
		e.emit(fn, outcome)
	}

	return summary, nil
}

// dedupeKey picks the key a row is matched on: the submission ID when
// present, else the natural key from its raw values. A row whose values do
// not parse has no key; validation will reject it downstream.
func dedupeKey(submissionID string, parsed form.ParsedRecord) (string, bool) {
	if sid := strings.TrimSpace(submissionID); sid != "" {
		return id.SubmissionKey(sid), true
	}
	return naturalKey(parsed)
}

func naturalKey(parsed form.ParsedRecord) (string, bool) {
	desc := strings.TrimSpace(parsed["description"])
	if desc == "" {
		return "", false
	}
	date, ok := validate.ParseDate(strings.TrimSpace(parsed["txnDate"]))
	if !ok {
		return "", false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(parsed["amount"]))
	if err != nil {
		return "", false
	}
	return id.NaturalKey(date, amount, desc), true
}

func (e *Engine) emit(fn func(Outcome), o Outcome) {
	if fn != nil {
		fn(o)
	}
}
