// Package ingest runs submissions through the full pipeline: parse the raw
// answers, validate against the form's rules, log rejections, and append
// accepted records to the ledger. Rejections are results, not errors; an
// error return means the store itself failed and nothing was decided.
package ingest

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/budgie-dev/budgie/internal/errorlog"
	"github.com/budgie-dev/budgie/internal/form"
	"github.com/budgie-dev/budgie/internal/id"
	"github.com/budgie-dev/budgie/internal/ledger"
	"github.com/budgie-dev/budgie/internal/model"
	"github.com/budgie-dev/budgie/internal/refs"
	"github.com/budgie-dev/budgie/internal/store"
	"github.com/budgie-dev/budgie/internal/validate"
)

// Result is the outcome of one submission.
type Result struct {
	Accepted     bool
	RecordID     int
	SubmissionID string
	Errors       []string
}

// Options configures an engine.
type Options struct {
	Currency        string
	DefaultPersonID int
	Now             func() time.Time
}

// Engine wires the pipeline stages over one store. It is safe for
// concurrent use; the HTTP front end runs one goroutine per request.
type Engine struct {
	store    store.Store
	refs     *refs.Service
	errlog   *errorlog.Log
	registry validate.Registry

	mu      sync.Mutex // guards ledgers
	ledgers map[string]*ledger.Service

	opts Options
	log  zerolog.Logger
}

// New builds an engine. The resolver registry is derived from the reference
// service; form configs refer to these names.
func New(st store.Store, rs *refs.Service, el *errorlog.Log, opts Options, log zerolog.Logger) *Engine {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.DefaultPersonID == 0 {
		opts.DefaultPersonID = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		store:  st,
		refs:   rs,
		errlog: el,
		registry: validate.Registry{
			"category":      rs.CategoryID,
			"paymentMethod": rs.PaymentMethodID,
			"person":        rs.PersonID,
		},
		ledgers: map[string]*ledger.Service{},
		opts:    opts,
		log:     log.With().Str("component", "ingest").Logger(),
	}
}

// Ledger returns the ledger service for a table, creating the table on first
// use.
func (e *Engine) Ledger(table string) (*ledger.Service, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if svc, ok := e.ledgers[table]; ok {
		return svc, nil
	}
	svc, err := ledger.New(e.store, table)
	if err != nil {
		return nil, err
	}
	e.ledgers[table] = svc
	return svc, nil
}

// Ingest runs one raw submission through the pipeline. An empty submissionID
// gets a generated one. The entry method tags how the record arrived.
func (e *Engine) Ingest(answers map[string]string, cfg *form.Config, submissionID string, method model.EntryMethod) (Result, error) {
	parsed := form.ParseAnswers(answers, cfg)
	return e.ingestParsed(parsed, cfg, submissionID, method)
}

// IngestRow is Ingest for a positional row with its header.
func (e *Engine) IngestRow(header, row []string, cfg *form.Config, submissionID string, method model.EntryMethod) (Result, error) {
	parsed := form.ParseRow(header, row, cfg)
	return e.ingestParsed(parsed, cfg, submissionID, method)
}

func (e *Engine) ingestParsed(parsed form.ParsedRecord, cfg *form.Config, submissionID string, method model.EntryMethod) (Result, error) {
	if strings.TrimSpace(submissionID) == "" {
		submissionID = id.NewSubmissionID()
	}

	rec, errs := validate.Validate(parsed, cfg, e.registry)
	if len(errs) > 0 {
		if err := e.logRejection(parsed, submissionID, errs); err != nil {
			return Result{}, err
		}
		e.log.Info().
			Str("submission_id", submissionID).
			Strs("errors", errs).
			Msg("submission rejected")
		return Result{SubmissionID: submissionID, Errors: errs}, nil
	}

	led, err := e.Ledger(cfg.Ledger)
	if err != nil {
		return Result{}, err
	}
	expense := ledger.Build(rec, ledger.BuildOptions{
		Now:             e.opts.Now(),
		Accounts:        e.refs,
		DefaultPersonID: e.opts.DefaultPersonID,
		Currency:        e.opts.Currency,
		EntryMethod:     method,
		SubmissionID:    submissionID,
	})
	stored, err := led.Append(expense)
	if err != nil {
		return Result{}, fmt.Errorf("storing submission %s: %w", submissionID, err)
	}

	e.log.Info().
		Str("submission_id", submissionID).
		Int("record_id", stored.ID).
		Str("ledger", cfg.Ledger).
		Msg("submission accepted")
	return Result{Accepted: true, RecordID: stored.ID, SubmissionID: submissionID}, nil
}

// logRejection records the raw text the submitter sent, not parsed values,
// so the operator sees what was actually typed.
func (e *Engine) logRejection(parsed form.ParsedRecord, submissionID string, errs []string) error {
	entry := errorlog.Entry{
		Timestamp:     e.opts.Now(),
		SubmissionID:  submissionID,
		Description:   parsed["description"],
		Amount:        errorlog.FormatAmount(parsed["amount"]),
		Category:      parsed["categoryName"],
		PaymentMethod: parsed["paymentMethodName"],
		Errors:        errs,
	}
	if err := e.errlog.Append(entry); err != nil {
		return fmt.Errorf("logging rejection %s: %w", submissionID, err)
	}
	return nil
}
