package recurring

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/budgie-dev/budgie/internal/id"
	"github.com/budgie-dev/budgie/internal/ledger"
	"github.com/budgie-dev/budgie/internal/model"
	"github.com/budgie-dev/budgie/internal/store"
)

// Service posts due recurring rules to a ledger.
type Service struct {
	store    store.Store
	ledger   *ledger.Service
	accounts ledger.AccountResolver
	currency string
	log      zerolog.Logger
}

// NewService builds a service, creating the rules table if needed.
func NewService(st store.Store, led *ledger.Service, accounts ledger.AccountResolver, currency string, log zerolog.Logger) (*Service, error) {
	if !st.Exists(Table) {
		if err := st.Create(Table, Header); err != nil {
			return nil, fmt.Errorf("creating recurring table: %w", err)
		}
	}
	return &Service{
		store:    st,
		ledger:   led,
		accounts: accounts,
		currency: currency,
		log:      log.With().Str("component", "recurring").Logger(),
	}, nil
}

// Rules returns every rule with its table row number.
func (s *Service) Rules() ([]Rule, []int, error) {
	_, rows, err := s.store.Read(Table)
	if err != nil {
		return nil, nil, err
	}
	rules := make([]Rule, 0, len(rows))
	rowNums := make([]int, 0, len(rows))
	for i, rec := range rows {
		r, err := UnmarshalRule(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("recurring row %d: %w", i+2, err)
		}
		rules = append(rules, r)
		rowNums = append(rowNums, i+2)
	}
	return rules, rowNums, nil
}

// Add appends a rule, assigning it the next ID. A zero NextDue starts the
// schedule at Start.
func (s *Service) Add(r Rule) (Rule, error) {
	rules, _, err := s.Rules()
	if err != nil {
		return Rule{}, err
	}
	maxID := 0
	for _, existing := range rules {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	r.ID = maxID + 1
	if r.NextDue.IsZero() {
		r.NextDue = r.Start
	}
	if _, err := s.store.Append(Table, MarshalRule(r)); err != nil {
		return Rule{}, fmt.Errorf("adding recurring rule: %w", err)
	}
	return r, nil
}

// Process posts every due rule once per due date up to now, then advances
// its schedule. A rule several periods behind catches up in one run.
func (s *Service) Process(now time.Time) (int, error) {
	rules, rowNums, err := s.Rules()
	if err != nil {
		return 0, err
	}

	posted := 0
	for i, r := range rules {
		for r.Due(now) {
			expense := s.buildExpense(r, now)
			stored, err := s.ledger.Append(expense)
			if err != nil {
				return posted, fmt.Errorf("posting rule %d: %w", r.ID, err)
			}
			posted++
			s.log.Info().
				Int("rule_id", r.ID).
				Int("record_id", stored.ID).
				Str("due", r.NextDue.Format(dateLayout)).
				Msg("posted recurring expense")

			r.LastProcessed = r.NextDue
			next, err := r.Frequency.NextAfter(r.NextDue)
			if err != nil {
				return posted, fmt.Errorf("rule %d: %w", r.ID, err)
			}
			r.NextDue = next

			if err := s.store.UpdateCell(Table, rowNums[i], colLastProcessed, formatDate(r.LastProcessed)); err != nil {
				return posted, fmt.Errorf("updating rule %d: %w", r.ID, err)
			}
			if err := s.store.UpdateCell(Table, rowNums[i], colNextDue, formatDate(r.NextDue)); err != nil {
				return posted, fmt.Errorf("updating rule %d: %w", r.ID, err)
			}
		}
	}
	return posted, nil
}

func (s *Service) buildExpense(r Rule, now time.Time) model.Expense {
	return model.Expense{
		Date:            r.NextDue,
		Time:            now.UTC().Format("15:04:05"),
		Amount:          r.Amount,
		Currency:        s.currency,
		Type:            model.TxnRegularExpense,
		CategoryID:      r.CategoryID,
		PaymentMethodID: r.PaymentMethodID,
		AccountID:       s.accounts.AccountForPaymentMethod(r.PaymentMethodID),
		PersonID:        r.PersonID,
		RelatedPersonID: r.RelatedPersonID,
		Description:     r.Description,
		Status:          model.StatusPending,
		EntryMethod:     model.EntryMethodRecurring,
		SubmissionID:    id.NewSubmissionID(),
		Created:         now.UTC(),
		Updated:         now.UTC(),
		Notes:           r.Notes,
	}
}
