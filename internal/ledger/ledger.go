package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/budgie-dev/budgie/internal/id"
	"github.com/budgie-dev/budgie/internal/model"
	"github.com/budgie-dev/budgie/internal/store"
)

// Service manages one expense ledger table. Its mutex makes ID allocation
// atomic with the append that follows, so concurrent writers cannot mint the
// same ID.
type Service struct {
	store store.Store
	table string
	mu    sync.Mutex
}

// New returns a service over the named ledger table, creating the table if it
// does not exist yet.
func New(st store.Store, table string) (*Service, error) {
	if !st.Exists(table) {
		if err := st.Create(table, Header); err != nil {
			return nil, fmt.Errorf("creating ledger %s: %w", table, err)
		}
	}
	return &Service{store: st, table: table}, nil
}

// Table returns the ledger's table name.
func (s *Service) Table() string { return s.table }

// ReadAll returns every expense in the ledger, in file order.
func (s *Service) ReadAll() ([]model.Expense, error) {
	_, rows, err := s.store.Read(s.table)
	if err != nil {
		return nil, err
	}
	expenses := make([]model.Expense, 0, len(rows))
	for i, row := range rows {
		e, err := UnmarshalExpense(row)
		if err != nil {
			return nil, fmt.Errorf("ledger %s row %d: %w", s.table, i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// Append assigns the record the next ID (max existing + 1) and writes it.
// The ID on the passed expense is ignored. Returns the stored expense.
func (s *Service) Append(e model.Expense) (model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.nextIDLocked()
	if err != nil {
		return model.Expense{}, err
	}
	e.ID = next
	if _, err := s.store.Append(s.table, MarshalExpense(e)); err != nil {
		return model.Expense{}, fmt.Errorf("appending to ledger %s: %w", s.table, err)
	}
	return e, nil
}

// NextID returns max existing ID + 1, or 1 for an empty ledger. IDs stay
// monotonic even after high rows are removed out of band, because allocation
// scans values rather than counting rows.
func (s *Service) NextID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextIDLocked()
}

func (s *Service) nextIDLocked() (int, error) {
	expenses, err := s.ReadAll()
	if err != nil {
		return 0, err
	}
	maxID := 0
	for _, e := range expenses {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1, nil
}

// ExistingKeys returns the duplicate-detection key set for the whole ledger:
// one submission-ID key per row that has one, plus one natural key per row.
func (s *Service) ExistingKeys() (map[string]bool, error) {
	expenses, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(expenses)*2)
	for _, e := range expenses {
		if strings.TrimSpace(e.SubmissionID) != "" {
			keys[id.SubmissionKey(e.SubmissionID)] = true
		}
		keys[id.NaturalKey(e.Date, e.Amount, e.Description)] = true
	}
	return keys, nil
}
