package refs

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/budgie-dev/budgie/internal/model"
	"github.com/budgie-dev/budgie/internal/store"
)

// Service provides in-memory name resolution over the reference tables.
// Tables are read once at load. Safe for concurrent use: the HTTP front end
// resolves lookups and appends new rows from per-request goroutines.
type Service struct {
	store store.Store
	log   zerolog.Logger

	mu             sync.RWMutex
	categories     []model.Reference
	paymentMethods []model.Reference
	people         []model.Reference
}

// Load reads the three reference tables from the store.
func Load(st store.Store, log zerolog.Logger) (*Service, error) {
	s := &Service{store: st, log: log.With().Str("component", "refs").Logger()}

	var err error
	if s.categories, err = readTable(st, TableCategories, unmarshalCategory); err != nil {
		return nil, err
	}
	if s.paymentMethods, err = readTable(st, TablePaymentMethods, unmarshalPaymentMethod); err != nil {
		return nil, err
	}
	if s.people, err = readTable(st, TablePeople, unmarshalPerson); err != nil {
		return nil, err
	}
	return s, nil
}

func readTable(st store.Store, table string, unmarshal func([]string) (model.Reference, error)) ([]model.Reference, error) {
	_, rows, err := st.Read(table)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", table, err)
	}
	refs := make([]model.Reference, 0, len(rows))
	for i, rec := range rows {
		r, err := unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", table, i+2, err)
		}
		refs = append(refs, r)
	}
	return refs, nil
}

// Categories returns a copy of all category rows, active and inactive.
func (s *Service) Categories() []model.Reference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRefs(s.categories)
}

// PaymentMethods returns a copy of all payment method rows.
func (s *Service) PaymentMethods() []model.Reference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRefs(s.paymentMethods)
}

// People returns a copy of all people rows.
func (s *Service) People() []model.Reference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRefs(s.people)
}

func copyRefs(rows []model.Reference) []model.Reference {
	out := make([]model.Reference, len(rows))
	copy(out, rows)
	return out
}

// CategoryID resolves a category name against active rows.
func (s *Service) CategoryID(name string) (int, MatchTier) {
	return s.resolve(TableCategories, name)
}

// PaymentMethodID resolves a payment method name against active rows.
func (s *Service) PaymentMethodID(name string) (int, MatchTier) {
	return s.resolve(TablePaymentMethods, name)
}

// PersonID resolves a person name against active rows.
func (s *Service) PersonID(name string) (int, MatchTier) {
	return s.resolve(TablePeople, name)
}

func (s *Service) resolve(table, name string) (int, MatchTier) {
	s.mu.RLock()
	var rows []model.Reference
	switch table {
	case TableCategories:
		rows = s.categories
	case TablePaymentMethods:
		rows = s.paymentMethods
	case TablePeople:
		rows = s.people
	}
	id, tier := Resolve(rows, name, Options{ActiveOnly: true})
	s.mu.RUnlock()

	// Lookup misses are the main operational pain point; trace every hit too.
	s.log.Debug().
		Str("table", table).
		Str("name", name).
		Int("id", id).
		Stringer("tier", tier).
		Msg("resolved reference")
	if tier == MatchNone {
		s.log.Warn().Str("table", table).Str("name", name).Int("default_id", id).
			Msg("reference not found, using default")
	}
	return id, tier
}

// AccountForPaymentMethod returns the account linked to a payment method,
// or 1 when the method has no linked account or is unknown.
func (s *Service) AccountForPaymentMethod(paymentMethodID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pm := range s.paymentMethods {
		if pm.ID == paymentMethodID {
			if pm.AccountID == 0 {
				return 1
			}
			return pm.AccountID
		}
	}
	return 1
}

// AddPerson appends a new person row (next ID = max+1) and returns its ID.
func (s *Service) AddPerson(name, relationship, notes string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := nextRefID(s.people)
	row := []string{strconv.Itoa(id), name, relationship, formatBool(true), notes}
	if _, err := s.store.Append(TablePeople, row); err != nil {
		return 0, fmt.Errorf("adding person: %w", err)
	}
	s.people = append(s.people, model.Reference{ID: id, Name: name, Relationship: relationship, Active: true, Notes: notes})
	s.log.Info().Int("id", id).Str("name", name).Msg("added person")
	return id, nil
}

// AddCategory appends a new category row and returns its ID.
func (s *Service) AddCategory(name, notes string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := nextRefID(s.categories)
	row := []string{strconv.Itoa(id), name, formatBool(true), notes}
	if _, err := s.store.Append(TableCategories, row); err != nil {
		return 0, fmt.Errorf("adding category: %w", err)
	}
	s.categories = append(s.categories, model.Reference{ID: id, Name: name, Active: true, Notes: notes})
	s.log.Info().Int("id", id).Str("name", name).Msg("added category")
	return id, nil
}

func nextRefID(rows []model.Reference) int {
	maxID := 0
	for _, r := range rows {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}
