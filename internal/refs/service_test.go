package refs

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgie-dev/budgie/internal/store"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	st, err := store.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, Seed(st, "David"))

	svc, err := Load(st, zerolog.Nop())
	require.NoError(t, err)
	return svc, st
}

func TestLoadAndResolve(t *testing.T) {
	svc, _ := newTestService(t)

	id, tier := svc.CategoryID("Groceries")
	assert.Equal(t, 2, id)
	assert.Equal(t, MatchExact, tier)

	id, tier = svc.PaymentMethodID("credit card")
	assert.Equal(t, 3, id)
	assert.Equal(t, MatchCaseInsensitive, tier)

	id, tier = svc.PersonID("")
	assert.Equal(t, 1, id)
	assert.Equal(t, MatchDefault, tier)
}

func TestAccountForPaymentMethod(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, 3, svc.AccountForPaymentMethod(3))
	// Unknown payment method falls back to account 1.
	assert.Equal(t, 1, svc.AccountForPaymentMethod(99))
}

func TestAddPerson(t *testing.T) {
	svc, st := newTestService(t)

	id, err := svc.AddPerson("Maria", "spouse", "")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	// Visible immediately without reload.
	got, tier := svc.PersonID("maria")
	assert.Equal(t, 2, got)
	assert.Equal(t, MatchCaseInsensitive, tier)

	// And persisted.
	reloaded, err := Load(st, zerolog.Nop())
	require.NoError(t, err)
	got, tier = reloaded.PersonID("Maria")
	assert.Equal(t, 2, got)
	assert.Equal(t, MatchExact, tier)
}

func TestConcurrentResolveAndAdd(t *testing.T) {
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		n := i
		go func() {
			defer wg.Done()
			_, err := svc.AddPerson(fmt.Sprintf("Person %d", n), "relative", "")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			svc.PersonID("David")
			svc.People()
		}()
	}
	wg.Wait()

	// All adds landed with distinct IDs.
	people := svc.People()
	assert.Len(t, people, 9)
	ids := map[int]bool{}
	for _, p := range people {
		assert.False(t, ids[p.ID], "duplicate id %d", p.ID)
		ids[p.ID] = true
	}
}

func TestAddCategory(t *testing.T) {
	svc, _ := newTestService(t)

	id, err := svc.AddCategory("Travel", "")
	require.NoError(t, err)
	assert.Equal(t, 9, id)

	got, tier := svc.CategoryID("Travel")
	assert.Equal(t, 9, got)
	assert.Equal(t, MatchExact, tier)
}
