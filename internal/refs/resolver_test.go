package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/budgie-dev/budgie/internal/model"
)

var testRows = []model.Reference{
	{ID: 1, Name: "Cash", Active: true},
	{ID: 2, Name: "GCash", Active: true},
	{ID: 3, Name: "Credit Card", Active: true},
	{ID: 4, Name: "Old Wallet", Active: false},
	{ID: 5, Name: "cash", Active: true},
}

func TestResolveEmptyReturnsDefault(t *testing.T) {
	id, tier := Resolve(testRows, "", Options{})
	assert.Equal(t, 1, id)
	assert.Equal(t, MatchDefault, tier)

	id, tier = Resolve(testRows, "   ", Options{DefaultID: 9})
	assert.Equal(t, 9, id)
	assert.Equal(t, MatchDefault, tier)
}

func TestResolveExactBeatsCaseInsensitive(t *testing.T) {
	// "cash" matches row 5 exactly even though row 1 matches case-insensitively.
	id, tier := Resolve(testRows, "cash", Options{})
	assert.Equal(t, 5, id)
	assert.Equal(t, MatchExact, tier)

	id, tier = Resolve(testRows, "Cash", Options{})
	assert.Equal(t, 1, id)
	assert.Equal(t, MatchExact, tier)
}

func TestResolveCaseInsensitive(t *testing.T) {
	id, tier := Resolve(testRows, "gcash", Options{})
	assert.Equal(t, 2, id)
	assert.Equal(t, MatchCaseInsensitive, tier)
}

func TestResolveWhitespaceInsensitive(t *testing.T) {
	id, tier := Resolve(testRows, "  credit  card ", Options{})
	assert.Equal(t, 3, id)
	assert.Equal(t, MatchNoSpace, tier)

	// Padded input matches through the whitespace tier, never the default.
	id, tier = Resolve([]model.Reference{{ID: 1, Name: "Cash", Active: true}}, "  cash  ", Options{})
	assert.Equal(t, 1, id)
	assert.Equal(t, MatchNoSpace, tier)

	id, tier = Resolve(testRows, "CREDITCARD", Options{})
	assert.Equal(t, 3, id)
	assert.Equal(t, MatchNoSpace, tier)
}

func TestResolveMissReturnsDefault(t *testing.T) {
	id, tier := Resolve(testRows, "Bitcoin", Options{})
	assert.Equal(t, 1, id)
	assert.Equal(t, MatchNone, tier)

	id, tier = Resolve(testRows, "Bitcoin", Options{DefaultID: 7})
	assert.Equal(t, 7, id)
	assert.Equal(t, MatchNone, tier)
}

func TestResolveActiveOnlySkipsInactive(t *testing.T) {
	id, tier := Resolve(testRows, "Old Wallet", Options{ActiveOnly: true})
	assert.Equal(t, 1, id)
	assert.Equal(t, MatchNone, tier)

	id, tier = Resolve(testRows, "Old Wallet", Options{})
	assert.Equal(t, 4, id)
	assert.Equal(t, MatchExact, tier)
}
