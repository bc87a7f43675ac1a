package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *CSVStore {
	t.Helper()
	s, err := NewCSVStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestCreateAndRead(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Create("categories", []string{"id", "name", "is_active"}))
	assert.True(t, s.Exists("categories"))

	header, rows, err := s.Read("categories")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "is_active"}, header)
	assert.Empty(t, rows)
}

func TestCreateExisting(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("t", []string{"id"}))
	assert.Error(t, s.Create("t", []string{"id"}))
}

func TestReadMissingTable(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.Read("nope")
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestAppendReturnsRowNumber(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("t", []string{"id", "name"}))

	n, err := s.Append("t", []string{"1", "Cash"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Append("t", []string{"2", "GCash"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, rows, err := s.Read("t")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2", "GCash"}, rows[1])
}

func TestAppendFieldCountMismatch(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("t", []string{"id", "name"}))
	_, err := s.Append("t", []string{"1"})
	assert.Error(t, err)
}

func TestUpdateCell(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("t", []string{"id", "name"}))
	_, err := s.Append("t", []string{"1", "Cash"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateCell("t", 2, 1, "Cash - David"))

	_, rows, err := s.Read("t")
	require.NoError(t, err)
	assert.Equal(t, "Cash - David", rows[0][1])
}

func TestUpdateCellOutOfRange(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("t", []string{"id"}))
	assert.Error(t, s.UpdateCell("t", 5, 0, "x"))
	assert.Error(t, s.UpdateCell("t", 2, 3, "x"))
}
