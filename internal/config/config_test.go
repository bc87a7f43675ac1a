package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Santos Household", "David")
	cfg.Server.AllowOrigins = []string{"http://localhost:5173"}

	path := filepath.Join(t.TempDir(), "budgie.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Household.Name, got.Household.Name)
	assert.Equal(t, cfg.Household.PrimaryPerson, got.Household.PrimaryPerson)
	assert.Equal(t, cfg.Household.Currency, got.Household.Currency)
	assert.Equal(t, cfg.Ledger.Table, got.Ledger.Table)
	assert.Equal(t, cfg.Server.Port, got.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, got.Server.AllowOrigins)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Santos Household", "David")

	assert.Equal(t, "Santos Household", cfg.Household.Name)
	assert.Equal(t, "David", cfg.Household.PrimaryPerson)
	assert.Equal(t, "USD", cfg.Household.Currency)
	assert.Equal(t, 1, cfg.Household.FallbackPersonID)
	assert.Equal(t, "data", cfg.Ledger.DataDir)
	assert.Equal(t, "import", cfg.Ledger.ImportDir)
	assert.Equal(t, "expenses", cfg.Ledger.Table)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Git.AutoCommit)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgie.yaml")
	minimal := "household:\n  name: Santos Household\n"
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Household.Currency)
	assert.Equal(t, "expenses", got.Ledger.Table)
	assert.Equal(t, 8080, got.Server.Port)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Santos Household", "David")
	path := filepath.Join(t.TempDir(), "budgie.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Santos Household")
	assert.Contains(t, contents, "primary_person: David")
	assert.Contains(t, contents, "currency: USD")
	assert.Contains(t, contents, "auto_commit: true")
}
