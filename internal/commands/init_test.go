package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgie-dev/budgie/internal/config"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit(dir, "Santos Household", "David", true))

	assert.FileExists(t, filepath.Join(dir, "budgie.yaml"))
	assert.FileExists(t, filepath.Join(dir, "data", "categories.csv"))
	assert.FileExists(t, filepath.Join(dir, "data", "payment_methods.csv"))
	assert.FileExists(t, filepath.Join(dir, "data", "people.csv"))
	assert.FileExists(t, filepath.Join(dir, "data", "expenses.csv"))
	assert.DirExists(t, filepath.Join(dir, "import", "processed"))
	assert.DirExists(t, filepath.Join(dir, "forms"))

	cfg, err := config.Load(filepath.Join(dir, "budgie.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Santos Household", cfg.Household.Name)
	assert.Equal(t, "David", cfg.Household.PrimaryPerson)
}

func TestOpenProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Santos Household", "David", true))

	p, err := openProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "Santos Household", p.cfg.Household.Name)

	id, _ := p.refs.PersonID("David")
	assert.Equal(t, 1, id)
}

func TestOpenProjectMissingConfig(t *testing.T) {
	_, err := openProject(t.TempDir())
	assert.Error(t, err)
}
