package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"000001_create_lender_profiles.down.sql",
		"000001_create_lender_profiles.up.sql",
	}, names)

	up, err := fs.ReadFile(Migrations, MigrationsDir+"/000001_create_lender_profiles.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "definition    JSONB")
}
