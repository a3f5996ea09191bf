package userstore

import (
	"io/fs"
	"testing"

	"github.com/goliatone/go-userstore/internal/memory"
	"github.com/stretchr/testify/require"
)

func TestNewWiresService(t *testing.T) {
	svc := New(Config{Sessions: memory.NewStore()})
	require.True(t, svc.Ready())
}

func TestGetMigrationsFSCarriesEveryDialect(t *testing.T) {
	fsys := GetMigrationsFS()
	for _, dir := range []string{"data/sql", "data/sql/sqlite"} {
		entries, err := fs.ReadDir(fsys, dir)
		require.NoError(t, err)
		require.NotEmpty(t, entries, dir)
	}
}
