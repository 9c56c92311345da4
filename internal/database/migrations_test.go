package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_orders_meta.sql": {Data: []byte("SELECT 1;")},
		"migrations/001_init.sql":        {Data: []byte("SELECT 1;")},
		"migrations/README.md":           {Data: []byte("notes")},
		"migrations/old/003_skip.sql":    {Data: []byte("SELECT 1;")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_orders_meta.sql"}, files)
}

func TestMigrationFiles_Embedded(t *testing.T) {
	files, err := migrationFiles(migrationFS)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	_, err := migrationFiles(fstest.MapFS{})
	assert.Error(t, err)
}
