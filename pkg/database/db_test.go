package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	db, err := Open(Config{Path: Memory})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "schema must apply twice")

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	_, err = db.Exec(`INSERT INTO series (name, norm_key, publisher_id) VALUES ('X', 'x', 42)`)
	assert.Error(t, err, "dangling publisher must be rejected")
}

func TestOpenCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "comics.db")

	db, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(db))

	_, err = os.Stat(path)
	assert.NoError(t, err)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("COMICSDB_DB_PATH", "/tmp/elsewhere.db")
	assert.Equal(t, "/tmp/elsewhere.db", DefaultConfig().Path)

	t.Setenv("COMICSDB_DB_PATH", "")
	assert.Equal(t, filepath.Join(".comicsdb", "comics.db"), filepath.Join(filepath.Base(filepath.Dir(DefaultConfig().Path)), filepath.Base(DefaultConfig().Path)))
}
