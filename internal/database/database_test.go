package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunMigrations(t *testing.T) {
	conn, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer conn.Close()

	m := NewMigrationManager(conn, zap.NewNop())
	require.NoError(t, m.RunMigrations())

	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)
	require.Equal(t, 1, migrations[0].Version)
	require.Equal(t, "001_init", migrations[0].Name)

	t.Run("second run is a no-op", func(t *testing.T) {
		require.NoError(t, m.RunMigrations())
		applied, err := m.GetAppliedMigrations()
		require.NoError(t, err)
		require.Len(t, applied, 3)

		version, err := m.Version()
		require.NoError(t, err)
		require.Equal(t, 3, version)
	})

	t.Run("foreign keys are enforced", func(t *testing.T) {
		_, err := conn.Exec(`INSERT INTO warehouse_elements (layout_id, label, element_type) VALUES (999, 'A', 'bin')`)
		require.Error(t, err)
	})
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "slotting.db")
	conn, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer conn.Close()

	var mode string
	require.NoError(t, conn.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)
}

func TestTransaction(t *testing.T) {
	conn, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Exec("CREATE TABLE t (v INTEGER)")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = Transaction(conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO t (v) VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM t").Scan(&n))
	require.Zero(t, n)
}
