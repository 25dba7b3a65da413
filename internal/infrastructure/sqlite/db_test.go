package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// TestNewDB_CreatesDirectory verifies that NewDB creates the parent directory if missing.
func TestNewDB_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "ledger.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err, "NewDB should succeed even with nested non-existent directories")
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err, "Directory should exist after NewDB")
	require.True(t, info.IsDir(), "Should be a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0700), info.Mode().Perm(), "Directory should have 0700 permissions")
	}
}

// TestNewDB_RunsMigrations verifies that every registry table exists after NewDB.
func TestNewDB_RunsMigrations(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"quantum_keys", "entanglement_pairs", "bandwidth_listings", "proposals", "proposal_votes"} {
		var name string
		err = db.conn.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "%s table should exist after migrations", table)
	}

	var version int64
	require.NoError(t, db.conn.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	require.Equal(t, int64(1), version)
}

// TestNewDB_MigrationsAreIdempotent verifies that reopening does not reapply migrations
// or lose data.
func TestNewDB_MigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	pair, err := domain.NewEntanglementPair("alice", 1)
	require.NoError(t, err)
	require.NoError(t, db1.PairRepository().Save(pair))
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	var migrations int
	require.NoError(t, db2.conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&migrations))
	require.Equal(t, 1, migrations)

	count, err := db2.PairRepository().Count()
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)
}

// TestNewDB_PreMigrationBackup verifies that a .bak file is created before migrations
// when an existing database file is present.
func TestNewDB_PreMigrationBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err, "First NewDB should succeed")
	_, err = os.Stat(dbPath + ".bak")
	require.True(t, os.IsNotExist(err), "No backup on first open")

	listing, err := domain.NewBandwidthListing("seller", 10, 5, 100)
	require.NoError(t, err)
	require.NoError(t, db1.ListingRepository().Save(listing))
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err, "Second NewDB should succeed")
	defer db2.Close()

	info, err := os.Stat(dbPath + ".bak")
	require.NoError(t, err, "Backup file should exist after second NewDB")
	require.Greater(t, info.Size(), int64(0), "Backup file should have content")
}

// TestNewDB_Pragmas verifies the connection pragmas.
func TestNewDB_Pragmas(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()

	var journalMode string
	require.NoError(t, db.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	require.Equal(t, "wal", journalMode, "Journal mode should be WAL")

	var foreignKeys int
	require.NoError(t, db.conn.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys, "Foreign keys should be enabled (1)")

	var busyTimeout int
	require.NoError(t, db.conn.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.Equal(t, 5000, busyTimeout, "Busy timeout should be 5000ms")
}

// TestNewDB_ForeignKeyEnforced verifies that votes cannot reference a missing proposal.
func TestNewDB_ForeignKeyEnforced(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.conn.Exec("INSERT INTO proposal_votes (proposal_id, voter, support) VALUES (42, 'bob', 1)")
	require.Error(t, err)
}

// TestDB_Close verifies that connection closes cleanly.
func TestDB_Close(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)

	require.NoError(t, db.Close(), "Close should succeed")
	require.Error(t, db.conn.Ping(), "Ping should fail after Close")
}

// TestDB_Connection verifies that Connection returns the underlying *sql.DB.
func TestDB_Connection(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	conn := db.Connection()
	require.IsType(t, (*sql.DB)(nil), conn)
	require.NoError(t, conn.Ping())
	require.Equal(t, dbPath, db.Path())
}

// TestDB_Repositories verifies that every registry accessor is wired.
func TestDB_Repositories(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()

	repos := db.Repositories()
	require.NotNil(t, repos.Keys)
	require.NotNil(t, repos.Pairs)
	require.NotNil(t, repos.Listings)
	require.NotNil(t, repos.Proposals)
}

// TestNewDB_MultipleCalls verifies that opening the same database twice is safe.
func TestNewDB_MultipleCalls(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db1.Close()

	db2, err := NewDB(dbPath)
	require.NoError(t, err, "Second NewDB should succeed (WAL mode allows concurrent access)")
	defer db2.Close()

	key, err := domain.NewQuantumKey("alice", make([]byte, domain.PublicKeySize), 10)
	require.NoError(t, err)
	require.NoError(t, db1.KeyRepository().Save(key))

	count, err := db2.KeyRepository().Count()
	require.NoError(t, err)
	require.Equal(t, uint64(1), count, "second connection sees committed writes")
}

// TestNewDB_InvalidPath verifies that NewDB returns an error when the parent
// directory cannot be created.
func TestNewDB_InvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewDB(filepath.Join(blocker, "ledger.db"))
	require.Error(t, err, "NewDB should fail when a file occupies the directory path")
}
