package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/infrastructure/sqlite"
)

// NewTestDB opens a migrated SQLite ledger in a temp directory. It is closed
// when the test ends.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "qnet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
