// Package sqlite provides the SQLite-backed registry repositories for the ledger.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// BusyTimeout is how long a connection waits on a locked database.
const BusyTimeout = 5 * time.Second

// DB owns the SQLite connection and hands out repositories bound to it.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (creating if needed) the database at path and applies pending
// migrations. An existing file is copied to path+".bak" first.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+".bak"); err != nil {
			return nil, fmt.Errorf("failed to back up database: %w", err)
		}
		log.Debug(log.CatDB, "Backed up database before migration", "path", path+".bak")
	}

	conn, err := sql.Open("sqlite3", dataSourceName(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	applied, err := migrateUp(conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info(log.CatDB, "Opened ledger database", "path", path, "migrations", applied)
	return &DB{conn: conn, path: path}, nil
}

func dataSourceName(path string) string {
	return fmt.Sprintf(
		"file:%s?_txlock=immediate&_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(wal)",
		path, BusyTimeout.Milliseconds(),
	)
}

// migrateUp applies every embedded migration newer than the recorded schema
// version. Each migration runs in its own transaction together with its
// version row. Returns the number of migrations applied.
func migrateUp(conn *sql.DB) (int, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}
	defer func() { _ = src.Close() }()

	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int64
	if err := conn.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	applied := 0
	version, err := src.First()
	for err == nil {
		if int64(version) > current {
			if err := applyMigration(conn, src, version); err != nil {
				return applied, err
			}
			applied++
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return applied, fmt.Errorf("failed to iterate migrations: %w", err)
	}
	return applied, nil
}

type upReader interface {
	ReadUp(version uint) (io.ReadCloser, string, error)
}

func applyMigration(conn *sql.DB, src upReader, version uint) error {
	r, identifier, err := src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(string(body)); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", version, identifier, err)
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
		int64(version), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", version, err)
	}

	log.Debug(log.CatDB, "Applied migration", "version", version, "name", identifier)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // G304: path is the configured database file
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600) //nolint:gosec // G304: sibling of the database file
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// KeyRepository returns the quantum key registry.
func (db *DB) KeyRepository() domain.KeyRepository {
	return newKeyRepository(db.conn)
}

// PairRepository returns the entanglement pair registry.
func (db *DB) PairRepository() domain.PairRepository {
	return newPairRepository(db.conn)
}

// ListingRepository returns the bandwidth listing registry.
func (db *DB) ListingRepository() domain.ListingRepository {
	return newListingRepository(db.conn)
}

// ProposalRepository returns the governance proposal registry.
func (db *DB) ProposalRepository() domain.ProposalRepository {
	return newProposalRepository(db.conn)
}

// Repositories returns all four registries bound to this database.
func (db *DB) Repositories() domain.Repositories {
	return domain.Repositories{
		Keys:      db.KeyRepository(),
		Pairs:     db.PairRepository(),
		Listings:  db.ListingRepository(),
		Proposals: db.ProposalRepository(),
	}
}
