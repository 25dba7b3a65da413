package sqlite

import (
	"database/sql"
	"fmt"
)

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// withTx runs fn inside a transaction, committing on success and rolling back
// on any error.
func withTx(conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// maxID returns the highest ID in table, which is also the registry count since
// IDs are dense. table is always a package constant.
func maxID(q queryRower, table string) (uint64, error) {
	var id int64
	//nolint:gosec // G202: table is a package constant
	if err := q.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM ` + table).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return uint64(id), nil
}

// checkUpdated turns a zero-row UPDATE into a NotFound error.
func checkUpdated(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
