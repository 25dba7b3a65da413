package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

const keysTable = "quantum_keys"

// keyRepository implements domain.KeyRepository using SQLite.
type keyRepository struct {
	db *sql.DB
}

func newKeyRepository(db *sql.DB) *keyRepository {
	return &keyRepository{db: db}
}

var _ domain.KeyRepository = (*keyRepository)(nil)

// Count returns the highest issued key ID.
func (r *keyRepository) Count() (uint64, error) {
	return maxID(r.db, keysTable)
}

// Get retrieves a key by ID.
func (r *keyRepository) Get(id domain.EntityID) (*domain.QuantumKey, error) {
	var m KeyModel
	err := r.db.QueryRow(
		`SELECT id, owner, public_key, expiration, revoked, revoked_at FROM quantum_keys WHERE id = ?`,
		int64(id),
	).Scan(&m.ID, &m.Owner, &m.PublicKey, &m.Expiration, &m.Revoked, &m.RevokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.RegistryKey, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}
	return m.toDomain(), nil
}

// Save inserts a new key (ID 0) or updates an existing one.
func (r *keyRepository) Save(key *domain.QuantumKey) error {
	m := toKeyModel(key)

	if key.ID() == 0 {
		var id uint64
		err := withTx(r.db, func(tx *sql.Tx) error {
			last, err := maxID(tx, keysTable)
			if err != nil {
				return err
			}
			id = last + 1
			_, err = tx.Exec(
				`INSERT INTO quantum_keys (id, owner, public_key, expiration, revoked, revoked_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				int64(id), m.Owner, m.PublicKey, m.Expiration, m.Revoked, m.RevokedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert key: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		key.SetID(domain.EntityID(id))
		return nil
	}

	result, err := r.db.Exec(
		`UPDATE quantum_keys SET revoked = ?, revoked_at = ? WHERE id = ?`,
		m.Revoked, m.RevokedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update key: %w", err)
	}
	return checkUpdated(result, domain.NotFound(domain.RegistryKey, key.ID()))
}
