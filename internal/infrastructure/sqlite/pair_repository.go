package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

const pairsTable = "entanglement_pairs"

// pairRepository implements domain.PairRepository using SQLite.
type pairRepository struct {
	db *sql.DB
}

func newPairRepository(db *sql.DB) *pairRepository {
	return &pairRepository{db: db}
}

var _ domain.PairRepository = (*pairRepository)(nil)

func (r *pairRepository) Count() (uint64, error) {
	return maxID(r.db, pairsTable)
}

func (r *pairRepository) Get(id domain.EntityID) (*domain.EntanglementPair, error) {
	var m PairModel
	err := r.db.QueryRow(
		`SELECT id, generator, recipient, status, generated_at, distributed_at FROM entanglement_pairs WHERE id = ?`,
		int64(id),
	).Scan(&m.ID, &m.Generator, &m.Recipient, &m.Status, &m.GeneratedAt, &m.DistributedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.RegistryPair, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pair: %w", err)
	}
	return m.toDomain(), nil
}

func (r *pairRepository) Save(pair *domain.EntanglementPair) error {
	m := toPairModel(pair)

	if pair.ID() == 0 {
		var id uint64
		err := withTx(r.db, func(tx *sql.Tx) error {
			last, err := maxID(tx, pairsTable)
			if err != nil {
				return err
			}
			id = last + 1
			_, err = tx.Exec(
				`INSERT INTO entanglement_pairs (id, generator, recipient, status, generated_at, distributed_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				int64(id), m.Generator, m.Recipient, m.Status, m.GeneratedAt, m.DistributedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert pair: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		pair.SetID(domain.EntityID(id))
		return nil
	}

	result, err := r.db.Exec(
		`UPDATE entanglement_pairs SET recipient = ?, status = ?, distributed_at = ? WHERE id = ?`,
		m.Recipient, m.Status, m.DistributedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pair: %w", err)
	}
	return checkUpdated(result, domain.NotFound(domain.RegistryPair, pair.ID()))
}
