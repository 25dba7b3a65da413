package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

const listingsTable = "bandwidth_listings"

// listingRepository implements domain.ListingRepository using SQLite.
type listingRepository struct {
	db *sql.DB
}

func newListingRepository(db *sql.DB) *listingRepository {
	return &listingRepository{db: db}
}

var _ domain.ListingRepository = (*listingRepository)(nil)

func (r *listingRepository) Count() (uint64, error) {
	return maxID(r.db, listingsTable)
}

func (r *listingRepository) Get(id domain.EntityID) (*domain.BandwidthListing, error) {
	var m ListingModel
	err := r.db.QueryRow(
		`SELECT id, seller, amount, price, expiration, status, buyer, sold_at FROM bandwidth_listings WHERE id = ?`,
		int64(id),
	).Scan(&m.ID, &m.Seller, &m.Amount, &m.Price, &m.Expiration, &m.Status, &m.Buyer, &m.SoldAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.RegistryListing, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return m.toDomain(), nil
}

func (r *listingRepository) Save(listing *domain.BandwidthListing) error {
	m := toListingModel(listing)

	if listing.ID() == 0 {
		var id uint64
		err := withTx(r.db, func(tx *sql.Tx) error {
			last, err := maxID(tx, listingsTable)
			if err != nil {
				return err
			}
			id = last + 1
			_, err = tx.Exec(
				`INSERT INTO bandwidth_listings (id, seller, amount, price, expiration, status, buyer, sold_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				int64(id), m.Seller, m.Amount, m.Price, m.Expiration, m.Status, m.Buyer, m.SoldAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert listing: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		listing.SetID(domain.EntityID(id))
		return nil
	}

	result, err := r.db.Exec(
		`UPDATE bandwidth_listings SET status = ?, buyer = ?, sold_at = ? WHERE id = ?`,
		m.Status, m.Buyer, m.SoldAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return checkUpdated(result, domain.NotFound(domain.RegistryListing, listing.ID()))
}
