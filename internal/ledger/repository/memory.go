// Package repository provides in-memory implementations of the ledger's
// registry repositories.
package repository

import (
	"sync"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// entity is the subset of behavior the store needs from a domain record.
type entity[T any] interface {
	ID() domain.EntityID
	SetID(id domain.EntityID)
	Clone() T
}

// ===========================================================================
// memoryStore
// ===========================================================================

// memoryStore is a dense, append-only ID space. Record i lives at records[i-1],
// so Count is simply len(records). It is thread-safe using sync.RWMutex.
type memoryStore[T entity[T]] struct {
	mu       sync.RWMutex
	registry domain.Registry
	records  []T
}

func newMemoryStore[T entity[T]](registry domain.Registry) *memoryStore[T] {
	return &memoryStore[T]{registry: registry}
}

func (s *memoryStore[T]) Count() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(len(s.records)), nil
}

func (s *memoryStore[T]) Get(id domain.EntityID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	if id == 0 || uint64(id) > uint64(len(s.records)) {
		return zero, domain.NotFound(s.registry, id)
	}
	return s.records[id-1].Clone(), nil
}

func (s *memoryStore[T]) Save(record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.ID()
	if id == 0 {
		record.SetID(domain.EntityID(len(s.records) + 1))
		s.records = append(s.records, record.Clone())
		return nil
	}
	if uint64(id) > uint64(len(s.records)) {
		return domain.NotFound(s.registry, id)
	}
	s.records[id-1] = record.Clone()
	return nil
}

// Reset clears all state from the store. Useful for test setup/teardown.
func (s *memoryStore[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

// ===========================================================================
// Typed repositories
// ===========================================================================

// MemoryKeyRepository is an in-memory implementation of domain.KeyRepository.
type MemoryKeyRepository struct {
	*memoryStore[*domain.QuantumKey]
}

// NewMemoryKeyRepository creates an empty key registry.
func NewMemoryKeyRepository() *MemoryKeyRepository {
	return &MemoryKeyRepository{newMemoryStore[*domain.QuantumKey](domain.RegistryKey)}
}

// MemoryPairRepository is an in-memory implementation of domain.PairRepository.
type MemoryPairRepository struct {
	*memoryStore[*domain.EntanglementPair]
}

// NewMemoryPairRepository creates an empty pair registry.
func NewMemoryPairRepository() *MemoryPairRepository {
	return &MemoryPairRepository{newMemoryStore[*domain.EntanglementPair](domain.RegistryPair)}
}

// MemoryListingRepository is an in-memory implementation of domain.ListingRepository.
type MemoryListingRepository struct {
	*memoryStore[*domain.BandwidthListing]
}

// NewMemoryListingRepository creates an empty listing registry.
func NewMemoryListingRepository() *MemoryListingRepository {
	return &MemoryListingRepository{newMemoryStore[*domain.BandwidthListing](domain.RegistryListing)}
}

// MemoryProposalRepository is an in-memory implementation of domain.ProposalRepository.
type MemoryProposalRepository struct {
	*memoryStore[*domain.Proposal]
}

// NewMemoryProposalRepository creates an empty proposal registry.
func NewMemoryProposalRepository() *MemoryProposalRepository {
	return &MemoryProposalRepository{newMemoryStore[*domain.Proposal](domain.RegistryProposal)}
}

// NewMemoryRepositories returns a fresh set of in-memory registries.
func NewMemoryRepositories() domain.Repositories {
	return domain.Repositories{
		Keys:      NewMemoryKeyRepository(),
		Pairs:     NewMemoryPairRepository(),
		Listings:  NewMemoryListingRepository(),
		Proposals: NewMemoryProposalRepository(),
	}
}

// Compile-time interface assertions.
var (
	_ domain.KeyRepository      = (*MemoryKeyRepository)(nil)
	_ domain.PairRepository     = (*MemoryPairRepository)(nil)
	_ domain.ListingRepository  = (*MemoryListingRepository)(nil)
	_ domain.ProposalRepository = (*MemoryProposalRepository)(nil)
)
