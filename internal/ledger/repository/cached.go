package repository

import (
	"context"
	"sync"
	"time"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/cachemanager"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// DefaultCacheTTL is how long a record stays cached after it was last read or
// written.
const DefaultCacheTTL = 5 * time.Minute

// store is the method set shared by the four domain repositories.
type store[T any] interface {
	Count() (uint64, error)
	Get(id domain.EntityID) (T, error)
	Save(record T) error
}

// cachedStore keeps recently used records in front of a slower store. Writes
// go through to the store first and then replace the cached copy. The lock
// keeps a reader from caching a record loaded before a concurrent write.
type cachedStore[T entity[T]] struct {
	mu       sync.RWMutex
	registry domain.Registry
	inner    store[T]
	reader   *cachemanager.ReadThrough[T]
}

func newCachedStore[T entity[T]](registry domain.Registry, inner store[T], ttl time.Duration) *cachedStore[T] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	cache := cachemanager.NewMemory[T]("records:"+registry.String(), ttl, cachemanager.DefaultCleanupInterval)

	return &cachedStore[T]{
		registry: registry,
		inner:    inner,
		reader:   cachemanager.NewReadThrough[T](cache, ttl, false),
	}
}

func (s *cachedStore[T]) key(id domain.EntityID) string {
	return s.registry.String() + ":" + id.String()
}

func (s *cachedStore[T]) Count() (uint64, error) {
	return s.inner.Count()
}

func (s *cachedStore[T]) Get(id domain.EntityID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, err := s.reader.Get(context.Background(), s.key(id), func(context.Context) (T, error) {
		return s.inner.Get(id)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record.Clone(), nil
}

func (s *cachedStore[T]) Save(record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inner.Save(record); err != nil {
		s.reader.Invalidate(context.Background(), s.key(record.ID()))
		return err
	}
	s.reader.Put(context.Background(), s.key(record.ID()), record.Clone())
	return nil
}

// ===========================================================================
// Typed cached repositories
// ===========================================================================

// CachedKeyRepository caches quantum keys in front of another KeyRepository.
type CachedKeyRepository struct {
	*cachedStore[*domain.QuantumKey]
}

// CachedPairRepository caches entanglement pairs.
type CachedPairRepository struct {
	*cachedStore[*domain.EntanglementPair]
}

// CachedListingRepository caches bandwidth listings.
type CachedListingRepository struct {
	*cachedStore[*domain.BandwidthListing]
}

// CachedProposalRepository caches proposals together with their voter sets.
type CachedProposalRepository struct {
	*cachedStore[*domain.Proposal]
}

var (
	_ domain.KeyRepository      = (*CachedKeyRepository)(nil)
	_ domain.PairRepository     = (*CachedPairRepository)(nil)
	_ domain.ListingRepository  = (*CachedListingRepository)(nil)
	_ domain.ProposalRepository = (*CachedProposalRepository)(nil)
)

// NewCachedRepositories wraps every repository in repos with a read cache.
func NewCachedRepositories(repos domain.Repositories, ttl time.Duration) domain.Repositories {
	return domain.Repositories{
		Keys:      &CachedKeyRepository{newCachedStore[*domain.QuantumKey](domain.RegistryKey, repos.Keys, ttl)},
		Pairs:     &CachedPairRepository{newCachedStore[*domain.EntanglementPair](domain.RegistryPair, repos.Pairs, ttl)},
		Listings:  &CachedListingRepository{newCachedStore[*domain.BandwidthListing](domain.RegistryListing, repos.Listings, ttl)},
		Proposals: &CachedProposalRepository{newCachedStore[*domain.Proposal](domain.RegistryProposal, repos.Proposals, ttl)},
	}
}
