package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/testutil"
)

func newKey(t require.TestingT, owner domain.Sender) *domain.QuantumKey {
	key, err := domain.NewQuantumKey(owner, testutil.PublicKey(1), 100)
	require.NoError(t, err)
	return key
}

// ===========================================================================
// ID allocation
// ===========================================================================

func TestMemoryKeyRepository_EmptyRegistry(t *testing.T) {
	repo := NewMemoryKeyRepository()

	count, err := repo.Count()
	require.NoError(t, err)
	require.Zero(t, count)

	_, err = repo.Get(0)
	require.True(t, domain.IsKind(err, domain.KindNotFound))
	_, err = repo.Get(1)
	require.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestMemoryKeyRepository_SaveAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryKeyRepository()

	for want := domain.EntityID(1); want <= 3; want++ {
		key := newKey(t, "alice")
		require.NoError(t, repo.Save(key))
		require.Equal(t, want, key.ID())
	}

	count, err := repo.Count()
	require.NoError(t, err)
	require.Equal(t, uint64(3), count)

	_, err = repo.Get(4)
	require.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestMemoryKeyRepository_UpdateUnknownID(t *testing.T) {
	repo := NewMemoryKeyRepository()
	key := newKey(t, "alice")
	key.SetID(5)

	err := repo.Save(key)
	require.True(t, domain.IsKind(err, domain.KindNotFound))

	count, _ := repo.Count()
	require.Zero(t, count)
}

// ===========================================================================
// Copy semantics
// ===========================================================================

func TestMemoryKeyRepository_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryKeyRepository()
	require.NoError(t, repo.Save(newKey(t, "alice")))

	loaded, err := repo.Get(1)
	require.NoError(t, err)
	require.NoError(t, loaded.Revoke("alice", 10))

	stored, err := repo.Get(1)
	require.NoError(t, err)
	require.False(t, stored.Revoked(), "mutating a loaded copy must not change the store")

	require.NoError(t, repo.Save(loaded))
	stored, err = repo.Get(1)
	require.NoError(t, err)
	require.True(t, stored.Revoked())
}

func TestMemoryProposalRepository_VotersAreIsolated(t *testing.T) {
	repo := NewMemoryProposalRepository()
	p, err := domain.NewProposal("alice", "upgrade", 10, 0)
	require.NoError(t, err)
	require.NoError(t, repo.Save(p))

	require.NoError(t, p.Vote("bob", true), "mutating the saved instance")

	stored, err := repo.Get(1)
	require.NoError(t, err)
	require.False(t, stored.HasVoted("bob"), "save must copy the voter set")
}

func TestMemoryRepository_Reset(t *testing.T) {
	repo := NewMemoryPairRepository()
	pair, err := domain.NewEntanglementPair("alice", 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(pair))

	repo.Reset()

	count, _ := repo.Count()
	require.Zero(t, count)
}

func TestNewMemoryRepositories_Independent(t *testing.T) {
	repos := NewMemoryRepositories()

	require.NoError(t, repos.Keys.Save(newKey(t, "alice")))
	listing, err := domain.NewBandwidthListing("alice", 10, 1, 100)
	require.NoError(t, err)
	require.NoError(t, repos.Listings.Save(listing))

	require.Equal(t, domain.EntityID(1), listing.ID(), "registries allocate IDs independently")

	pairs, _ := repos.Pairs.Count()
	require.Zero(t, pairs)
}

func TestMemoryKeyRepository_ConcurrentSaves(t *testing.T) {
	repo := NewMemoryKeyRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, err := domain.NewQuantumKey("alice", testutil.PublicKey(2), 100)
			if err == nil {
				_ = repo.Save(key)
			}
		}()
	}
	wg.Wait()

	count, err := repo.Count()
	require.NoError(t, err)
	require.Equal(t, uint64(50), count)
	for id := domain.EntityID(1); id <= 50; id++ {
		_, err := repo.Get(id)
		require.NoError(t, err)
	}
}

// TestProperty_IDsAreDense checks that after N inserts exactly IDs 1..N resolve.
func TestProperty_IDsAreDense(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		repo := NewMemoryListingRepository()

		for i := 0; i < n; i++ {
			l, err := domain.NewBandwidthListing("seller", 1, 1, 10)
			if err != nil {
				t.Fatalf("new listing: %v", err)
			}
			if err := repo.Save(l); err != nil {
				t.Fatalf("save: %v", err)
			}
		}

		count, _ := repo.Count()
		if count != uint64(n) {
			t.Fatalf("count %d, want %d", count, n)
		}
		probe := domain.EntityID(rapid.Uint64Range(0, uint64(n)+5).Draw(t, "probe"))
		_, err := repo.Get(probe)
		exists := probe >= 1 && uint64(probe) <= uint64(n)
		if exists != (err == nil) {
			t.Fatalf("Get(%d) err=%v with %d records", probe, err, n)
		}
	})
}
