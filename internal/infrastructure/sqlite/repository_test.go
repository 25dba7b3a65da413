package sqlite_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/infrastructure/sqlite"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/testutil"
)

// ============================================================================
// Keys
// ============================================================================

func TestKeyRepository_SaveAndGet(t *testing.T) {
	repo := testutil.NewTestDB(t).KeyRepository()
	material := testutil.PublicKey(0x5a)

	key, err := domain.NewQuantumKey("alice", material, 1000)
	require.NoError(t, err)
	require.NoError(t, repo.Save(key))
	require.Equal(t, domain.EntityID(1), key.ID())

	found, err := repo.Get(1)
	require.NoError(t, err)
	require.Equal(t, domain.Sender("alice"), found.Owner())
	require.Equal(t, material, found.PublicKey())
	require.Equal(t, domain.Height(1000), found.Expiration())
	require.False(t, found.Revoked())
	require.Nil(t, found.RevokedAt())

	require.NoError(t, found.Revoke("alice", 77))
	require.NoError(t, repo.Save(found))

	revoked, err := repo.Get(1)
	require.NoError(t, err)
	require.True(t, revoked.Revoked())
	require.Equal(t, domain.Height(77), *revoked.RevokedAt())
}

func TestKeyRepository_NotFound(t *testing.T) {
	repo := testutil.NewTestDB(t).KeyRepository()

	for _, id := range []domain.EntityID{0, 1, 99} {
		_, err := repo.Get(id)
		require.True(t, domain.IsKind(err, domain.KindNotFound), "id %d: %v", id, err)
	}

	ghost := domain.ReconstituteQuantumKey(5, "alice", make([]byte, domain.PublicKeySize), 10, false, nil)
	err := repo.Save(ghost)
	require.True(t, domain.IsKind(err, domain.KindNotFound), "update of unknown id")
}

func TestKeyRepository_LargeHeights(t *testing.T) {
	repo := testutil.NewTestDB(t).KeyRepository()

	key, err := domain.NewQuantumKey("alice", make([]byte, domain.PublicKeySize), domain.Height(math.MaxUint64))
	require.NoError(t, err)
	require.NoError(t, repo.Save(key))

	found, err := repo.Get(key.ID())
	require.NoError(t, err)
	require.Equal(t, domain.Height(math.MaxUint64), found.Expiration(), "uint64 heights round-trip")
}

// ============================================================================
// Pairs
// ============================================================================

func TestPairRepository_Lifecycle(t *testing.T) {
	repo := testutil.NewTestDB(t).PairRepository()

	pair, err := domain.NewEntanglementPair("alice", 3)
	require.NoError(t, err)
	require.NoError(t, repo.Save(pair))

	found, err := repo.Get(pair.ID())
	require.NoError(t, err)
	require.Equal(t, domain.PairStatusGenerated, found.Status())
	require.Nil(t, found.Recipient())
	require.Equal(t, domain.Height(3), found.GeneratedAt())

	require.NoError(t, found.Distribute("alice", "bob", 123456))
	require.NoError(t, repo.Save(found))

	distributed, err := repo.Get(pair.ID())
	require.NoError(t, err)
	require.Equal(t, domain.PairStatusDistributed, distributed.Status())
	require.Equal(t, domain.Sender("bob"), *distributed.Recipient())
	require.Equal(t, domain.Height(123456), *distributed.Timestamp())
}

// ============================================================================
// Listings
// ============================================================================

func TestListingRepository_Lifecycle(t *testing.T) {
	repo := testutil.NewTestDB(t).ListingRepository()

	listing, err := domain.NewBandwidthListing("seller", 1000, 500, 100)
	require.NoError(t, err)
	require.NoError(t, repo.Save(listing))

	found, err := repo.Get(1)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), found.Amount())
	require.Equal(t, uint64(500), found.Price())
	require.Equal(t, domain.ListingStatusActive, found.Status())

	require.NoError(t, found.Purchase("buyer", 50))
	require.NoError(t, repo.Save(found))

	sold, err := repo.Get(1)
	require.NoError(t, err)
	require.Equal(t, domain.ListingStatusSold, sold.Status())
	require.Equal(t, domain.Sender("buyer"), *sold.Buyer())
	require.Equal(t, domain.Height(50), *sold.SoldAt())
}

// ============================================================================
// Proposals
// ============================================================================

func TestProposalRepository_VotesPersist(t *testing.T) {
	repo := testutil.NewTestDB(t).ProposalRepository()

	p, err := domain.NewProposal("alice", "Upgrade quantum network protocol", 1000, 5)
	require.NoError(t, err)
	require.NoError(t, repo.Save(p))
	require.Equal(t, domain.EntityID(1), p.ID())

	loaded, err := repo.Get(1)
	require.NoError(t, err)
	require.NoError(t, loaded.Vote("v1", true))
	require.NoError(t, loaded.Vote("v2", false))
	require.NoError(t, repo.Save(loaded))

	again, err := repo.Get(1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), again.VotesFor())
	require.Equal(t, uint64(1), again.VotesAgainst())
	require.Equal(t, map[domain.Sender]bool{"v1": true, "v2": false}, again.Voters())

	err = again.Vote("v1", true)
	require.True(t, domain.IsKind(err, domain.KindAlreadyVoted), "voter set survives reload")
}

func TestProposalRepository_Execute(t *testing.T) {
	repo := testutil.NewTestDB(t).ProposalRepository()

	p, err := domain.NewProposal("alice", "upgrade", 0, 10)
	require.NoError(t, err)
	require.NoError(t, p.Vote("v1", true))
	require.NoError(t, repo.Save(p))

	loaded, err := repo.Get(p.ID())
	require.NoError(t, err)
	outcome, err := loaded.Execute(10)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomePassed, outcome)
	require.NoError(t, repo.Save(loaded))

	executed, err := repo.Get(p.ID())
	require.NoError(t, err)
	require.Equal(t, domain.ProposalStatusExecuted, executed.Status())
	require.Equal(t, domain.OutcomePassed, executed.Outcome())
	require.Equal(t, domain.Height(10), *executed.ExecutedAt())
	require.Equal(t, "upgrade", executed.Description())
	require.Equal(t, domain.Height(10), executed.SubmittedAt())
}

func TestProposalRepository_FailedUpdateWritesNoVotes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := db.ProposalRepository()

	ghost := domain.ReconstituteProposal(9, "alice", "ghost", 1, 0,
		domain.ProposalStatusActive, domain.OutcomePending, 0, 0, nil,
		map[domain.Sender]bool{"v1": true})

	err := repo.Save(ghost)
	require.True(t, domain.IsKind(err, domain.KindNotFound))

	var votes int
	require.NoError(t, db.Connection().QueryRow("SELECT COUNT(*) FROM proposal_votes").Scan(&votes))
	require.Zero(t, votes, "rolled back with the proposal update")
}

// ============================================================================
// Seeded state
// ============================================================================

func TestRepositories_StandardLedgerRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.NewBuilder(t, db.Repositories()).WithStandardLedger().Build()

	// A second handle reads only what was committed to disk.
	reopened, err := sqlite.NewDB(db.Path())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	repos := reopened.Repositories()

	revoked, err := repos.Keys.Get(2)
	require.NoError(t, err)
	require.Equal(t, testutil.Bob, revoked.Owner())
	require.Equal(t, domain.Height(5), *revoked.RevokedAt())

	pair, err := repos.Pairs.Get(2)
	require.NoError(t, err)
	require.Equal(t, domain.PairStatusDistributed, pair.Status())
	require.Equal(t, testutil.Bob, *pair.Recipient())
	require.Equal(t, domain.Height(4), *pair.Timestamp())

	listing, err := repos.Listings.Get(2)
	require.NoError(t, err)
	require.Equal(t, domain.ListingStatusSold, listing.Status())
	require.Equal(t, testutil.Carol, *listing.Buyer())

	active, err := repos.Proposals.Get(1)
	require.NoError(t, err)
	require.Equal(t, uint64(2), active.VotesFor())
	require.Equal(t, uint64(1), active.VotesAgainst())
	require.Equal(t, map[domain.Sender]bool{
		testutil.Voter(0): true,
		testutil.Voter(1): true,
		testutil.Voter(2): false,
	}, active.Voters())

	executed, err := repos.Proposals.Get(2)
	require.NoError(t, err)
	require.Equal(t, domain.ProposalStatusExecuted, executed.Status())
	require.Equal(t, domain.OutcomePassed, executed.Outcome())

	for _, registry := range []struct {
		name  string
		count func() (uint64, error)
	}{
		{"keys", repos.Keys.Count},
		{"pairs", repos.Pairs.Count},
		{"listings", repos.Listings.Count},
		{"proposals", repos.Proposals.Count},
	} {
		n, err := registry.count()
		require.NoError(t, err)
		require.Equal(t, uint64(2), n, registry.name)
	}
}

// ============================================================================
// Properties
// ============================================================================

// TestProperty_SQLiteIDsAreDense checks that every registry issues 1..N
// independently of the others.
func TestProperty_SQLiteIDsAreDense(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := db.Repositories()
	counts := map[string]int{}

	rapid.Check(t, func(rt *rapid.T) {
		registry := rapid.SampledFrom([]string{"key", "pair", "listing", "proposal"}).Draw(rt, "registry")
		var id domain.EntityID

		switch registry {
		case "key":
			k, _ := domain.NewQuantumKey("alice", make([]byte, domain.PublicKeySize), 10)
			if err := repos.Keys.Save(k); err != nil {
				rt.Fatalf("save key: %v", err)
			}
			id = k.ID()
		case "pair":
			p, _ := domain.NewEntanglementPair("alice", 1)
			if err := repos.Pairs.Save(p); err != nil {
				rt.Fatalf("save pair: %v", err)
			}
			id = p.ID()
		case "listing":
			l, _ := domain.NewBandwidthListing("alice", 1, 1, 10)
			if err := repos.Listings.Save(l); err != nil {
				rt.Fatalf("save listing: %v", err)
			}
			id = l.ID()
		case "proposal":
			p, _ := domain.NewProposal("alice", "p", 0, 0)
			if err := repos.Proposals.Save(p); err != nil {
				rt.Fatalf("save proposal: %v", err)
			}
			id = p.ID()
		}

		counts[registry]++
		if id != domain.EntityID(counts[registry]) {
			rt.Fatalf("%s got id %d, want %d", registry, id, counts[registry])
		}
	})

	total, err := repos.Keys.Count()
	require.NoError(t, err)
	require.Equal(t, uint64(counts["key"]), total, fmt.Sprintf("counts: %v", counts))
}
