package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// Builder accumulates registry records and saves them in order. Records are
// built through the domain transitions, so seeded state is always reachable.
type Builder struct {
	t         *testing.T
	repos     domain.Repositories
	keys      []keyData
	pairs     []pairData
	listings  []listingData
	proposals []proposalData
}

// NewBuilder creates a builder for the given repositories.
func NewBuilder(t *testing.T, repos domain.Repositories) *Builder {
	t.Helper()
	return &Builder{t: t, repos: repos}
}

// WithKey adds a key owned by owner.
func (b *Builder) WithKey(owner domain.Sender, opts ...KeyOption) *Builder {
	k := defaultKey(owner)
	for _, opt := range opts {
		opt(&k)
	}
	b.keys = append(b.keys, k)
	return b
}

// WithPair adds a pair generated by generator.
func (b *Builder) WithPair(generator domain.Sender, opts ...PairOption) *Builder {
	p := pairData{generator: generator}
	for _, opt := range opts {
		opt(&p)
	}
	b.pairs = append(b.pairs, p)
	return b
}

// WithListing adds a listing offered by seller.
func (b *Builder) WithListing(seller domain.Sender, opts ...ListingOption) *Builder {
	l := defaultListing(seller)
	for _, opt := range opts {
		opt(&l)
	}
	b.listings = append(b.listings, l)
	return b
}

// WithProposal adds a proposal submitted by proposer.
func (b *Builder) WithProposal(proposer domain.Sender, opts ...ProposalOption) *Builder {
	p := defaultProposal(proposer)
	for _, opt := range opts {
		opt(&p)
	}
	b.proposals = append(b.proposals, p)
	return b
}

// Build saves every accumulated record. IDs follow insertion order per registry.
func (b *Builder) Build() domain.Repositories {
	b.t.Helper()
	for _, k := range b.keys {
		b.insertKey(k)
	}
	for _, p := range b.pairs {
		b.insertPair(p)
	}
	for _, l := range b.listings {
		b.insertListing(l)
	}
	for _, p := range b.proposals {
		b.insertProposal(p)
	}
	return b.repos
}

func (b *Builder) insertKey(k keyData) {
	b.t.Helper()
	key, err := domain.NewQuantumKey(k.owner, k.publicKey, k.expiration)
	require.NoError(b.t, err)
	require.NoError(b.t, b.repos.Keys.Save(key))
	if k.revokedAt != nil {
		require.NoError(b.t, key.Revoke(k.owner, *k.revokedAt))
		require.NoError(b.t, b.repos.Keys.Save(key))
	}
}

func (b *Builder) insertPair(p pairData) {
	b.t.Helper()
	pair, err := domain.NewEntanglementPair(p.generator, p.generatedAt)
	require.NoError(b.t, err)
	require.NoError(b.t, b.repos.Pairs.Save(pair))
	if p.recipient != nil {
		require.NoError(b.t, pair.Distribute(p.generator, *p.recipient, p.distributedAt))
		require.NoError(b.t, b.repos.Pairs.Save(pair))
	}
}

func (b *Builder) insertListing(l listingData) {
	b.t.Helper()
	listing, err := domain.NewBandwidthListing(l.seller, l.amount, l.price, l.expiration)
	require.NoError(b.t, err)
	require.NoError(b.t, b.repos.Listings.Save(listing))
	if l.buyer != nil {
		require.NoError(b.t, listing.Purchase(*l.buyer, l.soldAt))
		require.NoError(b.t, b.repos.Listings.Save(listing))
	}
}

func (b *Builder) insertProposal(p proposalData) {
	b.t.Helper()
	proposal, err := domain.NewProposal(p.proposer, p.description, p.delay, p.submittedAt)
	require.NoError(b.t, err)
	require.NoError(b.t, b.repos.Proposals.Save(proposal))

	for i := 0; i < p.votesFor+p.votesAgainst; i++ {
		require.NoError(b.t, proposal.Vote(Voter(i), i < p.votesFor))
	}
	if p.executedAt != nil {
		_, err := proposal.Execute(*p.executedAt)
		require.NoError(b.t, err)
	}
	if p.votesFor+p.votesAgainst > 0 || p.executedAt != nil {
		require.NoError(b.t, b.repos.Proposals.Save(proposal))
	}
}
