package ledger

import (
	"context"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// ===========================================================================
// Key registry
// ===========================================================================

// RegisterKey records publicKey for sender, valid until expiration. It returns
// the new key ID.
func (l *Ledger) RegisterKey(ctx context.Context, sender domain.Sender, now domain.Height, publicKey []byte, expiration domain.Height) (domain.EntityID, error) {
	return submit[domain.EntityID](ctx, l, command.NewRegisterKeyCommand(l.source, sender, now, publicKey, expiration))
}

// RevokeKey revokes a key. Only the owner may revoke, and only once.
func (l *Ledger) RevokeKey(ctx context.Context, sender domain.Sender, now domain.Height, id domain.EntityID) (bool, error) {
	return submit[bool](ctx, l, command.NewRevokeKeyCommand(l.source, sender, now, id))
}

// GetKey returns a key by ID.
func (l *Ledger) GetKey(ctx context.Context, id domain.EntityID) (*domain.QuantumKey, error) {
	return l.repos.Keys.Get(id)
}

// KeyCount returns the number of registered keys, which is also the highest key ID.
func (l *Ledger) KeyCount(ctx context.Context) (uint64, error) {
	return l.repos.Keys.Count()
}

// IsKeyValid reports whether a key is unrevoked and unexpired at now.
func (l *Ledger) IsKeyValid(ctx context.Context, id domain.EntityID, now domain.Height) (bool, error) {
	key, err := l.repos.Keys.Get(id)
	if err != nil {
		return false, err
	}
	return key.IsValidAt(now), nil
}

// ===========================================================================
// Entanglement pairs
// ===========================================================================

// GeneratePair creates a pair owned by sender and returns its ID.
func (l *Ledger) GeneratePair(ctx context.Context, sender domain.Sender, now domain.Height) (domain.EntityID, error) {
	return submit[domain.EntityID](ctx, l, command.NewGeneratePairCommand(l.source, sender, now))
}

// DistributePair hands a generated pair to recipient. Only the generator may
// distribute, and only once.
func (l *Ledger) DistributePair(ctx context.Context, sender domain.Sender, now domain.Height, id domain.EntityID, recipient domain.Sender) (bool, error) {
	return submit[bool](ctx, l, command.NewDistributePairCommand(l.source, sender, now, id, recipient))
}

// GetPair returns a pair by ID.
func (l *Ledger) GetPair(ctx context.Context, id domain.EntityID) (*domain.EntanglementPair, error) {
	return l.repos.Pairs.Get(id)
}

// PairCount returns the number of generated pairs.
func (l *Ledger) PairCount(ctx context.Context) (uint64, error) {
	return l.repos.Pairs.Count()
}

// ===========================================================================
// Bandwidth market
// ===========================================================================

// CreateListing offers amount units of bandwidth at price until expiration and
// returns the listing ID.
func (l *Ledger) CreateListing(ctx context.Context, sender domain.Sender, now domain.Height, amount, price uint64, expiration domain.Height) (domain.EntityID, error) {
	return submit[domain.EntityID](ctx, l, command.NewCreateListingCommand(l.source, sender, now, amount, price, expiration))
}

// PurchaseBandwidth buys an active, unexpired listing from another seller.
func (l *Ledger) PurchaseBandwidth(ctx context.Context, sender domain.Sender, now domain.Height, id domain.EntityID) (bool, error) {
	return submit[bool](ctx, l, command.NewPurchaseBandwidthCommand(l.source, sender, now, id))
}

// GetListing returns a listing by ID.
func (l *Ledger) GetListing(ctx context.Context, id domain.EntityID) (*domain.BandwidthListing, error) {
	return l.repos.Listings.Get(id)
}

// ListingCount returns the number of listings ever created.
func (l *Ledger) ListingCount(ctx context.Context) (uint64, error) {
	return l.repos.Listings.Count()
}

// ===========================================================================
// Governance
// ===========================================================================

// SubmitProposal opens a proposal that becomes executable executionDelay ticks
// after now. It returns the proposal ID.
func (l *Ledger) SubmitProposal(ctx context.Context, sender domain.Sender, now domain.Height, description string, executionDelay int64) (domain.EntityID, error) {
	return submit[domain.EntityID](ctx, l, command.NewSubmitProposalCommand(l.source, sender, now, description, executionDelay))
}

// VoteOnProposal casts sender's single vote on an active proposal.
func (l *Ledger) VoteOnProposal(ctx context.Context, sender domain.Sender, now domain.Height, id domain.EntityID, support bool) (bool, error) {
	return submit[bool](ctx, l, command.NewVoteOnProposalCommand(l.source, sender, now, id, support))
}

// ExecuteProposal fixes the outcome of a proposal whose delay has elapsed.
// Any sender may execute; it succeeds exactly once.
func (l *Ledger) ExecuteProposal(ctx context.Context, sender domain.Sender, now domain.Height, id domain.EntityID) (domain.Outcome, error) {
	return submit[domain.Outcome](ctx, l, command.NewExecuteProposalCommand(l.source, sender, now, id))
}

// GetProposal returns a proposal by ID.
func (l *Ledger) GetProposal(ctx context.Context, id domain.EntityID) (*domain.Proposal, error) {
	return l.repos.Proposals.Get(id)
}

// ProposalCount returns the number of proposals ever submitted.
func (l *Ledger) ProposalCount(ctx context.Context) (uint64, error) {
	return l.repos.Proposals.Count()
}

// HasVoted reports whether voter has voted on a proposal.
func (l *Ledger) HasVoted(ctx context.Context, id domain.EntityID, voter domain.Sender) (bool, error) {
	proposal, err := l.repos.Proposals.Get(id)
	if err != nil {
		return false, err
	}
	return proposal.HasVoted(voter), nil
}

// Count returns the record count of a registry.
func (l *Ledger) Count(ctx context.Context, registry domain.Registry) (uint64, error) {
	switch registry {
	case domain.RegistryKey:
		return l.KeyCount(ctx)
	case domain.RegistryPair:
		return l.PairCount(ctx)
	case domain.RegistryListing:
		return l.ListingCount(ctx)
	case domain.RegistryProposal:
		return l.ProposalCount(ctx)
	default:
		return 0, domain.InvalidArgument("unknown registry " + registry.String())
	}
}
