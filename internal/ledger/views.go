package ledger

import (
	"encoding/hex"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// KeyView is the serialized form of a QuantumKey.
type KeyView struct {
	ID         domain.EntityID `json:"id" yaml:"id"`
	Owner      domain.Sender   `json:"owner" yaml:"owner"`
	PublicKey  string          `json:"public_key" yaml:"public_key"`
	Expiration domain.Height   `json:"expiration" yaml:"expiration"`
	Revoked    bool            `json:"revoked" yaml:"revoked"`
	RevokedAt  *domain.Height  `json:"revoked_at,omitempty" yaml:"revoked_at,omitempty"`
}

// NewKeyView converts a key. The public key is hex encoded.
func NewKeyView(k *domain.QuantumKey) KeyView {
	return KeyView{
		ID:         k.ID(),
		Owner:      k.Owner(),
		PublicKey:  hex.EncodeToString(k.PublicKey()),
		Expiration: k.Expiration(),
		Revoked:    k.Revoked(),
		RevokedAt:  k.RevokedAt(),
	}
}

// PairView is the serialized form of an EntanglementPair.
type PairView struct {
	ID          domain.EntityID   `json:"id" yaml:"id"`
	Generator   domain.Sender     `json:"generator" yaml:"generator"`
	Recipient   *domain.Sender    `json:"recipient,omitempty" yaml:"recipient,omitempty"`
	Status      domain.PairStatus `json:"status" yaml:"status"`
	GeneratedAt domain.Height     `json:"generated_at" yaml:"generated_at"`
	Timestamp   *domain.Height    `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// NewPairView converts a pair.
func NewPairView(p *domain.EntanglementPair) PairView {
	return PairView{
		ID:          p.ID(),
		Generator:   p.Generator(),
		Recipient:   p.Recipient(),
		Status:      p.Status(),
		GeneratedAt: p.GeneratedAt(),
		Timestamp:   p.Timestamp(),
	}
}

// ListingView is the serialized form of a BandwidthListing.
type ListingView struct {
	ID         domain.EntityID      `json:"id" yaml:"id"`
	Seller     domain.Sender        `json:"seller" yaml:"seller"`
	Amount     uint64               `json:"amount" yaml:"amount"`
	Price      uint64               `json:"price" yaml:"price"`
	Expiration domain.Height        `json:"expiration" yaml:"expiration"`
	Status     domain.ListingStatus `json:"status" yaml:"status"`
	Buyer      *domain.Sender       `json:"buyer,omitempty" yaml:"buyer,omitempty"`
	SoldAt     *domain.Height       `json:"sold_at,omitempty" yaml:"sold_at,omitempty"`
}

// NewListingView converts a listing.
func NewListingView(l *domain.BandwidthListing) ListingView {
	return ListingView{
		ID:         l.ID(),
		Seller:     l.Seller(),
		Amount:     l.Amount(),
		Price:      l.Price(),
		Expiration: l.Expiration(),
		Status:     l.Status(),
		Buyer:      l.Buyer(),
		SoldAt:     l.SoldAt(),
	}
}

// ProposalView is the serialized form of a Proposal. Voters are sorted.
type ProposalView struct {
	ID             domain.EntityID       `json:"id" yaml:"id"`
	Proposer       domain.Sender         `json:"proposer" yaml:"proposer"`
	Description    string                `json:"description" yaml:"description"`
	VotesFor       uint64                `json:"votes_for" yaml:"votes_for"`
	VotesAgainst   uint64                `json:"votes_against" yaml:"votes_against"`
	Status         domain.ProposalStatus `json:"status" yaml:"status"`
	Outcome        domain.Outcome        `json:"outcome" yaml:"outcome"`
	ExecutionDelay uint64                `json:"execution_delay" yaml:"execution_delay"`
	SubmittedAt    domain.Height         `json:"submitted_at" yaml:"submitted_at"`
	ExecutedAt     *domain.Height        `json:"executed_at,omitempty" yaml:"executed_at,omitempty"`
	Voters         []domain.Sender       `json:"voters" yaml:"voters"`
}

// NewProposalView converts a proposal.
func NewProposalView(p *domain.Proposal) ProposalView {
	voters := p.VoterList()
	if voters == nil {
		voters = []domain.Sender{}
	}
	return ProposalView{
		ID:             p.ID(),
		Proposer:       p.Proposer(),
		Description:    p.Description(),
		VotesFor:       p.VotesFor(),
		VotesAgainst:   p.VotesAgainst(),
		Status:         p.Status(),
		Outcome:        p.Outcome(),
		ExecutionDelay: p.ExecutionDelay(),
		SubmittedAt:    p.SubmittedAt(),
		ExecutedAt:     p.ExecutedAt(),
		Voters:         voters,
	}
}
