package sqlite

import (
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// Unsigned ledger values are stored as INTEGER (int64). The conversion is a
// bit-for-bit reinterpretation, so values above math.MaxInt64 round-trip intact.

// KeyModel represents the database row for the quantum_keys table.
type KeyModel struct {
	ID         int64
	Owner      string
	PublicKey  []byte
	Expiration int64
	Revoked    bool
	RevokedAt  *int64 // nullable
}

func toKeyModel(k *domain.QuantumKey) *KeyModel {
	return &KeyModel{
		ID:         int64(k.ID()),
		Owner:      k.Owner().String(),
		PublicKey:  k.PublicKey(),
		Expiration: int64(k.Expiration()),
		Revoked:    k.Revoked(),
		RevokedAt:  heightPtr(k.RevokedAt()),
	}
}

func (m *KeyModel) toDomain() *domain.QuantumKey {
	return domain.ReconstituteQuantumKey(
		domain.EntityID(m.ID),
		domain.Sender(m.Owner),
		m.PublicKey,
		domain.Height(m.Expiration),
		m.Revoked,
		fromHeightPtr(m.RevokedAt),
	)
}

// PairModel represents the database row for the entanglement_pairs table.
type PairModel struct {
	ID            int64
	Generator     string
	Recipient     *string // nullable
	Status        string
	GeneratedAt   int64
	DistributedAt *int64 // nullable
}

func toPairModel(p *domain.EntanglementPair) *PairModel {
	return &PairModel{
		ID:            int64(p.ID()),
		Generator:     p.Generator().String(),
		Recipient:     senderPtr(p.Recipient()),
		Status:        p.Status().String(),
		GeneratedAt:   int64(p.GeneratedAt()),
		DistributedAt: heightPtr(p.Timestamp()),
	}
}

func (m *PairModel) toDomain() *domain.EntanglementPair {
	return domain.ReconstituteEntanglementPair(
		domain.EntityID(m.ID),
		domain.Sender(m.Generator),
		fromSenderPtr(m.Recipient),
		domain.PairStatus(m.Status),
		domain.Height(m.GeneratedAt),
		fromHeightPtr(m.DistributedAt),
	)
}

// ListingModel represents the database row for the bandwidth_listings table.
type ListingModel struct {
	ID         int64
	Seller     string
	Amount     int64
	Price      int64
	Expiration int64
	Status     string
	Buyer      *string // nullable
	SoldAt     *int64  // nullable
}

func toListingModel(l *domain.BandwidthListing) *ListingModel {
	return &ListingModel{
		ID:         int64(l.ID()),
		Seller:     l.Seller().String(),
		Amount:     int64(l.Amount()),
		Price:      int64(l.Price()),
		Expiration: int64(l.Expiration()),
		Status:     l.Status().String(),
		Buyer:      senderPtr(l.Buyer()),
		SoldAt:     heightPtr(l.SoldAt()),
	}
}

func (m *ListingModel) toDomain() *domain.BandwidthListing {
	return domain.ReconstituteBandwidthListing(
		domain.EntityID(m.ID),
		domain.Sender(m.Seller),
		uint64(m.Amount),
		uint64(m.Price),
		domain.Height(m.Expiration),
		domain.ListingStatus(m.Status),
		fromSenderPtr(m.Buyer),
		fromHeightPtr(m.SoldAt),
	)
}

// ProposalModel represents the database row for the proposals table. Votes are
// loaded separately from proposal_votes.
type ProposalModel struct {
	ID             int64
	Proposer       string
	Description    string
	VotesFor       int64
	VotesAgainst   int64
	Status         string
	Outcome        string
	ExecutionDelay int64
	SubmittedAt    int64
	ExecutedAt     *int64 // nullable
}

func toProposalModel(p *domain.Proposal) *ProposalModel {
	return &ProposalModel{
		ID:             int64(p.ID()),
		Proposer:       p.Proposer().String(),
		Description:    p.Description(),
		VotesFor:       int64(p.VotesFor()),
		VotesAgainst:   int64(p.VotesAgainst()),
		Status:         p.Status().String(),
		Outcome:        p.Outcome().String(),
		ExecutionDelay: int64(p.ExecutionDelay()),
		SubmittedAt:    int64(p.SubmittedAt()),
		ExecutedAt:     heightPtr(p.ExecutedAt()),
	}
}

func (m *ProposalModel) toDomain(voters map[domain.Sender]bool) *domain.Proposal {
	return domain.ReconstituteProposal(
		domain.EntityID(m.ID),
		domain.Sender(m.Proposer),
		m.Description,
		uint64(m.VotesFor),
		uint64(m.VotesAgainst),
		domain.ProposalStatus(m.Status),
		domain.Outcome(m.Outcome),
		uint64(m.ExecutionDelay),
		domain.Height(m.SubmittedAt),
		fromHeightPtr(m.ExecutedAt),
		voters,
	)
}

func heightPtr(h *domain.Height) *int64 {
	if h == nil {
		return nil
	}
	v := int64(*h)
	return &v
}

func fromHeightPtr(v *int64) *domain.Height {
	if v == nil {
		return nil
	}
	h := domain.Height(*v)
	return &h
}

func senderPtr(s *domain.Sender) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}

func fromSenderPtr(v *string) *domain.Sender {
	if v == nil {
		return nil
	}
	s := domain.Sender(*v)
	return &s
}
