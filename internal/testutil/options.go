package testutil

import "github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"

// keyData holds everything needed to seed a key.
type keyData struct {
	owner      domain.Sender
	publicKey  []byte
	expiration domain.Height
	revokedAt  *domain.Height
}

// KeyOption configures a seeded key.
type KeyOption func(*keyData)

// KeyExpiration sets the expiration height.
func KeyExpiration(h domain.Height) KeyOption {
	return func(k *keyData) { k.expiration = h }
}

// KeyBytes sets the public key.
func KeyBytes(b []byte) KeyOption {
	return func(k *keyData) { k.publicKey = b }
}

// RevokedAt revokes the key at h.
func RevokedAt(h domain.Height) KeyOption {
	return func(k *keyData) { k.revokedAt = &h }
}

func defaultKey(owner domain.Sender) keyData {
	return keyData{owner: owner, publicKey: PublicKey(0x42), expiration: 1000}
}

// pairData holds everything needed to seed a pair.
type pairData struct {
	generator     domain.Sender
	generatedAt   domain.Height
	recipient     *domain.Sender
	distributedAt domain.Height
}

// PairOption configures a seeded pair.
type PairOption func(*pairData)

// GeneratedAt sets the generation height.
func GeneratedAt(h domain.Height) PairOption {
	return func(p *pairData) { p.generatedAt = h }
}

// DistributedTo distributes the pair to recipient at h.
func DistributedTo(recipient domain.Sender, h domain.Height) PairOption {
	return func(p *pairData) {
		p.recipient = &recipient
		p.distributedAt = h
	}
}

// listingData holds everything needed to seed a listing.
type listingData struct {
	seller     domain.Sender
	amount     uint64
	price      uint64
	expiration domain.Height
	buyer      *domain.Sender
	soldAt     domain.Height
}

// ListingOption configures a seeded listing.
type ListingOption func(*listingData)

// Amount sets the bandwidth amount.
func Amount(n uint64) ListingOption {
	return func(l *listingData) { l.amount = n }
}

// Price sets the price.
func Price(n uint64) ListingOption {
	return func(l *listingData) { l.price = n }
}

// ListingExpiration sets the expiration height.
func ListingExpiration(h domain.Height) ListingOption {
	return func(l *listingData) { l.expiration = h }
}

// SoldTo sells the listing to buyer at h.
func SoldTo(buyer domain.Sender, h domain.Height) ListingOption {
	return func(l *listingData) {
		l.buyer = &buyer
		l.soldAt = h
	}
}

func defaultListing(seller domain.Sender) listingData {
	return listingData{seller: seller, amount: 1000, price: 500, expiration: 100}
}

// proposalData holds everything needed to seed a proposal.
type proposalData struct {
	proposer     domain.Sender
	description  string
	delay        int64
	submittedAt  domain.Height
	votesFor     int
	votesAgainst int
	executedAt   *domain.Height
}

// ProposalOption configures a seeded proposal.
type ProposalOption func(*proposalData)

// Description sets the proposal text.
func Description(s string) ProposalOption {
	return func(p *proposalData) { p.description = s }
}

// Delay sets the execution delay.
func Delay(d int64) ProposalOption {
	return func(p *proposalData) { p.delay = d }
}

// SubmittedAt sets the submission height.
func SubmittedAt(h domain.Height) ProposalOption {
	return func(p *proposalData) { p.submittedAt = h }
}

// Votes casts votes from distinct Voter senders: first the supporting ones,
// then the opposing ones.
func Votes(support, against int) ProposalOption {
	return func(p *proposalData) {
		p.votesFor = support
		p.votesAgainst = against
	}
}

// ExecutedAt executes the proposal at h. h must be past the delay.
func ExecutedAt(h domain.Height) ProposalOption {
	return func(p *proposalData) { p.executedAt = &h }
}

func defaultProposal(proposer domain.Sender) proposalData {
	return proposalData{proposer: proposer, description: "test proposal", delay: 10}
}
