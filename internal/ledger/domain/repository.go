package domain

// Each registry owns one repository. A repository is the ID allocator and the
// entity store for its registry:
//
//   - Count returns the highest ID issued (0 when empty); IDs are 1..Count.
//   - Get returns a NotFound error for any unknown ID, including every ID > Count.
//   - Save with ID 0 allocates Count+1, inserts, and assigns the ID to the entity.
//     Save with a non-zero ID replaces the stored record; handlers only do this
//     after a successful domain transition.
//   - Get returns a copy; mutating it has no effect until Save.
//   - Save is atomic: either the whole record (and, for proposals, its voter set)
//     is written or nothing is.

// KeyRepository stores quantum keys.
type KeyRepository interface {
	Count() (uint64, error)
	Get(id EntityID) (*QuantumKey, error)
	Save(key *QuantumKey) error
}

// PairRepository stores entanglement pairs.
type PairRepository interface {
	Count() (uint64, error)
	Get(id EntityID) (*EntanglementPair, error)
	Save(pair *EntanglementPair) error
}

// ListingRepository stores bandwidth listings.
type ListingRepository interface {
	Count() (uint64, error)
	Get(id EntityID) (*BandwidthListing, error)
	Save(listing *BandwidthListing) error
}

// ProposalRepository stores governance proposals and their voter sets.
type ProposalRepository interface {
	Count() (uint64, error)
	Get(id EntityID) (*Proposal, error)
	Save(proposal *Proposal) error
}

// Repositories bundles the four registries owned by one ledger.
type Repositories struct {
	Keys      KeyRepository
	Pairs     PairRepository
	Listings  ListingRepository
	Proposals ProposalRepository
}
