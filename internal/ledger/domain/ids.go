package domain

import "strconv"

// EntityID identifies a record within one registry. IDs start at 1 and are never
// reused; 0 means "not yet persisted".
type EntityID uint64

// String returns the decimal form of the ID.
func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Sender is the opaque identity of the caller supplied by the chain runtime.
// The ledger only compares senders, it never authenticates them.
type Sender string

// String returns the sender token.
func (s Sender) String() string {
	return string(s)
}

// IsZero reports whether the sender is empty.
func (s Sender) IsZero() bool {
	return s == ""
}

// Height is the monotonic clock value (block height) supplied with every call.
type Height uint64

// Registry names one of the four entity collections.
type Registry string

const (
	RegistryKey      Registry = "key"
	RegistryPair     Registry = "pair"
	RegistryListing  Registry = "listing"
	RegistryProposal Registry = "proposal"
)

// String returns the registry name.
func (r Registry) String() string {
	return string(r)
}

// IsValid returns true if r names a known registry.
func (r Registry) IsValid() bool {
	switch r {
	case RegistryKey, RegistryPair, RegistryListing, RegistryProposal:
		return true
	default:
		return false
	}
}
