package domain

import (
	"bytes"
	"fmt"
)

// PublicKeySize is the fixed length of a registered public key blob.
const PublicKeySize = 32

// QuantumKey is a public key registered for quantum key distribution.
// Keys are never deleted; revocation is the only mutation and it is irreversible.
type QuantumKey struct {
	id         EntityID
	owner      Sender
	publicKey  []byte
	expiration Height
	revoked    bool
	revokedAt  *Height
}

// NewQuantumKey creates an unpersisted key owned by owner.
func NewQuantumKey(owner Sender, publicKey []byte, expiration Height) (*QuantumKey, error) {
	if owner.IsZero() {
		return nil, InvalidArgument("owner is required")
	}
	if len(publicKey) != PublicKeySize {
		return nil, InvalidArgument(fmt.Sprintf("public key must be %d bytes, got %d", PublicKeySize, len(publicKey)))
	}
	return &QuantumKey{
		owner:      owner,
		publicKey:  bytes.Clone(publicKey),
		expiration: expiration,
	}, nil
}

// ReconstituteQuantumKey rebuilds a key from stored data.
func ReconstituteQuantumKey(id EntityID, owner Sender, publicKey []byte, expiration Height, revoked bool, revokedAt *Height) *QuantumKey {
	return &QuantumKey{
		id:         id,
		owner:      owner,
		publicKey:  bytes.Clone(publicKey),
		expiration: expiration,
		revoked:    revoked,
		revokedAt:  revokedAt,
	}
}

func (k *QuantumKey) ID() EntityID       { return k.id }
func (k *QuantumKey) Owner() Sender      { return k.owner }
func (k *QuantumKey) Expiration() Height { return k.expiration }
func (k *QuantumKey) Revoked() bool      { return k.revoked }

// PublicKey returns a copy of the key material.
func (k *QuantumKey) PublicKey() []byte {
	return bytes.Clone(k.publicKey)
}

// RevokedAt returns the height of revocation, or nil if the key is live.
func (k *QuantumKey) RevokedAt() *Height {
	return k.revokedAt
}

// IsValidAt applies the temporal validity check at now.
func (k *QuantumKey) IsValidAt(now Height) bool {
	return IsValid(k.expiration, k.revoked, now)
}

// Revoke marks the key revoked. Only the owner may revoke, and only once.
func (k *QuantumKey) Revoke(sender Sender, now Height) error {
	if err := Authorize(k.owner, sender); err != nil {
		return err
	}
	if k.revoked {
		return InvalidState(fmt.Sprintf("key %s", k.id), ErrAlreadyRevoked)
	}
	k.revoked = true
	k.revokedAt = &now
	return nil
}

// SetID assigns the registry ID. Called by the persistence layer on insert.
func (k *QuantumKey) SetID(id EntityID) {
	k.id = id
}

// Clone returns a deep copy.
func (k *QuantumKey) Clone() *QuantumKey {
	c := *k
	c.publicKey = bytes.Clone(k.publicKey)
	if k.revokedAt != nil {
		h := *k.revokedAt
		c.revokedAt = &h
	}
	return &c
}
