// Package testutil provides fixtures for ledger tests: well-known senders, a
// builder that seeds registries, and throwaway SQLite databases.
package testutil

import (
	"bytes"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// Well-known senders shaped like chain principals.
const (
	Alice domain.Sender = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	Bob   domain.Sender = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"
	Carol domain.Sender = "ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC"
)

// Voter returns a distinct sender for index i.
func Voter(i int) domain.Sender {
	return domain.Sender(fmt.Sprintf("voter-%03d", i))
}

// PublicKey returns a valid public key filled with b.
func PublicKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, domain.PublicKeySize)
}
