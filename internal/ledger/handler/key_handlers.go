package handler

import (
	"context"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// ===========================================================================
// RegisterKeyHandler
// ===========================================================================

// RegisterKeyHandler handles CmdRegisterKey. The result data is the new key ID.
type RegisterKeyHandler struct {
	keys domain.KeyRepository
}

// NewRegisterKeyHandler creates a new RegisterKeyHandler.
func NewRegisterKeyHandler(keys domain.KeyRepository) *RegisterKeyHandler {
	return &RegisterKeyHandler{keys: keys}
}

// Handle processes a RegisterKeyCommand.
func (h *RegisterKeyHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	registerCmd, err := as[*command.RegisterKeyCommand](cmd)
	if err != nil {
		return nil, err
	}

	key, err := domain.NewQuantumKey(registerCmd.Sender(), registerCmd.PublicKey, registerCmd.Expiration)
	if err != nil {
		return reject(err)
	}
	if err := h.keys.Save(key); err != nil {
		return nil, fmt.Errorf("failed to save key: %w", err)
	}

	return committed(cmd, domain.RegistryKey, key.ID(), domain.ActionKeyRegistered, "", key.ID()), nil
}

// ===========================================================================
// RevokeKeyHandler
// ===========================================================================

// RevokeKeyHandler handles CmdRevokeKey.
type RevokeKeyHandler struct {
	keys domain.KeyRepository
}

// NewRevokeKeyHandler creates a new RevokeKeyHandler.
func NewRevokeKeyHandler(keys domain.KeyRepository) *RevokeKeyHandler {
	return &RevokeKeyHandler{keys: keys}
}

// Handle processes a RevokeKeyCommand.
func (h *RevokeKeyHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	revokeCmd, err := as[*command.RevokeKeyCommand](cmd)
	if err != nil {
		return nil, err
	}

	key, err := h.keys.Get(revokeCmd.KeyID)
	if err != nil {
		return reject(err)
	}
	if err := key.Revoke(revokeCmd.Sender(), revokeCmd.Height()); err != nil {
		return reject(err)
	}
	if err := h.keys.Save(key); err != nil {
		return nil, fmt.Errorf("failed to save key: %w", err)
	}

	return committed(cmd, domain.RegistryKey, key.ID(), domain.ActionKeyRevoked, "", true), nil
}
