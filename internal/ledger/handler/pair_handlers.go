package handler

import (
	"context"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// GeneratePairHandler handles CmdGeneratePair. The result data is the new pair ID.
type GeneratePairHandler struct {
	pairs domain.PairRepository
}

// NewGeneratePairHandler creates a new GeneratePairHandler.
func NewGeneratePairHandler(pairs domain.PairRepository) *GeneratePairHandler {
	return &GeneratePairHandler{pairs: pairs}
}

// Handle processes a GeneratePairCommand.
func (h *GeneratePairHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	generateCmd, err := as[*command.GeneratePairCommand](cmd)
	if err != nil {
		return nil, err
	}

	pair, err := domain.NewEntanglementPair(generateCmd.Sender(), generateCmd.Height())
	if err != nil {
		return reject(err)
	}
	if err := h.pairs.Save(pair); err != nil {
		return nil, fmt.Errorf("failed to save pair: %w", err)
	}

	return committed(cmd, domain.RegistryPair, pair.ID(), domain.ActionPairGenerated, "", pair.ID()), nil
}

// DistributePairHandler handles CmdDistributePair.
type DistributePairHandler struct {
	pairs domain.PairRepository
}

// NewDistributePairHandler creates a new DistributePairHandler.
func NewDistributePairHandler(pairs domain.PairRepository) *DistributePairHandler {
	return &DistributePairHandler{pairs: pairs}
}

// Handle processes a DistributePairCommand.
func (h *DistributePairHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	distributeCmd, err := as[*command.DistributePairCommand](cmd)
	if err != nil {
		return nil, err
	}

	pair, err := h.pairs.Get(distributeCmd.PairID)
	if err != nil {
		return reject(err)
	}
	if err := pair.Distribute(distributeCmd.Sender(), distributeCmd.Recipient, distributeCmd.Height()); err != nil {
		return reject(err)
	}
	if err := h.pairs.Save(pair); err != nil {
		return nil, fmt.Errorf("failed to save pair: %w", err)
	}

	return committed(cmd, domain.RegistryPair, pair.ID(), domain.ActionPairDistributed, distributeCmd.Recipient.String(), true), nil
}
