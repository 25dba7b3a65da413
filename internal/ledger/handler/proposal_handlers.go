package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// ===========================================================================
// SubmitProposalHandler
// ===========================================================================

// SubmitProposalHandler handles CmdSubmitProposal. The result data is the new
// proposal ID.
type SubmitProposalHandler struct {
	proposals domain.ProposalRepository
}

// NewSubmitProposalHandler creates a new SubmitProposalHandler.
func NewSubmitProposalHandler(proposals domain.ProposalRepository) *SubmitProposalHandler {
	return &SubmitProposalHandler{proposals: proposals}
}

// Handle processes a SubmitProposalCommand.
func (h *SubmitProposalHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	submitCmd, err := as[*command.SubmitProposalCommand](cmd)
	if err != nil {
		return nil, err
	}

	proposal, err := domain.NewProposal(submitCmd.Sender(), submitCmd.Description, submitCmd.ExecutionDelay, submitCmd.Height())
	if err != nil {
		return reject(err)
	}
	if err := h.proposals.Save(proposal); err != nil {
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}

	return committed(cmd, domain.RegistryProposal, proposal.ID(), domain.ActionProposalSubmitted, "", proposal.ID()), nil
}

// ===========================================================================
// VoteOnProposalHandler
// ===========================================================================

// VoteOnProposalHandler handles CmdVoteOnProposal.
type VoteOnProposalHandler struct {
	proposals domain.ProposalRepository
}

// NewVoteOnProposalHandler creates a new VoteOnProposalHandler.
func NewVoteOnProposalHandler(proposals domain.ProposalRepository) *VoteOnProposalHandler {
	return &VoteOnProposalHandler{proposals: proposals}
}

// Handle processes a VoteOnProposalCommand.
func (h *VoteOnProposalHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	voteCmd, err := as[*command.VoteOnProposalCommand](cmd)
	if err != nil {
		return nil, err
	}

	proposal, err := h.proposals.Get(voteCmd.ProposalID)
	if err != nil {
		return reject(err)
	}
	if err := proposal.Vote(voteCmd.Sender(), voteCmd.Support); err != nil {
		return reject(err)
	}
	if err := h.proposals.Save(proposal); err != nil {
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}

	return committed(cmd, domain.RegistryProposal, proposal.ID(), domain.ActionVoteCast, strconv.FormatBool(voteCmd.Support), true), nil
}

// ===========================================================================
// ExecuteProposalHandler
// ===========================================================================

// ExecuteProposalHandler handles CmdExecuteProposal. The result data is the
// domain.Outcome fixed by the execution.
type ExecuteProposalHandler struct {
	proposals domain.ProposalRepository
}

// NewExecuteProposalHandler creates a new ExecuteProposalHandler.
func NewExecuteProposalHandler(proposals domain.ProposalRepository) *ExecuteProposalHandler {
	return &ExecuteProposalHandler{proposals: proposals}
}

// Handle processes an ExecuteProposalCommand.
func (h *ExecuteProposalHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	executeCmd, err := as[*command.ExecuteProposalCommand](cmd)
	if err != nil {
		return nil, err
	}

	proposal, err := h.proposals.Get(executeCmd.ProposalID)
	if err != nil {
		return reject(err)
	}
	outcome, err := proposal.Execute(executeCmd.Height())
	if err != nil {
		return reject(err)
	}
	if err := h.proposals.Save(proposal); err != nil {
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}

	return committed(cmd, domain.RegistryProposal, proposal.ID(), domain.ActionProposalExecuted, outcome.String(), outcome), nil
}
