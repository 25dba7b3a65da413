// Package handler provides the command handlers that apply ledger transactions.
//
// Every handler follows the same shape: load a copy of the record, run the
// domain transition on the copy, and save it only when the transition succeeded.
// A rejected transaction therefore never reaches the repository.
//
// Domain rejections are returned as a failed CommandResult. Anything else
// (storage failures, a mis-routed command) is returned as an error.
package handler

import (
	"errors"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/processor"
)

// ErrUnexpectedCommand is returned when a handler receives a command type it
// was not registered for.
var ErrUnexpectedCommand = errors.New("unexpected command type")

// Register wires one handler per ledger command type into p.
func Register(p *processor.CommandProcessor, repos domain.Repositories) {
	p.RegisterHandler(command.CmdRegisterKey, NewRegisterKeyHandler(repos.Keys))
	p.RegisterHandler(command.CmdRevokeKey, NewRevokeKeyHandler(repos.Keys))
	p.RegisterHandler(command.CmdGeneratePair, NewGeneratePairHandler(repos.Pairs))
	p.RegisterHandler(command.CmdDistributePair, NewDistributePairHandler(repos.Pairs))
	p.RegisterHandler(command.CmdCreateListing, NewCreateListingHandler(repos.Listings))
	p.RegisterHandler(command.CmdPurchaseBandwidth, NewPurchaseBandwidthHandler(repos.Listings))
	p.RegisterHandler(command.CmdSubmitProposal, NewSubmitProposalHandler(repos.Proposals))
	p.RegisterHandler(command.CmdVoteOnProposal, NewVoteOnProposalHandler(repos.Proposals))
	p.RegisterHandler(command.CmdExecuteProposal, NewExecuteProposalHandler(repos.Proposals))
}

func as[T command.Command](cmd command.Command) (T, error) {
	c, ok := cmd.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %T", ErrUnexpectedCommand, cmd)
	}
	return c, nil
}

// reject turns a domain error into a failed result and passes any other error
// through.
func reject(err error) (*command.CommandResult, error) {
	if _, ok := domain.KindOf(err); ok {
		return &command.CommandResult{Success: false, Error: err}, nil
	}
	return nil, err
}

func committed(cmd command.Command, registry domain.Registry, id domain.EntityID, action domain.Action, detail string, data any) *command.CommandResult {
	return &command.CommandResult{
		Success: true,
		Data:    data,
		Events: []any{domain.RecordEvent{
			Registry: registry,
			ID:       id,
			Action:   action,
			Sender:   cmd.Sender(),
			Height:   cmd.Height(),
			Detail:   detail,
		}},
	}
}
