package processor

import (
	"context"
	"errors"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
)

// CommandHandler executes one command type against the ledger state.
//
// A handler returns a result with Success=false (or a non-nil error) when the
// transaction is rejected; in that case it must not have written anything.
type CommandHandler interface {
	Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error)
}

// HandlerFunc adapts an ordinary function to the CommandHandler interface.
type HandlerFunc func(ctx context.Context, cmd command.Command) (*command.CommandResult, error)

// Handle calls f(ctx, cmd).
func (f HandlerFunc) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	return f(ctx, cmd)
}

// ErrUnknownCommandType is returned when no handler is registered for a command type.
var ErrUnknownCommandType = errors.New("unknown command type")

// ErrProcessorNotRunning is returned when submitting to a stopped processor.
var ErrProcessorNotRunning = errors.New("processor is not running")
