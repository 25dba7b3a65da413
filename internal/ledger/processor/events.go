package processor

import (
	"time"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
)

// CommandErrorEvent is published on the rejection channel when a transaction
// is refused. Nothing was written for it.
type CommandErrorEvent struct {
	CommandID   string
	CommandType command.CommandType
	Error       error
}

// CommandLogEvent describes one finished transaction for audit subscribers.
type CommandLogEvent struct {
	CommandID   string
	CommandType command.CommandType
	Source      command.CommandSource
	Success     bool
	Error       error         // rejection reason or handler failure
	Duration    time.Duration // time spent below the command log layer
	Timestamp   time.Time
	TraceID     string // empty unless tracing is on
}
