// Package command defines the ledger transactions. Every mutation of the ledger
// enters the system as a Command carrying the sender identity and the clock value
// supplied by the caller; the processor applies commands one at a time.
package command

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// Command represents one ledger transaction.
type Command interface {
	// ID returns the unique command identifier used for replay protection and tracing.
	ID() string
	// Type returns the command type for routing to handlers.
	Type() CommandType
	// Validate checks argument preconditions that need no ledger state.
	Validate() error
	// Sender returns the identity of the caller.
	Sender() domain.Sender
	// Height returns the clock value the transaction executes at.
	Height() domain.Height
	// CreatedAt returns when the command was created.
	CreatedAt() time.Time
}

// CommandType identifies the kind of command for handler routing.
type CommandType string

const (
	// Key Registry

	// CmdRegisterKey registers a 32-byte public key for the sender.
	CmdRegisterKey CommandType = "register_key"
	// CmdRevokeKey revokes a key owned by the sender.
	CmdRevokeKey CommandType = "revoke_key"

	// Entanglement Pairs

	// CmdGeneratePair generates a pair owned by the sender.
	CmdGeneratePair CommandType = "generate_pair"
	// CmdDistributePair hands a generated pair to a recipient.
	CmdDistributePair CommandType = "distribute_pair"

	// Bandwidth Market

	// CmdCreateListing lists bandwidth for sale.
	CmdCreateListing CommandType = "create_listing"
	// CmdPurchaseBandwidth buys an active listing.
	CmdPurchaseBandwidth CommandType = "purchase_bandwidth"

	// Governance

	// CmdSubmitProposal opens a governance proposal.
	CmdSubmitProposal CommandType = "submit_proposal"
	// CmdVoteOnProposal casts a single vote on an active proposal.
	CmdVoteOnProposal CommandType = "vote_on_proposal"
	// CmdExecuteProposal fixes the outcome of a proposal whose delay has elapsed.
	CmdExecuteProposal CommandType = "execute_proposal"
)

// String returns the string representation of the CommandType.
func (ct CommandType) String() string {
	return string(ct)
}

// AllTypes lists every command type in registration order.
func AllTypes() []CommandType {
	return []CommandType{
		CmdRegisterKey, CmdRevokeKey,
		CmdGeneratePair, CmdDistributePair,
		CmdCreateListing, CmdPurchaseBandwidth,
		CmdSubmitProposal, CmdVoteOnProposal, CmdExecuteProposal,
	}
}

// CommandSource identifies where the command originated.
type CommandSource string

const (
	// SourceCLI indicates a single command typed on the command line.
	SourceCLI CommandSource = "cli"
	// SourceBatch indicates a command read from a transaction file.
	SourceBatch CommandSource = "batch"
	// SourceAPI indicates a command submitted through the Go API.
	SourceAPI CommandSource = "api"
)

// String returns the string representation of the CommandSource.
func (cs CommandSource) String() string {
	return string(cs)
}

// BaseCommand provides common fields for all commands.
// Concrete command types should embed it.
type BaseCommand struct {
	id          string
	cmdType     CommandType
	sender      domain.Sender
	height      domain.Height
	createdAt   time.Time
	source      CommandSource
	traceID     string
	spanContext trace.SpanContext // For OpenTelemetry trace propagation
}

// NewBaseCommand creates a BaseCommand with a generated UUID and current timestamp.
func NewBaseCommand(cmdType CommandType, source CommandSource, sender domain.Sender, height domain.Height) BaseCommand {
	return BaseCommand{
		id:        uuid.New().String(),
		cmdType:   cmdType,
		sender:    sender,
		height:    height,
		createdAt: time.Now(),
		source:    source,
	}
}

// ID returns the unique command identifier.
func (b *BaseCommand) ID() string {
	return b.id
}

// SetID overrides the generated identifier. Transaction files use this to carry
// caller-chosen IDs so that re-submitting a file is detected as a replay.
func (b *BaseCommand) SetID(id string) {
	if id != "" {
		b.id = id
	}
}

// Type returns the command type for handler routing.
func (b *BaseCommand) Type() CommandType {
	return b.cmdType
}

// Sender returns the identity of the caller.
func (b *BaseCommand) Sender() domain.Sender {
	return b.sender
}

// Height returns the clock value the command executes at.
func (b *BaseCommand) Height() domain.Height {
	return b.height
}

// CreatedAt returns when the command was created.
func (b *BaseCommand) CreatedAt() time.Time {
	return b.createdAt
}

// Source returns the origin of this command.
func (b *BaseCommand) Source() CommandSource {
	return b.source
}

// TraceID returns the correlation ID for related commands.
// If a valid SpanContext is set, the trace ID is derived from it.
func (b *BaseCommand) TraceID() string {
	if b.spanContext.IsValid() {
		return b.spanContext.TraceID().String()
	}
	return b.traceID
}

// SetTraceID sets the correlation ID for command tracing.
func (b *BaseCommand) SetTraceID(traceID string) {
	b.traceID = traceID
}

// SpanContext returns the OpenTelemetry span context for trace propagation.
func (b *BaseCommand) SpanContext() trace.SpanContext {
	return b.spanContext
}

// SetSpanContext sets the OpenTelemetry span context for trace propagation.
func (b *BaseCommand) SetSpanContext(sc trace.SpanContext) {
	b.spanContext = sc
}

// Validate checks the sender. Concrete commands call it before their own checks.
func (b *BaseCommand) Validate() error {
	if b.sender.IsZero() {
		return domain.InvalidArgument("sender is required")
	}
	return nil
}

// CommandResult contains the outcome of command execution.
type CommandResult struct {
	// Success indicates whether the command executed successfully.
	Success bool
	// Events contains the record events to publish.
	Events []any
	// Error contains the error if Success is false.
	Error error
	// Data contains the operation's return value (a new ID, an outcome).
	Data any
}

// ErrQueueFull is returned when the command queue has reached capacity.
var ErrQueueFull = errors.New("command queue is full")
