// Package processor applies ledger transactions one at a time. Commands are
// queued in FIFO order and a single goroutine runs them, so each transaction
// sees the committed effects of every earlier one and handlers need no locking
// of their own.
package processor

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/pubsub"
)

// DefaultQueueCapacity is the number of commands that may wait in the queue.
const DefaultQueueCapacity = 1000

// Option configures a CommandProcessor.
type Option func(*CommandProcessor)

// WithQueueCapacity sets how many commands may wait in the queue.
func WithQueueCapacity(capacity int) Option {
	return func(p *CommandProcessor) {
		p.queueCapacity = capacity
	}
}

// WithEventBus publishes record and rejection events on bus.
func WithEventBus(bus *pubsub.Broker[any]) Option {
	return func(p *CommandProcessor) {
		p.eventBus = bus
	}
}

// WithMiddleware wraps every handler registered afterwards. The first
// middleware is the outermost.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(p *CommandProcessor) {
		p.middlewares = append(p.middlewares, middlewares...)
	}
}

// Stats is a snapshot of processor counters.
type Stats struct {
	Processed int64 // commands that reached a verdict
	Rejected  int64 // of which were rejected
	Queued    int   // commands waiting right now
}

// CommandProcessor runs commands sequentially in submission order.
type CommandProcessor struct {
	queueCapacity int
	handlers      map[command.CommandType]CommandHandler
	middlewares   []Middleware
	eventBus      *pubsub.Broker[any]

	// gate keeps submitters from sending on the queue while Drain closes it.
	gate      sync.RWMutex
	queue     chan queueItem
	accepting bool
	ctx       context.Context
	cancel    context.CancelFunc

	started atomic.Bool
	ready   chan struct{}
	done    chan struct{}

	processed atomic.Int64
	rejected  atomic.Int64
}

type queueItem struct {
	cmd      command.Command
	resultCh chan *command.CommandResult // nil for Submit
}

// NewCommandProcessor creates a processor. Register handlers, then call Run.
func NewCommandProcessor(opts ...Option) *CommandProcessor {
	p := &CommandProcessor{
		queueCapacity: DefaultQueueCapacity,
		handlers:      make(map[command.CommandType]CommandHandler),
		ready:         make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterHandler routes cmdType to handler, wrapped in the configured
// middleware. It must be called before Run.
func (p *CommandProcessor) RegisterHandler(cmdType command.CommandType, handler CommandHandler) {
	p.handlers[cmdType] = ChainMiddleware(handler, p.middlewares...)
}

// HasHandler reports whether a handler is registered for cmdType.
func (p *CommandProcessor) HasHandler(cmdType command.CommandType) bool {
	_, ok := p.handlers[cmdType]
	return ok
}

// Run processes commands until ctx is cancelled, Stop is called or Drain has
// emptied the queue. Only the first call does anything.
func (p *CommandProcessor) Run(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	p.gate.Lock()
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.queue = make(chan queueItem, p.queueCapacity)
	p.accepting = true
	p.gate.Unlock()
	close(p.ready)

	defer close(p.done)
	defer p.stopAccepting()

	log.Debug(log.CatCommands, "command processor started", "handlers", len(p.handlers), "capacity", p.queueCapacity)
	for {
		select {
		case <-p.ctx.Done():
			return
		case item, ok := <-p.queue:
			if !ok {
				return
			}
			p.processItem(item)
		}
	}
}

func (p *CommandProcessor) stopAccepting() {
	p.gate.Lock()
	p.accepting = false
	p.gate.Unlock()
}

// WaitForReady blocks until Run has started accepting commands.
func (p *CommandProcessor) WaitForReady(ctx context.Context) error {
	select {
	case <-p.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *CommandProcessor) enqueue(item queueItem) error {
	p.gate.RLock()
	defer p.gate.RUnlock()

	if !p.accepting {
		return ErrProcessorNotRunning
	}
	select {
	case p.queue <- item:
		return nil
	default:
		return command.ErrQueueFull
	}
}

// Submit queues cmd without waiting for it. It fails with ErrQueueFull when
// the queue is at capacity.
func (p *CommandProcessor) Submit(cmd command.Command) error {
	return p.enqueue(queueItem{cmd: cmd})
}

// SubmitAndWait queues cmd and waits for its verdict. A rejected transaction
// comes back as a result with Success=false; the error is reserved for
// commands that never reached a verdict.
func (p *CommandProcessor) SubmitAndWait(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resultCh := make(chan *command.CommandResult, 1)
	if err := p.enqueue(queueItem{cmd: cmd, resultCh: resultCh}); err != nil {
		return nil, err
	}

	select {
	case result := <-resultCh:
		return result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		// Run delivers before it exits, so an empty channel means cmd was
		// still queued when the processor stopped.
		select {
		case result := <-resultCh:
			return result, nil
		default:
			return nil, ErrProcessorNotRunning
		}
	}
}

// Stop ends Run without processing what is still queued.
func (p *CommandProcessor) Stop() {
	p.gate.RLock()
	cancel := p.cancel
	p.gate.RUnlock()
	if cancel == nil {
		return
	}
	cancel()
	<-p.done
}

// Drain stops accepting commands, processes everything already queued and
// waits for Run to return.
func (p *CommandProcessor) Drain() {
	p.gate.Lock()
	if !p.accepting {
		p.gate.Unlock()
		return
	}
	p.accepting = false
	close(p.queue)
	p.gate.Unlock()

	<-p.done
}

// IsRunning reports whether the processor accepts commands.
func (p *CommandProcessor) IsRunning() bool {
	p.gate.RLock()
	defer p.gate.RUnlock()
	return p.accepting
}

// Stats returns the current counters.
func (p *CommandProcessor) Stats() Stats {
	s := Stats{
		Processed: p.processed.Load(),
		Rejected:  p.rejected.Load(),
	}
	p.gate.RLock()
	if p.queue != nil {
		s.Queued = len(p.queue)
	}
	p.gate.RUnlock()
	return s
}

func (p *CommandProcessor) processItem(item queueItem) {
	result := p.dispatch(item.cmd)
	p.publish(item.cmd, result)

	p.processed.Add(1)
	if !result.Success {
		p.rejected.Add(1)
	}
	if item.resultCh != nil {
		item.resultCh <- result
	}
}

// dispatch validates cmd and runs its handler. The result is never nil; a
// handler error becomes a rejection carrying that error.
func (p *CommandProcessor) dispatch(cmd command.Command) *command.CommandResult {
	if err := cmd.Validate(); err != nil {
		return &command.CommandResult{Error: err}
	}

	handler, ok := p.handlers[cmd.Type()]
	if !ok {
		return &command.CommandResult{Error: ErrUnknownCommandType}
	}

	result, err := handler.Handle(p.ctx, cmd)
	switch {
	case err != nil:
		return &command.CommandResult{Error: err}
	case result == nil:
		return &command.CommandResult{Success: true}
	default:
		return result
	}
}

func (p *CommandProcessor) publish(cmd command.Command, result *command.CommandResult) {
	if p.eventBus == nil {
		return
	}
	if !result.Success {
		p.eventBus.Publish(pubsub.RejectionEvent, CommandErrorEvent{
			CommandID:   cmd.ID(),
			CommandType: cmd.Type(),
			Error:       result.Error,
		})
		return
	}
	for _, event := range result.Events {
		p.eventBus.Publish(pubsub.RecordEvent, event)
	}
}
