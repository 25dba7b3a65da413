// Package ledger is the entry point to the qnet ledger core. A Ledger owns the
// four registries (keys, entanglement pairs, bandwidth listings and governance
// proposals) and applies every mutation through a single-writer command
// processor, so transactions are linearized and each one either commits as a
// unit or leaves state untouched.
//
// Every mutation takes the sender and the clock value explicitly. The ledger
// never reads wall-clock time to decide validity.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/cachemanager"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/flags"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/handler"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/processor"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/repository"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/tracing"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/pubsub"
)

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("ledger is closed")

// Options configures a Ledger.
type Options struct {
	// Repositories backs the registries. A zero value selects in-memory storage.
	Repositories domain.Repositories

	// Flags toggles the replay guard and the read cache. Nil disables both.
	Flags *flags.Registry

	// Source is stamped on every command the ledger builds. Defaults to SourceAPI.
	Source command.CommandSource

	QueueCapacity int
	ReplayWindow  time.Duration
	CacheTTL      time.Duration
	SlowThreshold time.Duration

	// Tracer opens one span per transaction. Nil disables tracing.
	Tracer trace.Tracer
}

// Ledger is the facade over the four registries.
type Ledger struct {
	repos     domain.Repositories
	processor *processor.CommandProcessor
	events    *pubsub.Broker[any]
	source    command.CommandSource

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
}

// New builds a ledger. Call Start before submitting transactions.
func New(opts Options) *Ledger {
	repos := opts.Repositories
	if repos.Keys == nil || repos.Pairs == nil || repos.Listings == nil || repos.Proposals == nil {
		repos = repository.NewMemoryRepositories()
	}
	if opts.Flags.Enabled(flags.FlagReadCache) {
		repos = repository.NewCachedRepositories(repos, opts.CacheTTL)
	}

	source := opts.Source
	if source == "" {
		source = command.SourceAPI
	}

	events := pubsub.NewBroker[any]()

	middlewares := []processor.Middleware{
		tracing.NewMiddleware(tracing.MiddlewareConfig{Tracer: opts.Tracer}),
		processor.NewLoggingMiddleware(),
	}
	if opts.Flags.Enabled(flags.FlagReplayGuard) {
		middlewares = append(middlewares, processor.NewReplayGuardMiddleware(processor.ReplayGuardConfig{
			Cache: cachemanager.NewMemory[time.Time]("replay", processor.DefaultReplayWindow, cachemanager.DefaultCleanupInterval),
			Window: opts.ReplayWindow,
		}))
	}
	middlewares = append(middlewares,
		processor.NewCommandLogMiddleware(events),
		processor.NewTimeoutMiddleware(opts.SlowThreshold),
	)

	procOpts := []processor.Option{
		processor.WithEventBus(events),
		processor.WithMiddleware(middlewares...),
	}
	if opts.QueueCapacity > 0 {
		procOpts = append(procOpts, processor.WithQueueCapacity(opts.QueueCapacity))
	}

	p := processor.NewCommandProcessor(procOpts...)
	handler.Register(p, repos)

	return &Ledger{
		repos:     repos,
		processor: p,
		events:    events,
		source:    source,
	}
}

// Start launches the processor goroutine and waits until it accepts commands.
func (l *Ledger) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if l.started {
		l.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	l.cancel = cancel
	l.started = true
	l.mu.Unlock()

	go l.processor.Run(runCtx)
	if err := l.processor.WaitForReady(ctx); err != nil {
		return err
	}
	log.Debug(log.CatLedger, "ledger started", "source", l.source.String())
	return nil
}

// Close finishes queued transactions and stops the processor. It is safe to
// call more than once.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.started {
		l.processor.Drain()
		l.cancel()
	}
	l.events.Close()
	stats := l.processor.Stats()
	log.Debug(log.CatLedger, "ledger closed", "processed", stats.Processed, "rejected", stats.Rejected)
	return nil
}

// Subscribe streams the record events of committed transactions until ctx is
// cancelled or the ledger is closed. Slow subscribers miss events rather than
// stall the ledger.
func (l *Ledger) Subscribe(ctx context.Context) <-chan domain.RecordEvent {
	in := l.events.Subscribe(ctx)
	out := make(chan domain.RecordEvent, 64)
	go func() {
		defer close(out)
		for ev := range in {
			if ev.Type != pubsub.RecordEvent {
				continue
			}
			record, ok := ev.Payload.(domain.RecordEvent)
			if !ok {
				continue
			}
			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Apply submits a prepared command and waits for it. It returns the command
// result for committed and rejected transactions alike; the error is non-nil
// only when the command could not be processed at all.
func (l *Ledger) Apply(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	return l.processor.SubmitAndWait(ctx, cmd)
}

// submit applies cmd and unwraps the result data as T.
func submit[T any](ctx context.Context, l *Ledger, cmd command.Command) (T, error) {
	var zero T

	result, err := l.Apply(ctx, cmd)
	if err != nil {
		return zero, err
	}
	if !result.Success {
		if result.Error == nil {
			return zero, fmt.Errorf("%s rejected", cmd.Type())
		}
		return zero, result.Error
	}
	value, ok := result.Data.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned %T, want %T", cmd.Type(), result.Data, zero)
	}
	return value, nil
}
