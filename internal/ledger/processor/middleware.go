package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/cachemanager"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/pubsub"
)

// Middleware wraps a CommandHandler to add additional behavior.
type Middleware func(CommandHandler) CommandHandler

// ChainMiddleware applies middlewares to a handler in reverse order, so the
// first middleware in the list is the outermost wrapper:
// ChainMiddleware(h, logging, replay, timeout) == logging(replay(timeout(h))).
func ChainMiddleware(handler CommandHandler, middlewares ...Middleware) CommandHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

func traceIDOf(cmd command.Command) string {
	if hasTraceID, ok := cmd.(interface{ TraceID() string }); ok {
		return hasTraceID.TraceID()
	}
	return ""
}

func sourceOf(cmd command.Command) command.CommandSource {
	if hasSource, ok := cmd.(interface{ Source() command.CommandSource }); ok {
		return hasSource.Source()
	}
	return ""
}

// ===========================================================================
// Logging Middleware
// ===========================================================================

// NewLoggingMiddleware creates a middleware that logs command execution.
// Rejected transactions are logged at warn level since they are an expected
// outcome; handler errors are logged at error level.
func NewLoggingMiddleware() Middleware {
	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			start := time.Now()
			result, err := next.Handle(ctx, cmd)
			duration := time.Since(start)

			fields := []any{
				"command_id", cmd.ID(),
				"command_type", cmd.Type().String(),
				"sender", cmd.Sender().String(),
				"height", uint64(cmd.Height()),
				"trace_id", traceIDOf(cmd),
				"source", sourceOf(cmd).String(),
				"duration", duration,
			}

			switch {
			case err != nil:
				log.ErrorErr(log.CatCommands, "command failed", err, fields...)
			case result != nil && !result.Success:
				errMsg := ""
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				log.Warn(log.CatCommands, "command rejected",
					append(fields, "code", domain.StatusCode(result.Error), "error", errMsg)...)
			default:
				log.Debug(log.CatCommands, "command completed", fields...)
			}

			return result, err
		})
	}
}

// ===========================================================================
// Replay Guard Middleware
// ===========================================================================

// DefaultReplayWindow is how long a processed command ID is remembered.
const DefaultReplayWindow = 24 * time.Hour

// ReplayGuardConfig configures the replay guard.
type ReplayGuardConfig struct {
	// Cache stores seen command IDs. Required.
	Cache cachemanager.Cache[time.Time]
	// Window is how long an ID is remembered. Zero uses DefaultReplayWindow.
	Window time.Duration
}

// NewReplayGuardMiddleware rejects any command whose ID has already reached a
// handler within the window, whatever that earlier attempt's outcome was.
// Rejected replays never touch ledger state and fail with KindDuplicate.
func NewReplayGuardMiddleware(cfg ReplayGuardConfig) Middleware {
	window := cfg.Window
	if window == 0 {
		window = DefaultReplayWindow
	}

	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			seenAt, first := cfg.Cache.Remember(ctx, replayKey(cmd), time.Now(), window)
			if !first {
				log.Warn(log.CatCommands, "replayed command rejected",
					"command_id", cmd.ID(),
					"command_type", cmd.Type().String(),
					"first_seen", seenAt.Format(time.RFC3339),
				)
				return &command.CommandResult{
					Success: false,
					Error:   domain.Duplicate(fmt.Sprintf("command %s already processed", cmd.ID())),
				}, nil
			}

			return next.Handle(ctx, cmd)
		})
	}
}

func replayKey(cmd command.Command) string {
	return "cmd:" + cmd.ID()
}

// ===========================================================================
// Command Log Middleware
// ===========================================================================

// EventPublisher receives command log events. *pubsub.Broker[any] satisfies it.
type EventPublisher interface {
	Publish(eventType pubsub.EventType, payload any)
}

// NewCommandLogMiddleware creates a middleware that emits a CommandLogEvent for
// each processed command. If publisher is nil, the middleware is a no-op.
func NewCommandLogMiddleware(publisher EventPublisher) Middleware {
	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			if publisher == nil {
				return next.Handle(ctx, cmd)
			}

			start := time.Now()
			result, err := next.Handle(ctx, cmd)

			event := CommandLogEvent{
				CommandID:   cmd.ID(),
				CommandType: cmd.Type(),
				Source:      sourceOf(cmd),
				Success:     err == nil && (result == nil || result.Success),
				Duration:    time.Since(start),
				Timestamp:   time.Now(),
				TraceID:     traceIDOf(cmd),
			}
			switch {
			case err != nil:
				event.Error = err
			case result != nil && !result.Success:
				event.Error = result.Error
			}
			publisher.Publish(pubsub.CommandEvent, event)

			return result, err
		})
	}
}

// ===========================================================================
// Timeout Middleware
// ===========================================================================

// DefaultTimeoutWarningThreshold is the default threshold for slow handler warnings.
const DefaultTimeoutWarningThreshold = 100 * time.Millisecond

// NewTimeoutMiddleware creates a middleware that logs a warning when a handler
// exceeds threshold. It never aborts a handler: a transaction that has started
// writing must be allowed to finish.
func NewTimeoutMiddleware(threshold time.Duration) Middleware {
	if threshold == 0 {
		threshold = DefaultTimeoutWarningThreshold
	}

	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			start := time.Now()
			result, err := next.Handle(ctx, cmd)

			if duration := time.Since(start); duration > threshold {
				log.Warn(log.CatCommands, "handler exceeded time threshold",
					"command_id", cmd.ID(),
					"command_type", cmd.Type().String(),
					"trace_id", traceIDOf(cmd),
					"duration", duration,
					"threshold", threshold,
				)
			}

			return result, err
		})
	}
}
