package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/processor"
)

// MiddlewareConfig configures the tracing middleware.
type MiddlewareConfig struct {
	// Tracer creates the spans. If nil, the middleware is a pass-through.
	Tracer trace.Tracer
}

// NewMiddleware creates middleware that opens one span per command. The span's
// trace ID is stamped on the command before the next handler runs, so the
// logging middleware further down the chain can report it.
func NewMiddleware(cfg MiddlewareConfig) processor.Middleware {
	if cfg.Tracer == nil {
		return func(next processor.CommandHandler) processor.CommandHandler {
			return next
		}
	}

	return func(next processor.CommandHandler) processor.CommandHandler {
		return processor.HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			ctx = restoreSpanContext(ctx, cmd)

			ctx, span := cfg.Tracer.Start(ctx, SpanPrefixCommand+cmd.Type().String(),
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			span.SetAttributes(
				attribute.String(AttrCommandID, cmd.ID()),
				attribute.String(AttrCommandType, cmd.Type().String()),
				attribute.String(AttrSender, cmd.Sender().String()),
				attribute.Int64(AttrHeight, int64(cmd.Height())), //nolint:gosec // heights fit in int64 in practice
			)
			if hasSource, ok := cmd.(interface{ Source() command.CommandSource }); ok {
				span.SetAttributes(attribute.String(AttrCommandSource, hasSource.Source().String()))
			}
			if setter, ok := cmd.(interface{ SetTraceID(string) }); ok && span.SpanContext().IsValid() {
				setter.SetTraceID(span.SpanContext().TraceID().String())
			}

			result, err := next.Handle(ctx, cmd)

			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case result != nil && !result.Success:
				recordRejection(span, result.Error)
			default:
				span.SetStatus(codes.Ok, "")
			}

			if result != nil {
				for _, ev := range result.Events {
					record, ok := ev.(domain.RecordEvent)
					if !ok {
						continue
					}
					span.AddEvent(EventRecordCommitted, trace.WithAttributes(
						attribute.String(AttrRegistry, record.Registry.String()),
						attribute.String(AttrRecordID, record.ID.String()),
						attribute.String(AttrAction, record.Action.String()),
					))
				}
			}

			return result, err
		})
	}
}

func recordRejection(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Error, "command failed without error details")
		return
	}
	if kind, ok := domain.KindOf(err); ok {
		span.SetAttributes(
			attribute.String(AttrErrorKind, kind.String()),
			attribute.Int(AttrErrorCode, kind.StatusCode()),
		)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// restoreSpanContext makes a span context carried on the command the parent of
// the new span, so a batch of transactions can share one trace.
func restoreSpanContext(ctx context.Context, cmd command.Command) context.Context {
	if hasSpanContext, ok := cmd.(interface{ SpanContext() trace.SpanContext }); ok {
		if sc := hasSpanContext.SpanContext(); sc.IsValid() {
			return trace.ContextWithRemoteSpanContext(ctx, sc)
		}
	}
	return ctx
}
