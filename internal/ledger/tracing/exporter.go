package tracing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errExporterClosed = errors.New("trace file is closed")

// FileExporter appends one JSON line per span so a ledger run can be read
// back with jq, no collector needed. Transaction spans get their command,
// sender, height and committed records lifted out of the attributes.
type FileExporter struct {
	mu  sync.Mutex
	out io.WriteCloser
	enc *json.Encoder
}

var _ sdktrace.SpanExporter = (*FileExporter)(nil)

// NewFileExporter opens path for appending and creates missing directories.
func NewFileExporter(path string) (*FileExporter, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- cleaned above
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &FileExporter{out: f, enc: json.NewEncoder(f)}, nil
}

func (e *FileExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.out == nil {
		return errExporterClosed
	}
	for _, span := range spans {
		if err := e.enc.Encode(newSpanRecord(span)); err != nil {
			return fmt.Errorf("encode span %s: %w", span.Name(), err)
		}
	}
	return nil
}

// Shutdown closes the file; later exports fail.
func (e *FileExporter) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.out == nil {
		return nil
	}
	err := e.out.Close()
	e.out, e.enc = nil, nil
	return err
}

// SpanRecord is one line of the trace file.
type SpanRecord struct {
	TraceID      string  `json:"trace_id"`
	SpanID       string  `json:"span_id"`
	ParentSpanID string  `json:"parent_span_id,omitempty"`
	Name         string  `json:"name"`
	StartTime    string  `json:"start_time"`
	DurationMs   float64 `json:"duration_ms"`
	Status       string  `json:"status"`
	StatusMsg    string  `json:"status_message,omitempty"`

	Command string   `json:"command,omitempty"`
	Sender  string   `json:"sender,omitempty"`
	Height  *int64   `json:"height,omitempty"`
	Records []string `json:"records,omitempty"` // "pair/3 distributed"

	Attributes map[string]any `json:"attributes,omitempty"`
	Events     []EventRecord  `json:"events,omitempty"`
}

// EventRecord is a span event.
type EventRecord struct {
	Name       string         `json:"name"`
	Timestamp  string         `json:"timestamp"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func newSpanRecord(span sdktrace.ReadOnlySpan) SpanRecord {
	sc := span.SpanContext()
	attrs := attributeMap(span.Attributes())

	r := SpanRecord{
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		Name:       span.Name(),
		StartTime:  span.StartTime().Format(time.RFC3339Nano),
		DurationMs: float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000,
		Status:     statusName(span.Status().Code),
		StatusMsg:  span.Status().Description,
		Attributes: attrs,
	}
	if parent := span.Parent(); parent.IsValid() {
		r.ParentSpanID = parent.SpanID().String()
	}

	r.Command, _ = attrs[AttrCommandType].(string)
	r.Sender, _ = attrs[AttrSender].(string)
	if h, ok := attrs[AttrHeight].(int64); ok {
		r.Height = &h
	}

	for _, evt := range span.Events() {
		evtAttrs := attributeMap(evt.Attributes)
		r.Events = append(r.Events, EventRecord{
			Name:       evt.Name,
			Timestamp:  evt.Time.Format(time.RFC3339Nano),
			Attributes: evtAttrs,
		})
		if evt.Name == EventRecordCommitted {
			r.Records = append(r.Records, fmt.Sprintf("%v/%v %v",
				evtAttrs[AttrRegistry], evtAttrs[AttrRecordID], evtAttrs[AttrAction]))
		}
	}
	return r
}

func attributeMap(kvs []attribute.KeyValue) map[string]any {
	if len(kvs) == 0 {
		return nil
	}
	m := make(map[string]any, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}

func statusName(code codes.Code) string {
	switch code {
	case codes.Ok:
		return "OK"
	case codes.Error:
		return "ERROR"
	default:
		return "UNSET"
	}
}
