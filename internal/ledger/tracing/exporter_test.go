package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var records []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		records = append(records, r)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_WritesParentChildSpans(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := provider.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), "batch")
	_, child := tracer.Start(ctx, "ledger.tx.vote_on_proposal")
	child.SetAttributes(
		attribute.String(AttrSender, "alice"),
		attribute.String(AttrCommandType, "vote_on_proposal"),
		attribute.Int64(AttrHeight, 42),
	)
	child.AddEvent(EventRecordCommitted, trace.WithAttributes(
		attribute.String(AttrRegistry, "proposal"),
		attribute.String(AttrRecordID, "1"),
		attribute.String(AttrAction, "vote_cast"),
	))
	child.SetStatus(codes.Error, "already voted")
	child.End()
	parent.SetStatus(codes.Ok, "")
	parent.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)

	childRecord, parentRecord := records[0], records[1]
	require.Equal(t, "ledger.tx.vote_on_proposal", childRecord.Name)
	require.Equal(t, parentRecord.SpanID, childRecord.ParentSpanID)
	require.Equal(t, parentRecord.TraceID, childRecord.TraceID)
	require.Equal(t, "ERROR", childRecord.Status)
	require.Equal(t, "already voted", childRecord.StatusMsg)
	require.Equal(t, "alice", childRecord.Attributes[AttrSender])
	require.Len(t, childRecord.Events, 1)
	require.Equal(t, EventRecordCommitted, childRecord.Events[0].Name)
	require.Equal(t, "vote_on_proposal", childRecord.Command)
	require.Equal(t, "alice", childRecord.Sender)
	require.NotNil(t, childRecord.Height)
	require.Equal(t, int64(42), *childRecord.Height)
	require.Equal(t, []string{"proposal/1 vote_cast"}, childRecord.Records)

	require.Empty(t, parentRecord.ParentSpanID)
	require.Empty(t, parentRecord.Command)
	require.Nil(t, parentRecord.Height)
	require.Equal(t, "OK", parentRecord.Status)
}

func TestFileExporter_AppendsToExistingFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"name":"earlier"}`+"\n"), 0600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	_, span := provider.Tracer("test").Start(context.Background(), "later")
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)
	require.Equal(t, "earlier", records[0].Name)
	require.Equal(t, "later", records[1].Name)
}

func TestFileExporter_ShutdownIsIdempotent(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)

	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
}
