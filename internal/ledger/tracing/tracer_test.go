package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, ExporterFile, cfg.Exporter)
	require.Empty(t, cfg.FilePath)
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, "qnet-ledger", cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "noop")
	require.False(t, span.SpanContext().IsValid(), "no-op spans carry no trace ID")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterWritesSpans(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces", "traces.jsonl")

	provider, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    ExporterFile,
		FilePath:    tracePath,
		ServiceName: "test-ledger",
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "ledger.tx.generate_pair")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"name":"ledger.tx.generate_pair"`)
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: ExporterFile})
	require.ErrorContains(t, err, "file_path required")
}

func TestNewProvider_NoExporter(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: true, Exporter: ExporterNone})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	_, span := provider.Tracer().Start(context.Background(), "test")
	require.True(t, span.SpanContext().IsValid(), "spans still get IDs without an exporter")
	span.End()
}

func TestNewProvider_Stdout(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: true, Exporter: ExporterStdout})
	require.NoError(t, err)
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "zipkin"})
	require.ErrorContains(t, err, "unsupported exporter type: zipkin")
}

func TestExporters(t *testing.T) {
	require.Equal(t, []string{ExporterFile, ExporterNone, ExporterOTLP, ExporterStdout}, Exporters())
}

func TestNewProvider_EmptyExporterMeansNone(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: true})
	require.NoError(t, err)
	require.True(t, provider.Enabled())
	require.NoError(t, provider.Shutdown(context.Background()))
}
